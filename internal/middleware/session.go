package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SessionReader exposes the console's current session.
type SessionReader interface {
	Current() *domain.Session
}

// SessionIdentity tags the request with the console user, when one is logged
// in, so later middleware and handlers can attribute it. It never rejects.
func SessionIdentity(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session := sessions.Current(); session != nil {
			ctx := withIdentity(c.Request.Context(), session.Username, session.Username)
			ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("username", session.Username)))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireSession rejects the request with 401 unless a console user is logged in.
func RequireSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Current() == nil {
			GetLoggerFromCtx(c.Request.Context()).Debug("Rejected request without session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login to continue."})
			return
		}
		c.Next()
	}
}
