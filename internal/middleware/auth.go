package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer JWTs
// issued by the ledger stub. Failures are answered with 401 and a
// {"message": ...} body, the error shape of the ledger contract.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Message: msg})
			return
		}

		if claims.Subject == "" || claims.Username == "" {
			logger.Error("Identity missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Invalid token claims"})
			return
		}

		ctx := withIdentity(c.Request.Context(), claims.Subject, claims.Username)
		ctx = WithLogger(ctx, logger.With(slog.String("username", claims.Username)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
