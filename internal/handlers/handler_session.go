package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_console/internal/core/domain"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/handlers/dto"
	"github.com/SscSPs/bank_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type sessionHandler struct {
	session portssvc.SessionReaderSvc
	console portssvc.ConsoleSvcFacade
}

func registerSessionRoutes(rg *gin.RouterGroup, session portssvc.SessionReaderSvc, console portssvc.ConsoleSvcFacade) {
	h := &sessionHandler{session: session, console: console}

	s := rg.Group("/session")
	{
		s.GET("", h.getSession)
		s.POST("/login", h.login)
		s.POST("/register", h.register)
		s.POST("/logout", h.logout)
	}
}

func (h *sessionHandler) response() dto.SessionResponse {
	resp := dto.SessionResponse{State: h.session.State().String()}
	if current := h.session.Current(); current != nil {
		resp.Username = current.Username
		resp.FullName = current.FullName
		if info, err := h.session.Claims(); err == nil {
			resp.Token = info
		}
	}
	return resp
}

// getSession godoc
// @Summary Get the console session
// @Description Reports the session state and, when logged in, the identity and token claims
// @Tags session
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Router /api/session [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.response())
}

// login godoc
// @Summary Log in to the ledger
// @Description Exchanges credentials for a ledger session and loads the account list
// @Tags session
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Missing credentials"
// @Failure 401 {object} map[string]string "Session expired while loading accounts"
// @Failure 502 {object} map[string]string "Rejected by the ledger"
// @Failure 503 {object} map[string]string "Ledger unreachable"
// @Router /api/session/login [post]
func (h *sessionHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	session, err := h.console.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Console login succeeded", slog.String("username", session.Username))
	c.JSON(http.StatusOK, h.response())
}

// register godoc
// @Summary Register a customer
// @Tags session
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 502 {object} map[string]string "Rejected by the ledger"
// @Router /api/session/register [post]
func (h *sessionHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	in := domain.RegistrationInput{Username: req.Username, Password: req.Password, FullName: req.FullName}
	if err := h.console.Register(c.Request.Context(), in); err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *sessionHandler) logout(c *gin.Context) {
	h.console.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}
