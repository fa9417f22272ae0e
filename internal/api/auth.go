package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type authService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error)
	Login(ctx context.Context, in models.LoginInput) (*models.AuthResult, error)
	Me(ctx context.Context, actor models.Actor) (*models.User, error)
}

// AuthHandler serves register and login, the only routes reachable without
// a token, plus /auth/me.
type AuthHandler struct {
	auth   authService
	logger *zap.Logger
}

func NewAuthHandler(auth authService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in models.RegisterInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, res, "Registration successful")
}

// Login handles POST /api/auth/login
//
// Unknown email and wrong password produce the same 401 so the response
// does not reveal which accounts exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, res, "Login successful")
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.Me(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, u, "")
}
