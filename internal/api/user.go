package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type userService interface {
	List(ctx context.Context, f models.UserFilter, p models.Page) (models.List[models.User], error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.UserUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, actor models.Actor, id int64, in models.PasswordChangeInput) error
}

// UserHandler serves /users. Password hashes never leave the models
// package: User.PasswordHash is tagged json:"-".
type UserHandler struct {
	users  userService
	logger *zap.Logger
}

func NewUserHandler(users userService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.UserFilter{
		Role:     q.str("role"),
		IsActive: q.bool("is_active"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.users.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, u, "")
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.UserUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, user, "User updated successfully")
}

// ChangePassword handles PUT /api/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var in models.PasswordChangeInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), actor(c), id, in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Password changed successfully")
}
