package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type clientService interface {
	List(ctx context.Context, f models.ClientFilter, p models.Page) (models.List[models.Client], error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, actor models.Actor, in models.ClientInput) (*models.Client, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Billing(ctx context.Context, id int64) (*models.ClientBilling, error)
}

// ClientHandler serves /clients.
type ClientHandler struct {
	clients clientService
	matters matterService
	logger  *zap.Logger
}

func NewClientHandler(clients clientService, matters matterService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, matters: matters, logger: logger}
}

// List handles GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.ClientFilter{
		Search:     q.str("search"),
		ClientType: q.str("client_type"),
		Status:     q.str("status"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.clients.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Get handles GET /api/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, client, "")
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var in models.ClientInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	client, err := h.clients.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, client, "Client created successfully")
}

// Update handles PUT /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.ClientUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	client, err := h.clients.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, client, "Client updated successfully")
}

// Delete handles DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.clients.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Client deleted successfully")
}

// Matters handles GET /api/clients/:id/matters
func (h *ClientHandler) Matters(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	q := newQuery(c)
	f := models.MatterFilter{
		ClientID: &id,
		Status:   q.str("status"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.matters.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Billing handles GET /api/clients/:id/billing
func (h *ClientHandler) Billing(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	billing, err := h.clients.Billing(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, billing, "")
}
