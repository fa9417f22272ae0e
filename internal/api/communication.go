package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type communicationService interface {
	List(ctx context.Context, f models.CommunicationFilter, p models.Page) (models.List[models.Communication], error)
	Get(ctx context.Context, id int64) (*models.Communication, error)
	Create(ctx context.Context, actor models.Actor, in models.CommunicationInput) (*models.Communication, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.CommunicationUpdate) (*models.Communication, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

type CommunicationHandler struct {
	communications communicationService
	logger         *zap.Logger
}

func NewCommunicationHandler(communications communicationService, logger *zap.Logger) *CommunicationHandler {
	return &CommunicationHandler{communications: communications, logger: logger}
}

// List handles GET /api/communications
func (h *CommunicationHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.CommunicationFilter{
		Type:     q.str("type"),
		ClientID: q.id("client"),
		MatterID: q.id("matter"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.communications.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Get handles GET /api/communications/:id
func (h *CommunicationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	cm, err := h.communications.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, cm, "")
}

// Create handles POST /api/communications
func (h *CommunicationHandler) Create(c *gin.Context) {
	var in models.CommunicationInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	cm, err := h.communications.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, cm, "Communication logged successfully")
}

// Update handles PUT /api/communications/:id
func (h *CommunicationHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.CommunicationUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	cm, err := h.communications.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, cm, "Communication updated successfully")
}

// Delete handles DELETE /api/communications/:id
func (h *CommunicationHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.communications.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Communication deleted successfully")
}
