package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type matterService interface {
	List(ctx context.Context, f models.MatterFilter, p models.Page) (models.List[models.Matter], error)
	Get(ctx context.Context, id int64) (*models.Matter, error)
	Create(ctx context.Context, actor models.Actor, in models.MatterInput) (*models.Matter, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.MatterUpdate) (*models.Matter, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

// MatterHandler serves /matters and the per-matter listings of time
// entries, documents, tasks and communications.
type MatterHandler struct {
	matters        matterService
	entries        timeEntryService
	documents      documentService
	tasks          taskService
	communications communicationService
	logger         *zap.Logger
}

func NewMatterHandler(
	matters matterService,
	entries timeEntryService,
	documents documentService,
	tasks taskService,
	communications communicationService,
	logger *zap.Logger,
) *MatterHandler {
	return &MatterHandler{
		matters:        matters,
		entries:        entries,
		documents:      documents,
		tasks:          tasks,
		communications: communications,
		logger:         logger,
	}
}

// List handles GET /api/matters
func (h *MatterHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.MatterFilter{
		PracticeArea: q.str("practice_area"),
		Status:       q.str("status"),
		ClientID:     q.id("client"),
		AttorneyID:   q.id("attorney"),
		Search:       q.str("search"),
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

// Get handles GET /api/matters/:id
func (h *MatterHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	m, err := h.matters.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, m, "")
}

// Create handles POST /api/matters
func (h *MatterHandler) Create(c *gin.Context) {
	var in models.MatterInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	m, err := h.matters.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, m, "Matter created successfully")
}

// Update handles PUT /api/matters/:id
func (h *MatterHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.MatterUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	m, err := h.matters.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, m, "Matter updated successfully")
}

// Delete handles DELETE /api/matters/:id
func (h *MatterHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.matters.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Matter deleted successfully")
}

// matterScope reads the :id of a per-matter listing plus the page.
func (h *MatterHandler) matterScope(c *gin.Context) (int64, models.Page, bool) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return 0, models.Page{}, false
	}
	q := newQuery(c)
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return 0, models.Page{}, false
	}
	return id, p, true
}

// TimeEntries handles GET /api/matters/:id/time-entries
func (h *MatterHandler) TimeEntries(c *gin.Context) {
	id, p, ok := h.matterScope(c)
	if !ok {
		return
	}
	list, err := h.entries.List(c.Request.Context(), models.TimeEntryFilter{MatterID: &id}, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Documents handles GET /api/matters/:id/documents
func (h *MatterHandler) Documents(c *gin.Context) {
	id, p, ok := h.matterScope(c)
	if !ok {
		return
	}
	list, err := h.documents.List(c.Request.Context(), models.DocumentFilter{MatterID: &id}, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Tasks handles GET /api/matters/:id/tasks
func (h *MatterHandler) Tasks(c *gin.Context) {
	id, p, ok := h.matterScope(c)
	if !ok {
		return
	}
	list, err := h.tasks.List(c.Request.Context(), models.TaskFilter{MatterID: &id}, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Communications handles GET /api/matters/:id/communications
func (h *MatterHandler) Communications(c *gin.Context) {
	id, p, ok := h.matterScope(c)
	if !ok {
		return
	}
	list, err := h.communications.List(c.Request.Context(), models.CommunicationFilter{MatterID: &id}, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}
