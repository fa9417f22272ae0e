package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type documentService interface {
	List(ctx context.Context, f models.DocumentFilter, p models.Page) (models.List[models.Document], error)
	Get(ctx context.Context, id int64) (*models.Document, error)
	Create(ctx context.Context, actor models.Actor, in models.DocumentInput) (*models.Document, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

// DocumentHandler serves document metadata. File bytes live wherever
// file_path points; this API never stores them.
type DocumentHandler struct {
	documents documentService
	logger    *zap.Logger
}

func NewDocumentHandler(documents documentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, logger: logger}
}

// List handles GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.DocumentFilter{
		MatterID: q.id("matter"),
		ClientID: q.id("client"),
		Category: q.str("category"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.documents.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	d, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, d, "")
}

// Create handles POST /api/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var in models.DocumentInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	d, err := h.documents.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, d, "Document uploaded successfully")
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.documents.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Document deleted successfully")
}
