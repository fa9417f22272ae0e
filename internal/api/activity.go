package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

type activityService interface {
	List(ctx context.Context, f models.ActivityFilter, p models.Page) (models.List[models.Activity], error)
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
	Log(ctx context.Context, actor models.Actor, in models.ActivityInput) (*models.Activity, error)
}

type ActivityHandler struct {
	activities activityService
	logger     *zap.Logger
}

func NewActivityHandler(activities activityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger}
}

// List handles GET /api/activities
func (h *ActivityHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.ActivityFilter{
		UserID:     q.id("user"),
		EntityType: q.str("entity_type"),
		Action:     q.str("action"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.activities.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Recent handles GET /api/activities/recent?limit=N. The service clamps
// limit; here it only has to be an integer.
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, h.logger, apperr.NewValidationError("limit", "Limit must be an integer"))
			return
		}
		limit = n
	}
	items, err := h.activities.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, items, "")
}

// Log handles POST /api/activities
func (h *ActivityHandler) Log(c *gin.Context) {
	var in models.ActivityInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	a, err := h.activities.Log(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, a, "Activity logged successfully")
}
