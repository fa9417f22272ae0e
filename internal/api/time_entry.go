package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type timeEntryService interface {
	List(ctx context.Context, f models.TimeEntryFilter, p models.Page) (models.List[models.TimeEntry], error)
	Get(ctx context.Context, id int64) (*models.TimeEntry, error)
	Create(ctx context.Context, actor models.Actor, in models.TimeEntryInput) (*models.TimeEntry, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.TimeEntryUpdate) (*models.TimeEntry, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Summary(ctx context.Context, actor models.Actor, userID int64, rng models.ReportRange) (*models.TimeSummary, error)
}

type TimeEntryHandler struct {
	entries timeEntryService
	logger  *zap.Logger
}

func NewTimeEntryHandler(entries timeEntryService, logger *zap.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{entries: entries, logger: logger}
}

// List handles GET /api/time-entries
func (h *TimeEntryHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.TimeEntryFilter{
		MatterID:  q.id("matter"),
		UserID:    q.id("user"),
		StartDate: q.date("start_date"),
		EndDate:   q.date("end_date"),
		Billable:  q.bool("billable"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.entries.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Summary handles GET /api/time-entries/summary. Without ?user it
// summarizes the caller.
func (h *TimeEntryHandler) Summary(c *gin.Context) {
	q := newQuery(c)
	rng := q.reportRange()
	var userID int64
	if id := q.id("user"); id != nil {
		userID = *id
	}
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	sum, err := h.entries.Summary(c.Request.Context(), actor(c), userID, rng)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, sum, "")
}

// Get handles GET /api/time-entries/:id
func (h *TimeEntryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	e, err := h.entries.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, e, "")
}

// Create handles POST /api/time-entries
func (h *TimeEntryHandler) Create(c *gin.Context) {
	var in models.TimeEntryInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	e, err := h.entries.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, e, "Time entry created successfully")
}

// Update handles PUT /api/time-entries/:id
func (h *TimeEntryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.TimeEntryUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	e, err := h.entries.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, e, "Time entry updated successfully")
}

// Delete handles DELETE /api/time-entries/:id
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.entries.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Time entry deleted successfully")
}
