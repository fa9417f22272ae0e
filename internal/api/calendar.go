package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type calendarService interface {
	List(ctx context.Context, f models.CalendarFilter, p models.Page) (models.List[models.CalendarEvent], error)
	Get(ctx context.Context, id int64) (*models.CalendarEvent, error)
	Today(ctx context.Context) ([]models.CalendarEvent, error)
	Create(ctx context.Context, actor models.Actor, in models.CalendarEventInput) (*models.CalendarEvent, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.CalendarEventUpdate) (*models.CalendarEvent, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

type CalendarHandler struct {
	events calendarService
	logger *zap.Logger
}

func NewCalendarHandler(events calendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{events: events, logger: logger}
}

// List handles GET /api/calendar-events
func (h *CalendarHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.CalendarFilter{
		StartAfter: q.timestamp("start_date"),
		EndBefore:  q.timestamp("end_date"),
		MatterID:   q.id("matter"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.events.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Today handles GET /api/calendar-events/today
func (h *CalendarHandler) Today(c *gin.Context) {
	events, err := h.events.Today(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, events, "")
}

// Get handles GET /api/calendar-events/:id
func (h *CalendarHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	e, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, e, "")
}

// Create handles POST /api/calendar-events
func (h *CalendarHandler) Create(c *gin.Context) {
	var in models.CalendarEventInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	e, err := h.events.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, e, "Event created successfully")
}

// Update handles PUT /api/calendar-events/:id
func (h *CalendarHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.CalendarEventUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	e, err := h.events.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, e, "Event updated successfully")
}

// Delete handles DELETE /api/calendar-events/:id
func (h *CalendarHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.events.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Event deleted successfully")
}
