package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/middleware"
	"github.com/lalith-99/lawdesk/internal/models"
)

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidationError("id", "Valid ID is required")
	}
	return id, nil
}

// query reads optional query parameters, collecting every malformed one
// so the caller can report them together.
type query struct {
	c    *gin.Context
	errs []apperr.FieldError
}

func newQuery(c *gin.Context) *query {
	return &query{c: c}
}

func (q *query) fail(name, message string) {
	q.errs = append(q.errs, apperr.FieldError{Field: name, Message: message})
}

func (q *query) raw(name string) (string, bool) {
	v := strings.TrimSpace(q.c.Query(name))
	return v, v != ""
}

func (q *query) str(name string) *string {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (q *query) id(name string) *int64 {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		q.fail(name, "Must be a positive integer")
		return nil
	}
	return &n
}

func (q *query) date(name string) *models.Date {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		q.fail(name, "Must be a date in YYYY-MM-DD format")
		return nil
	}
	return &d
}

// timestamp accepts an RFC 3339 timestamp or a bare date, read as midnight UTC.
func (q *query) timestamp(name string) *time.Time {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	d, err := models.ParseDate(v)
	if err != nil {
		q.fail(name, "Must be a date or an RFC 3339 timestamp")
		return nil
	}
	return &d.Time
}

func (q *query) bool(name string) *bool {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, "Must be true or false")
		return nil
	}
	return &b
}

// page reads page and limit. Absent values take the defaults; present
// ones must be in range.
func (q *query) page() models.Page {
	p := models.Page{Page: models.DefaultPage, Limit: models.DefaultLimit}
	if v, ok := q.raw("page"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			q.fail("page", "Page must be a positive integer")
		} else {
			p.Page = n
		}
	}
	if v, ok := q.raw("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > models.MaxLimit {
			q.fail("limit", "Limit must be between 1 and 100")
		} else {
			p.Limit = n
		}
	}
	return p
}

func (q *query) reportRange() models.ReportRange {
	return models.ReportRange{StartDate: q.date("start_date"), EndDate: q.date("end_date")}
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return apperr.NewValidationErrors(q.errs)
}

// actor returns the authenticated caller. Routes behind AuthMiddleware
// always have one.
func actor(c *gin.Context) models.Actor {
	a, _ := middleware.GetActor(c)
	return a
}
