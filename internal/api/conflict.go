package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type conflictService interface {
	Check(ctx context.Context, actor models.Actor, name string) (*models.ConflictResult, error)
	Log(ctx context.Context, actor models.Actor, in models.ConflictLogInput) (*models.ConflictCheck, error)
	History(ctx context.Context, p models.Page) (models.List[models.ConflictCheck], error)

	ListAdverseParties(ctx context.Context, f models.PartyFilter, p models.Page) (models.List[models.AdverseParty], error)
	CreateAdverseParty(ctx context.Context, actor models.Actor, in models.AdversePartyInput) (*models.AdverseParty, error)
	DeleteAdverseParty(ctx context.Context, actor models.Actor, id int64) error

	ListContacts(ctx context.Context, f models.PartyFilter, p models.Page) (models.List[models.Contact], error)
	CreateContact(ctx context.Context, actor models.Actor, in models.ContactInput) (*models.Contact, error)
	DeleteContact(ctx context.Context, actor models.Actor, id int64) error
}

// ConflictHandler serves conflict checks and the adverse parties and
// contacts they search.
type ConflictHandler struct {
	conflicts conflictService
	logger    *zap.Logger
}

func NewConflictHandler(conflicts conflictService, logger *zap.Logger) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts, logger: logger}
}

// Check handles POST /api/conflicts/check
func (h *ConflictHandler) Check(c *gin.Context) {
	var in models.ConflictSearchInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.conflicts.Check(c.Request.Context(), actor(c), in.SearchName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, res, "")
}

// History handles GET /api/conflicts
func (h *ConflictHandler) History(c *gin.Context) {
	q := newQuery(c)
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	list, err := h.conflicts.History(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Log handles POST /api/conflicts
func (h *ConflictHandler) Log(c *gin.Context) {
	var in models.ConflictLogInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	check, err := h.conflicts.Log(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, check, "Conflict check logged successfully")
}

func partyFilter(q *query) models.PartyFilter {
	return models.PartyFilter{
		MatterID: q.id("matter"),
		ClientID: q.id("client"),
		Search:   q.str("search"),
	}
}

// ListAdverseParties handles GET /api/adverse-parties
func (h *ConflictHandler) ListAdverseParties(c *gin.Context) {
	q := newQuery(c)
	f := partyFilter(q)
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	list, err := h.conflicts.ListAdverseParties(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// CreateAdverseParty handles POST /api/adverse-parties
func (h *ConflictHandler) CreateAdverseParty(c *gin.Context) {
	var in models.AdversePartyInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	ap, err := h.conflicts.CreateAdverseParty(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, ap, "Adverse party added successfully")
}

// DeleteAdverseParty handles DELETE /api/adverse-parties/:id
func (h *ConflictHandler) DeleteAdverseParty(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.conflicts.DeleteAdverseParty(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Adverse party deleted successfully")
}

// ListContacts handles GET /api/contacts
func (h *ConflictHandler) ListContacts(c *gin.Context) {
	q := newQuery(c)
	f := partyFilter(q)
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	list, err := h.conflicts.ListContacts(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// CreateContact handles POST /api/contacts
func (h *ConflictHandler) CreateContact(c *gin.Context) {
	var in models.ContactInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	ct, err := h.conflicts.CreateContact(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, ct, "Contact added successfully")
}

// DeleteContact handles DELETE /api/contacts/:id
func (h *ConflictHandler) DeleteContact(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.conflicts.DeleteContact(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Contact deleted successfully")
}
