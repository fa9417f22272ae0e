package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/models"
)

type invoiceService interface {
	List(ctx context.Context, f models.InvoiceFilter, p models.Page) (models.List[models.Invoice], error)
	Get(ctx context.Context, id int64) (*models.Invoice, error)
	Create(ctx context.Context, actor models.Actor, in models.InvoiceInput) (*models.Invoice, error)
	Update(ctx context.Context, actor models.Actor, id int64, u models.InvoiceUpdate) (*models.Invoice, error)
	Send(ctx context.Context, actor models.Actor, id int64) (*models.Invoice, error)
	Pay(ctx context.Context, actor models.Actor, id int64, in models.PaymentInput) (*models.Invoice, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

// InvoiceHandler serves /invoices, including the send and pay transitions.
type InvoiceHandler struct {
	invoices invoiceService
	logger   *zap.Logger
}

func NewInvoiceHandler(invoices invoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, logger: logger}
}

// List handles GET /api/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	q := newQuery(c)
	f := models.InvoiceFilter{
		Status:   q.str("status"),
		ClientID: q.id("client"),
		MatterID: q.id("matter"),
	}
	p := q.page()
	if err := q.err(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.invoices.List(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondList(c, list)
}

// Get handles GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	inv, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, inv, "")
}

// Create handles POST /api/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var in models.InvoiceInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}
	inv, err := h.invoices.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, inv, "Invoice created successfully")
}

// Update handles PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var u models.InvoiceUpdate
	if err := bindJSON(c, &u); err != nil {
		respondError(c, h.logger, err)
		return
	}
	inv, err := h.invoices.Update(c.Request.Context(), actor(c), id, u)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, inv, "Invoice updated successfully")
}

// Send handles POST /api/invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	inv, err := h.invoices.Send(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, inv, "Invoice marked as sent")
}

// Pay handles POST /api/invoices/:id/pay. The body is optional.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var in models.PaymentInput
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &in); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}
	inv, err := h.invoices.Pay(c.Request.Context(), actor(c), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, inv, "Invoice marked as paid")
}

// Delete handles DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Invoice deleted successfully")
}
