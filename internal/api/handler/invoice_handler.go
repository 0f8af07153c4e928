package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/dto"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

type InvoiceStore interface {
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	GetInvoice(ctx context.Context, id int64) (*model.Invoice, error)
	ListInvoices(ctx context.Context, companyID int64, status string, page, perPage int) ([]model.Invoice, int, error)
	CreateInvoice(ctx context.Context, invoice *model.Invoice) error
	MarkInvoicePaid(ctx context.Context, id int64, paymentMethod string, paymentDate time.Time) error
	CancelInvoice(ctx context.Context, id int64) error
}

type InvoiceHandler struct {
	store  InvoiceStore
	logger *slog.Logger
}

func NewInvoiceHandler(store InvoiceStore, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "invoice")),
	}
}

// ListCompanyInvoices handles GET /companies/:id/invoices
func (h *InvoiceHandler) ListCompanyInvoices(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req dto.ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	page, perPage := normalizePage(req.Page, req.PerPage, defaultPerPage)

	invoices, total, err := h.store.ListInvoices(ctx, companyID, req.Status, page, perPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(dto.FromInvoices(invoices), total, page, perPage))
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.store.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(invoice))
}

// CreateInvoice handles POST /companies/:id/invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		respondError(c, h.logger, domain.NewValidationError("due_date must be RFC 3339"))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCompany(ctx, companyID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	invoice := &model.Invoice{
		CompanyID:      companyID,
		InvoiceNumber:  generateInvoiceNumber(time.Now().UTC()),
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         domain.InvoicePending,
		DueDate:        dueDate,
		Description:    req.Description,
		BillingAddress: req.BillingAddress,
		TaxID:          req.TaxID,
		VatRate:        req.VatRate,
	}
	err = h.store.CreateInvoice(ctx, invoice)
	if errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
		// Regenerate once; the second collision in a row is reported.
		invoice.InvoiceNumber = generateInvoiceNumber(time.Now().UTC())
		err = h.store.CreateInvoice(ctx, invoice)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Invoice created",
		slog.Int64("invoice_id", invoice.ID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Int64("company_id", companyID),
	)
	c.JSON(http.StatusCreated, dto.FromInvoice(invoice))
}

// generateInvoiceNumber builds an INV-YYYY-NNNNNN reference. The table
// carries a unique constraint on the number; the create path retries a
// collision with a fresh number once.
func generateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%06d", now.Year(), rand.Intn(1000000))
}

// PayInvoice handles PUT /invoices/:id/pay. Only pending invoices can
// be paid; anything else responds 409.
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.store.MarkInvoicePaid(ctx, id, req.PaymentMethod, time.Now().UTC()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	invoice, err := h.store.GetInvoice(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Invoice paid", slog.Int64("invoice_id", id))
	c.JSON(http.StatusOK, dto.FromInvoice(invoice))
}

// CancelInvoice handles PUT /invoices/:id/cancel
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.CancelInvoice(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	invoice, err := h.store.GetInvoice(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Invoice cancelled", slog.Int64("invoice_id", id))
	c.JSON(http.StatusOK, dto.FromInvoice(invoice))
}
