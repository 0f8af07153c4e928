package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

type fakeInvoiceStore struct {
	companies map[int64]*model.Company
	invoices  map[int64]*model.Invoice
	nextID    int64

	// numberCollisions fails that many inserts with a duplicate number
	// before accepting one.
	numberCollisions int
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{
		companies: make(map[int64]*model.Company),
		invoices:  make(map[int64]*model.Invoice),
		nextID:    1,
	}
}

func (s *fakeInvoiceStore) GetCompany(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (s *fakeInvoiceStore) GetInvoice(_ context.Context, id int64) (*model.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	copied := *inv
	return &copied, nil
}

func (s *fakeInvoiceStore) ListInvoices(_ context.Context, companyID int64, status string, page, perPage int) ([]model.Invoice, int, error) {
	var out []model.Invoice
	for _, inv := range s.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, *inv)
	}
	return out, len(out), nil
}

func (s *fakeInvoiceStore) CreateInvoice(_ context.Context, invoice *model.Invoice) error {
	if s.numberCollisions > 0 {
		s.numberCollisions--
		return domain.ErrDuplicateInvoiceNumber
	}
	for _, inv := range s.invoices {
		if inv.InvoiceNumber == invoice.InvoiceNumber {
			return domain.ErrDuplicateInvoiceNumber
		}
	}
	invoice.ID = s.nextID
	s.nextID++
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = invoice.CreatedAt

	stored := *invoice
	s.invoices[invoice.ID] = &stored
	return nil
}

func (s *fakeInvoiceStore) MarkInvoicePaid(_ context.Context, id int64, paymentMethod string, paymentDate time.Time) error {
	inv, ok := s.invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	if inv.Status != domain.InvoicePending {
		return domain.ErrInvoiceNotPending
	}
	inv.Status = domain.InvoicePaid
	inv.PaymentMethod = &paymentMethod
	inv.PaymentDate = &paymentDate
	return nil
}

func (s *fakeInvoiceStore) CancelInvoice(_ context.Context, id int64) error {
	inv, ok := s.invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	if inv.Status != domain.InvoicePending {
		return domain.ErrInvoiceNotPending
	}
	inv.Status = domain.InvoiceCancelled
	return nil
}

func newInvoiceTestServer(store InvoiceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewInvoiceHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.POST("/companies/:id/invoices", h.CreateInvoice)
	r.GET("/companies/:id/invoices", h.ListCompanyInvoices)
	r.GET("/invoices/:id", h.GetInvoice)
	r.PUT("/invoices/:id/pay", h.PayInvoice)
	r.PUT("/invoices/:id/cancel", h.CancelInvoice)
	return r
}

func TestCreateInvoice(t *testing.T) {
	store := newFakeInvoiceStore()
	store.companies[2] = &model.Company{ID: 2, Name: "Acme"}
	r := newInvoiceTestServer(store)

	w := doJSON(t, r, http.MethodPost, "/companies/2/invoices", gin.H{
		"amount":          499.0,
		"currency":        "EUR",
		"due_date":        "2026-10-01T00:00:00Z",
		"description":     "Featured postings, September",
		"billing_address": "1 Main St",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])
	assert.Regexp(t, regexp.MustCompile(`^INV-\d{4}-\d{6}$`), body["invoice_number"])
}

func TestCreateInvoice_NumberCollisionRetried(t *testing.T) {
	store := newFakeInvoiceStore()
	store.companies[2] = &model.Company{ID: 2, Name: "Acme"}
	r := newInvoiceTestServer(store)

	body := gin.H{
		"amount":          499.0,
		"currency":        "EUR",
		"due_date":        "2026-10-01T00:00:00Z",
		"description":     "Featured postings, September",
		"billing_address": "1 Main St",
	}

	// One colliding number is regenerated transparently
	store.numberCollisions = 1
	w := doJSON(t, r, http.MethodPost, "/companies/2/invoices", body)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.invoices, 1)

	// Two in a row give up
	store.numberCollisions = 2
	w = doJSON(t, r, http.MethodPost, "/companies/2/invoices", body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, store.invoices, 1)
}

func TestCreateInvoice_BadDueDate(t *testing.T) {
	store := newFakeInvoiceStore()
	store.companies[2] = &model.Company{ID: 2, Name: "Acme"}
	r := newInvoiceTestServer(store)

	w := doJSON(t, r, http.MethodPost, "/companies/2/invoices", gin.H{
		"amount":          499.0,
		"currency":        "EUR",
		"due_date":        "next month",
		"description":     "x",
		"billing_address": "x",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayInvoice_Lifecycle(t *testing.T) {
	store := newFakeInvoiceStore()
	store.invoices[7] = &model.Invoice{ID: 7, CompanyID: 2, InvoiceNumber: "INV-2026-000001", Status: domain.InvoicePending}
	r := newInvoiceTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/invoices/7/pay", gin.H{"payment_method": "card"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "paid", body["status"])
	assert.Equal(t, "card", body["payment_method"])
	assert.NotNil(t, body["payment_date"])

	// Paying twice conflicts
	w = doJSON(t, r, http.MethodPut, "/invoices/7/pay", gin.H{"payment_method": "card"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// So does cancelling a paid invoice
	w = doJSON(t, r, http.MethodPut, "/invoices/7/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelInvoice(t *testing.T) {
	store := newFakeInvoiceStore()
	store.invoices[7] = &model.Invoice{ID: 7, CompanyID: 2, InvoiceNumber: "INV-2026-000001", Status: domain.InvoicePending}
	r := newInvoiceTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/invoices/7/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decodeBody(t, w)["status"])

	w = doJSON(t, r, http.MethodPut, "/invoices/999/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	number := generateInvoiceNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^INV-2026-\d{6}$`), number)
}
