package dto

import "github.com/talenthub/jobboard-be/internal/api/model"

type CreateInvoiceRequest struct {
	Amount         float64  `json:"amount" binding:"required,gt=0"`
	Currency       string   `json:"currency" binding:"required"`
	DueDate        string   `json:"due_date" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	BillingAddress string   `json:"billing_address" binding:"required"`
	TaxID          *string  `json:"tax_id"`
	VatRate        *float64 `json:"vat_rate"`
}

type PayInvoiceRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type ListInvoicesRequest struct {
	Status  string `form:"status"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

type InvoiceResponse struct {
	ID             int64    `json:"id"`
	CompanyID      int64    `json:"company_id"`
	InvoiceNumber  string   `json:"invoice_number"`
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	Status         string   `json:"status"`
	PaymentMethod  *string  `json:"payment_method"`
	PaymentDate    *string  `json:"payment_date"`
	DueDate        string   `json:"due_date"`
	Description    string   `json:"description"`
	BillingAddress string   `json:"billing_address"`
	TaxID          *string  `json:"tax_id"`
	VatRate        *float64 `json:"vat_rate"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func FromInvoice(inv *model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		InvoiceNumber:  inv.InvoiceNumber,
		Amount:         inv.Amount,
		Currency:       inv.Currency,
		Status:         inv.Status,
		PaymentMethod:  inv.PaymentMethod,
		PaymentDate:    formatTimePtr(inv.PaymentDate),
		DueDate:        formatTime(inv.DueDate),
		Description:    inv.Description,
		BillingAddress: inv.BillingAddress,
		TaxID:          inv.TaxID,
		VatRate:        inv.VatRate,
		CreatedAt:      formatTime(inv.CreatedAt),
		UpdatedAt:      formatTime(inv.UpdatedAt),
	}
}

func FromInvoices(invoices []model.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, FromInvoice(&invoices[i]))
	}
	return out
}
