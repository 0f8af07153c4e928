package model

import "time"

// Invoice is a billing document issued to a company. Payment execution
// is external; this row only tracks the lifecycle.
type Invoice struct {
	ID             int64      `db:"id"`
	CompanyID      int64      `db:"company_id"`
	InvoiceNumber  string     `db:"invoice_number"`
	Amount         float64    `db:"amount"`
	Currency       string     `db:"currency"`
	Status         string     `db:"status"`
	PaymentMethod  *string    `db:"payment_method"`
	PaymentDate    *time.Time `db:"payment_date"`
	DueDate        time.Time  `db:"due_date"`
	Description    string     `db:"description"`
	BillingAddress string     `db:"billing_address"`
	TaxID          *string    `db:"tax_id"`
	VatRate        *float64   `db:"vat_rate"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
