package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const invoiceColumns = `
	id, company_id, invoice_number, amount, currency, status, payment_method,
	payment_date, due_date, description, billing_address, tax_id, vat_rate,
	created_at, updated_at
`

func (s *Storage) GetInvoice(ctx context.Context, id int64) (*model.Invoice, error) {
	var invoice model.Invoice
	query := `SELECT` + invoiceColumns + `FROM invoices WHERE id = $1`

	err := s.db.GetContext(ctx, &invoice, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

func (s *Storage) ListInvoices(ctx context.Context, companyID int64, status string, page, perPage int) ([]model.Invoice, int, error) {
	where := " WHERE company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	limit, offset := limitOffset(page, perPage)
	query := `SELECT` + invoiceColumns + `FROM invoices` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var invoices []model.Invoice
	if err := s.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, total, nil
}

func (s *Storage) CreateInvoice(ctx context.Context, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (
			company_id, invoice_number, amount, currency, status, due_date,
			description, billing_address, tax_id, vat_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		invoice.CompanyID,
		invoice.InvoiceNumber,
		invoice.Amount,
		invoice.Currency,
		invoice.Status,
		invoice.DueDate,
		invoice.Description,
		invoice.BillingAddress,
		invoice.TaxID,
		invoice.VatRate,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "invoices_invoice_number_key") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

// MarkInvoicePaid transitions pending → paid. The status guard lives in
// the UPDATE itself so a concurrent transition cannot double-apply.
func (s *Storage) MarkInvoicePaid(ctx context.Context, id int64, paymentMethod string, paymentDate time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, payment_method = $2, payment_date = $3, updated_at = NOW()
		 WHERE id = $4 AND status = $5`,
		domain.InvoicePaid, paymentMethod, paymentDate, id, domain.InvoicePending)
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	return s.invoiceTransitionResult(ctx, res, id)
}

// CancelInvoice transitions pending → cancelled.
func (s *Storage) CancelInvoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = $3`,
		domain.InvoiceCancelled, id, domain.InvoicePending)
	if err != nil {
		return fmt.Errorf("failed to cancel invoice: %w", err)
	}

	return s.invoiceTransitionResult(ctx, res, id)
}

// invoiceTransitionResult distinguishes "no such invoice" from "not
// pending" after a guarded UPDATE matched zero rows.
func (s *Storage) invoiceTransitionResult(ctx context.Context, res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := s.GetInvoice(ctx, id); err != nil {
		return err
	}
	return domain.ErrInvoiceNotPending
}
