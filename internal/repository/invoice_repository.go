package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

const invoiceColumns = `id, borrower_id, type, invoice_number, buyer_name, buyer_gstin, invoice_date, due_date,
	invoice_amount, requested_amount, min_accept_amount, expected_interest_rate, currency, location,
	document_key, status, created_at, updated_at`

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (:id, :borrower_id, :type, :invoice_number, :buyer_name, :buyer_gstin, :invoice_date, :due_date,
			:invoice_amount, :requested_amount, :min_accept_amount, :expected_interest_rate, :currency, :location,
			:document_key, :status, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, invoice)
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	var invoice domain.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, id); err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) UpdateDraft(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET type = :type, invoice_number = :invoice_number, buyer_name = :buyer_name, buyer_gstin = :buyer_gstin,
			invoice_date = :invoice_date, due_date = :due_date, invoice_amount = :invoice_amount,
			requested_amount = :requested_amount, min_accept_amount = :min_accept_amount,
			expected_interest_rate = :expected_interest_rate, currency = :currency, location = :location,
			document_key = :document_key, updated_at = :updated_at
		WHERE id = :id AND status = 'draft'
	`

	result, err := r.db.NamedExecContext(ctx, query, invoice)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return customError.ErrInvoiceNotDraft
	}

	return nil
}

func (r *invoiceRepository) Publish(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `
		UPDATE invoices
		SET status = 'open', updated_at = now()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + invoiceColumns

	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.ErrInvoiceNotDraft
	}
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in the column
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *invoiceRepository) ListOpen(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	conditions := []string{"status = 'open'"}
	var args []interface{}

	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.MinAmount != nil {
		conditions = append(conditions, "invoice_amount >= "+arg(*filter.MinAmount))
	}
	if filter.MaxAmount != nil {
		conditions = append(conditions, "invoice_amount <= "+arg(*filter.MaxAmount))
	}
	if filter.BuyerGSTIN != "" {
		conditions = append(conditions, "buyer_gstin = "+arg(filter.BuyerGSTIN))
	}
	if filter.Counterparty != "" {
		conditions = append(conditions, "buyer_name ILIKE "+arg(containsPattern(filter.Counterparty)))
	}
	if filter.Search != "" {
		p := arg(containsPattern(filter.Search))
		conditions = append(conditions, "(buyer_name ILIKE "+p+" OR invoice_number ILIKE "+p+")")
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	invoices := []*domain.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE borrower_id = $1 ORDER BY created_at DESC`

	invoices := []*domain.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, query, borrowerID); err != nil {
		return nil, err
	}

	return invoices, nil
}
