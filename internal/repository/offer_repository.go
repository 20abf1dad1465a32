package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

const offerColumns = `id, invoice_id, lender_id, offer_amount, interest_rate_pa, processing_fee, tenor_days,
	valid_until, notes, status, created_at, updated_at`

type offerRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewOfferRepository(db *sqlx.DB, txTimeout time.Duration) OfferRepository {
	return &offerRepository{db: db, txTimeout: txTimeout}
}

// Create inserts offer only while its invoice is still open. The invoice row
// is held FOR SHARE until commit, which excludes a concurrent accept.
func (r *offerRepository) Create(ctx context.Context, offer *domain.FundingOffer) error {
	return txError(r.create(ctx, offer))
}

func (r *offerRepository) create(ctx context.Context, offer *domain.FundingOffer) error {
	ctx, tx, cancel, err := beginTx(ctx, r.db, r.txTimeout)
	if err != nil {
		return err
	}
	defer cancel()
	defer tx.Rollback()

	var invoiceStatus string
	err = tx.GetContext(ctx, &invoiceStatus,
		`SELECT status FROM invoices WHERE id = $1 FOR SHARE`, offer.InvoiceID)
	if err != nil {
		return err
	}
	if invoiceStatus != domain.InvoiceStatusOpen {
		return customError.ErrInvoiceNotOpen
	}

	query := `
		INSERT INTO funding_offers (` + offerColumns + `)
		VALUES (:id, :invoice_id, :lender_id, :offer_amount, :interest_rate_pa, :processing_fee, :tenor_days,
			:valid_until, :notes, :status, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, query, offer)
	if isUniqueViolation(err, activeLenderOfferIndex) {
		return customError.ErrDuplicateOffer
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM funding_offers WHERE id = $1`

	var offer domain.FundingOffer
	if err := r.db.GetContext(ctx, &offer, query, id); err != nil {
		return nil, err
	}

	return &offer, nil
}

func (r *offerRepository) ExistsActive(ctx context.Context, invoiceID, lenderID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM funding_offers
			WHERE invoice_id = $1 AND lender_id = $2 AND status = 'active'
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, invoiceID, lenderID); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *offerRepository) ListByLender(ctx context.Context, lenderID uuid.UUID) ([]*domain.FundingOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM funding_offers WHERE lender_id = $1 ORDER BY created_at DESC`

	offers := []*domain.FundingOffer{}
	if err := r.db.SelectContext(ctx, &offers, query, lenderID); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *offerRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID, statuses ...string) ([]*domain.FundingOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM funding_offers WHERE invoice_id = $1`
	args := []interface{}{invoiceID}

	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, pq.Array(statuses))
	}
	query += ` ORDER BY created_at DESC`

	offers := []*domain.FundingOffer{}
	if err := r.db.SelectContext(ctx, &offers, query, args...); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *offerRepository) ListByInvoiceAndLender(ctx context.Context, invoiceID, lenderID uuid.UUID) ([]*domain.FundingOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM funding_offers
		WHERE invoice_id = $1 AND lender_id = $2
		ORDER BY created_at DESC
	`

	offers := []*domain.FundingOffer{}
	if err := r.db.SelectContext(ctx, &offers, query, invoiceID, lenderID); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *offerRepository) Withdraw(ctx context.Context, id uuid.UUID) (*domain.FundingOffer, error) {
	query := `
		UPDATE funding_offers
		SET status = 'withdrawn', updated_at = now()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + offerColumns

	var offer domain.FundingOffer
	err := r.db.GetContext(ctx, &offer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.ErrOfferUnavailable
	}
	if err != nil {
		return nil, err
	}

	return &offer, nil
}

func (r *offerRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE funding_offers
		SET status = 'expired', updated_at = $1
		WHERE status = 'active' AND valid_until < $1
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
