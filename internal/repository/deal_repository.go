package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

const dealColumns = `id, invoice_id, lender_id, borrower_id, selected_offer_id, status, contact_visibility,
	created_at, updated_at`

type dealRepository struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

func NewDealRepository(db *sqlx.DB, txTimeout time.Duration) DealRepository {
	return &dealRepository{db: db, txTimeout: txTimeout}
}

func (r *dealRepository) beginTx(ctx context.Context) (context.Context, *sqlx.Tx, context.CancelFunc, error) {
	return beginTx(ctx, r.db, r.txTimeout)
}

func (r *dealRepository) CreateFromOffer(ctx context.Context, offer *domain.FundingOffer, borrowerID uuid.UUID, now time.Time) (*domain.AcceptedOffer, error) {
	result, err := r.createFromOffer(ctx, offer, borrowerID, now)
	return result, txError(err)
}

func (r *dealRepository) createFromOffer(ctx context.Context, offer *domain.FundingOffer, borrowerID uuid.UUID, now time.Time) (*domain.AcceptedOffer, error) {
	ctx, tx, cancel, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	// Serializes every accept on this invoice.
	var invoiceStatus string
	err = tx.GetContext(ctx, &invoiceStatus,
		`SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, offer.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoiceStatus != domain.InvoiceStatusOpen {
		return nil, customError.ErrInvoiceNotOpen
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE funding_offers
		SET status = 'accepted', updated_at = $2
		WHERE id = $1 AND status = 'active' AND valid_until > $2
	`, offer.ID, now)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, customError.ErrOfferUnavailable
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE invoices SET status = 'offer_accepted', updated_at = $2 WHERE id = $1
	`, offer.InvoiceID, now); err != nil {
		return nil, err
	}

	deal := &domain.Deal{
		ID:                uuid.New(),
		InvoiceID:         offer.InvoiceID,
		LenderID:          offer.LenderID,
		BorrowerID:        borrowerID,
		SelectedOfferID:   offer.ID,
		Status:            domain.DealStatusKYCPending,
		ContactVisibility: domain.ContactVisibilityMasked,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err = tx.NamedExecContext(ctx, `
		INSERT INTO deals (`+dealColumns+`)
		VALUES (:id, :invoice_id, :lender_id, :borrower_id, :selected_offer_id, :status, :contact_visibility,
			:created_at, :updated_at)
	`, deal); err != nil {
		return nil, err
	}

	result, err = tx.ExecContext(ctx, `
		UPDATE funding_offers
		SET status = 'rejected', updated_at = $3
		WHERE invoice_id = $1 AND id <> $2 AND status = 'active'
	`, offer.InvoiceID, offer.ID, now)
	if err != nil {
		return nil, err
	}
	rejected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.AcceptedOffer{Deal: deal, RejectedCount: rejected}, nil
}

func (r *dealRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	var deal domain.Deal
	if err := r.db.GetContext(ctx, &deal, query, id); err != nil {
		return nil, err
	}

	return &deal, nil
}

func (r *dealRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals
		WHERE borrower_id = $1 OR lender_id = $1
		ORDER BY created_at DESC
	`

	deals := []*domain.Deal{}
	if err := r.db.SelectContext(ctx, &deals, query, userID); err != nil {
		return nil, err
	}

	return deals, nil
}

func (r *dealRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, visibility, invoiceStatus string) (*domain.Deal, error) {
	deal, err := r.updateStatus(ctx, id, status, visibility, invoiceStatus)
	return deal, txError(err)
}

func (r *dealRepository) updateStatus(ctx context.Context, id uuid.UUID, status, visibility, invoiceStatus string) (*domain.Deal, error) {
	ctx, tx, cancel, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	var deal domain.Deal
	err = tx.GetContext(ctx, &deal, `
		UPDATE deals
		SET status = $2, contact_visibility = COALESCE(NULLIF($3, ''), contact_visibility), updated_at = now()
		WHERE id = $1
		RETURNING `+dealColumns, id, status, visibility)
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1
	`, deal.InvoiceID, invoiceStatus); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &deal, nil
}
