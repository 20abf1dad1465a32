package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

const kycColumns = `id, user_id, aadhaar_last4, pan_last4, aadhaar_key, pan_key, status, remarks, created_at, updated_at`

type kycRepository struct {
	db *sqlx.DB
}

func NewKYCRepository(db *sqlx.DB) KYCRepository {
	return &kycRepository{db: db}
}

// Upsert only overwrites an existing record that was rejected.
func (r *kycRepository) Upsert(ctx context.Context, record *domain.KYCRecord) error {
	query := `
		INSERT INTO kyc_records (` + kycColumns + `)
		VALUES (:id, :user_id, :aadhaar_last4, :pan_last4, :aadhaar_key, :pan_key, :status, :remarks, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET aadhaar_last4 = EXCLUDED.aadhaar_last4, pan_last4 = EXCLUDED.pan_last4,
			aadhaar_key = EXCLUDED.aadhaar_key, pan_key = EXCLUDED.pan_key,
			status = EXCLUDED.status, remarks = '', updated_at = EXCLUDED.updated_at
		WHERE kyc_records.status = 'rejected'
		RETURNING id, created_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, record)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return customError.ErrKYCAlreadySubmitted
	}

	return rows.Scan(&record.ID, &record.CreatedAt)
}

func (r *kycRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.KYCRecord, error) {
	query := `SELECT ` + kycColumns + ` FROM kyc_records WHERE user_id = $1`

	var record domain.KYCRecord
	if err := r.db.GetContext(ctx, &record, query, userID); err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *kycRepository) SetStatus(ctx context.Context, userID uuid.UUID, status, remarks string) (*domain.KYCRecord, error) {
	query := `
		UPDATE kyc_records
		SET status = $2, remarks = $3, updated_at = now()
		WHERE user_id = $1
		RETURNING ` + kycColumns

	var record domain.KYCRecord
	err := r.db.GetContext(ctx, &record, query, userID, status, remarks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.ErrKYCNotFound
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}
