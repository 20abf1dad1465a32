package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/invoice-marketplace/internal/domain"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetContact(ctx context.Context, userID uuid.UUID) (*domain.Contact, error) {
	query := `
		SELECT id, full_name, company_name, email, phone, address, city, state, pincode, website, gstin, pan
		FROM users
		WHERE id = $1
	`

	var contact domain.Contact
	if err := r.db.GetContext(ctx, &contact, query, userID); err != nil {
		return nil, err
	}

	return &contact, nil
}
