package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	if favorite.FavoritedAt.IsZero() {
		favorite.FavoritedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO favorites (user_id, invoice_id, favorited_at)
		VALUES (:user_id, :invoice_id, :favorited_at)
		ON CONFLICT (user_id, invoice_id) DO NOTHING
	`

	result, err := r.db.NamedExecContext(ctx, query, favorite)
	if isForeignKeyViolation(err) {
		return sql.ErrNoRows
	}
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.ErrAlreadyFavorited
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND invoice_id = $2`, userID, invoiceID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, invoiceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND invoice_id = $2)`, userID, invoiceID)
	return exists, err
}

func (r *favoriteRepository) ListInvoices(ctx context.Context, userID uuid.UUID) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		JOIN favorites ON favorites.invoice_id = invoices.id
		WHERE favorites.user_id = $1
		ORDER BY favorites.favorited_at DESC
	`

	invoices := []*domain.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, query, userID); err != nil {
		return nil, err
	}
	return invoices, nil
}
