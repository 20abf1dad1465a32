package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is an invoice on a user's watchlist
type Favorite struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	InvoiceID   uuid.UUID `json:"invoice_id" db:"invoice_id"`
	FavoritedAt time.Time `json:"favorited_at" db:"favorited_at"`
}

// FavoriteStatus answers whether the caller watches an invoice
type FavoriteStatus struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	Favorited bool      `json:"favorited"`
}
