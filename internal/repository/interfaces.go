package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/invoice-marketplace/internal/domain"
)

// InvoiceRepository defines the interface for invoice listing data operations
type InvoiceRepository interface {
	// Create inserts a new draft invoice
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// UpdateDraft rewrites the editable fields of an invoice still in draft.
	// Returns ErrInvoiceNotDraft when the row exists but has left draft.
	UpdateDraft(ctx context.Context, invoice *domain.Invoice) error

	// Publish moves a draft invoice to open
	Publish(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// ListOpen returns open invoices matching the filter, newest first
	ListOpen(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)

	// ListByBorrower returns every invoice owned by the borrower, newest first
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.Invoice, error)
}

// OfferRepository defines the interface for funding offer data operations
type OfferRepository interface {
	// Create inserts a new active offer
	Create(ctx context.Context, offer *domain.FundingOffer) error

	// GetByID retrieves an offer by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingOffer, error)

	// ExistsActive reports whether the lender holds an active offer on the invoice
	ExistsActive(ctx context.Context, invoiceID, lenderID uuid.UUID) (bool, error)

	// ListByLender returns every offer placed by the lender, newest first
	ListByLender(ctx context.Context, lenderID uuid.UUID) ([]*domain.FundingOffer, error)

	// ListByInvoice returns offers on the invoice, newest first. An empty
	// status list returns offers in every status.
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID, statuses ...string) ([]*domain.FundingOffer, error)

	// ListByInvoiceAndLender returns the lender's offers on one invoice
	ListByInvoiceAndLender(ctx context.Context, invoiceID, lenderID uuid.UUID) ([]*domain.FundingOffer, error)

	// Withdraw moves an active offer to withdrawn. Returns ErrOfferUnavailable
	// when the offer is no longer active.
	Withdraw(ctx context.Context, id uuid.UUID) (*domain.FundingOffer, error)

	// SweepExpired expires every active offer whose validity ended before now
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// DealRepository defines the interface for deal data operations
type DealRepository interface {
	// CreateFromOffer accepts the offer, closes out its siblings, moves the
	// invoice to offer_accepted and inserts the deal in one transaction.
	CreateFromOffer(ctx context.Context, offer *domain.FundingOffer, borrowerID uuid.UUID, now time.Time) (*domain.AcceptedOffer, error)

	// GetByID retrieves a deal by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error)

	// ListForUser returns deals where the user is borrower or lender, newest first
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deal, error)

	// UpdateStatus sets the deal status and mirrors it onto the invoice
	UpdateStatus(ctx context.Context, id uuid.UUID, status, visibility, invoiceStatus string) (*domain.Deal, error)
}

// UserRepository defines the interface for user profile reads
type UserRepository interface {
	// GetContact retrieves the contact record disclosed on a deal
	GetContact(ctx context.Context, userID uuid.UUID) (*domain.Contact, error)
}

// KYCRepository defines the interface for identity verification records
type KYCRepository interface {
	// Upsert stores a pending submission, replacing a previously rejected one
	Upsert(ctx context.Context, record *domain.KYCRecord) error

	// GetByUserID retrieves the user's KYC record
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.KYCRecord, error)

	// SetStatus records a review outcome
	SetStatus(ctx context.Context, userID uuid.UUID, status, remarks string) (*domain.KYCRecord, error)
}

// FavoriteRepository defines the interface for a user's invoice watchlist
type FavoriteRepository interface {
	// Add stores the favorite, failing with ErrAlreadyFavorited if present
	Add(ctx context.Context, favorite *domain.Favorite) error

	// Remove deletes the favorite, failing with ErrFavoriteNotFound if absent
	Remove(ctx context.Context, userID, invoiceID uuid.UUID) error

	// Exists reports whether the user watches the invoice
	Exists(ctx context.Context, userID, invoiceID uuid.UUID) (bool, error)

	// ListInvoices returns the user's watched invoices, most recently added first
	ListInvoices(ctx context.Context, userID uuid.UUID) ([]*domain.Invoice, error)
}
