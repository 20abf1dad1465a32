package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OfferStatusActive    = "active"
	OfferStatusAccepted  = "accepted"
	OfferStatusRejected  = "rejected"
	OfferStatusWithdrawn = "withdrawn"
	OfferStatusExpired   = "expired"
)

// FundingOffer is a lender's bid against one invoice
type FundingOffer struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	InvoiceID      uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	LenderID       uuid.UUID       `json:"lender_id" db:"lender_id"`
	OfferAmount    decimal.Decimal `json:"offer_amount" db:"offer_amount"`
	InterestRatePA decimal.Decimal `json:"interest_rate_pa" db:"interest_rate_pa"`
	ProcessingFee  decimal.Decimal `json:"processing_fee" db:"processing_fee"`
	TenorDays      int             `json:"tenor_days" db:"tenor_days"`
	ValidUntil     time.Time       `json:"valid_until" db:"valid_until"`
	Notes          string          `json:"notes,omitempty" db:"notes"`
	Status         string          `json:"status" db:"status"` // active, accepted, rejected, withdrawn, expired
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// UsableAt reports whether the offer can still be accepted at now.
func (o *FundingOffer) UsableAt(now time.Time) bool {
	return o.Status == OfferStatusActive && now.Before(o.ValidUntil)
}

func (o *FundingOffer) IsTerminal() bool {
	return o.Status != OfferStatusActive
}

type CreateOfferRequest struct {
	OfferAmount    decimal.Decimal `json:"offer_amount" validate:"required,gt=0"`
	InterestRatePA decimal.Decimal `json:"interest_rate_pa" validate:"required,gt=0"`
	ProcessingFee  decimal.Decimal `json:"processing_fee" validate:"gte=0"`
	TenorDays      int             `json:"tenor_days" validate:"required,gt=0"`
	ValidUntil     time.Time       `json:"valid_until" validate:"required"`
	Notes          string          `json:"notes" validate:"omitempty,max=2000"`
}
