package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DealStatusKYCPending  = "kyc_pending"
	DealStatusKYCVerified = "kyc_verified"
	DealStatusActive      = "active"
	DealStatusSettled     = "settled"
	DealStatusCancelled   = "cancelled"
	DealStatusRejected    = "rejected"
)

const (
	ContactVisibilityMasked  = "masked"
	ContactVisibilityVisible = "visible"
)

// dealInvoiceStatus maps a deal status to the invoice status mirrored alongside it.
var dealInvoiceStatus = map[string]string{
	DealStatusKYCPending:  InvoiceStatusKYCPending,
	DealStatusKYCVerified: InvoiceStatusKYCVerified,
	DealStatusActive:      InvoiceStatusActive,
	DealStatusSettled:     InvoiceStatusSettled,
	DealStatusCancelled:   InvoiceStatusCancelled,
	DealStatusRejected:    InvoiceStatusRejected,
}

// InvoiceStatusForDeal returns the invoice status that follows a deal status.
func InvoiceStatusForDeal(dealStatus string) (string, bool) {
	status, ok := dealInvoiceStatus[dealStatus]
	return status, ok
}

func IsDealStatus(status string) bool {
	_, ok := dealInvoiceStatus[status]
	return ok
}

// Deal is the binding record created when a borrower accepts one offer
type Deal struct {
	ID                uuid.UUID `json:"id" db:"id"`
	InvoiceID         uuid.UUID `json:"invoice_id" db:"invoice_id"`
	LenderID          uuid.UUID `json:"lender_id" db:"lender_id"`
	BorrowerID        uuid.UUID `json:"borrower_id" db:"borrower_id"`
	SelectedOfferID   uuid.UUID `json:"selected_offer_id" db:"selected_offer_id"`
	Status            string    `json:"status" db:"status"`
	ContactVisibility string    `json:"contact_visibility" db:"contact_visibility"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

func (d *Deal) Involves(userID uuid.UUID) bool {
	return d.BorrowerID == userID || d.LenderID == userID
}

// DealView is a deal as returned to a party. Contacts are nil, and therefore
// absent from the JSON, unless both parties are verified at read time.
type DealView struct {
	*Deal
	ContactsUnlocked bool     `json:"contacts_unlocked"`
	BorrowerContact  *Contact `json:"borrower_contact,omitempty"`
	LenderContact    *Contact `json:"lender_contact,omitempty"`
}

// AcceptedOffer is the result of the accept transaction.
type AcceptedOffer struct {
	Deal          *Deal
	RejectedCount int64
}

type UpdateDealStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=kyc_pending kyc_verified active settled cancelled rejected"`
}
