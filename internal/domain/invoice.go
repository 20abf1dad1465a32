package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusDraft           = "draft"
	InvoiceStatusUnderReview     = "under_review"
	InvoiceStatusOpen            = "open"
	InvoiceStatusOfferAccepted   = "offer_accepted"
	InvoiceStatusKYCPending      = "kyc_pending"
	InvoiceStatusKYCVerified     = "kyc_verified"
	InvoiceStatusAgreementSigned = "agreement_signed"
	InvoiceStatusDisbursement    = "disbursement"
	InvoiceStatusActive          = "active"
	InvoiceStatusSettled         = "settled"
	InvoiceStatusCancelled       = "cancelled"
	InvoiceStatusRejected        = "rejected"
)

const (
	InvoiceTypeTrade         = "trade"
	InvoiceTypeService       = "service"
	InvoiceTypeMixed         = "mixed"
	InvoiceTypeInvoice       = "invoice"
	InvoiceTypePurchaseOrder = "purchase_order"
)

// DateLayout is the wire format of invoice and due dates.
const DateLayout = "2006-01-02"

// Invoice represents a borrower-owned receivable offered for financing
type Invoice struct {
	ID                   uuid.UUID       `json:"id" db:"id"`
	BorrowerID           uuid.UUID       `json:"borrower_id" db:"borrower_id"`
	Type                 string          `json:"type" db:"type"`
	InvoiceNumber        string          `json:"invoice_number" db:"invoice_number"`
	BuyerName            string          `json:"buyer_name" db:"buyer_name"`
	BuyerGSTIN           string          `json:"buyer_gstin,omitempty" db:"buyer_gstin"`
	InvoiceDate          time.Time       `json:"invoice_date" db:"invoice_date"`
	DueDate              time.Time       `json:"due_date" db:"due_date"`
	InvoiceAmount        decimal.Decimal `json:"invoice_amount" db:"invoice_amount"`
	RequestedAmount      decimal.Decimal `json:"requested_amount" db:"requested_amount"`
	MinAcceptAmount      decimal.Decimal `json:"min_accept_amount" db:"min_accept_amount"`
	ExpectedInterestRate decimal.Decimal `json:"expected_interest_rate" db:"expected_interest_rate"`
	Currency             string          `json:"currency" db:"currency"`
	Location             string          `json:"location,omitempty" db:"location"`
	DocumentKey          *string         `json:"document_key,omitempty" db:"document_key"`
	Status               string          `json:"status" db:"status"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`

	// Resolved per response, never stored.
	DocumentDownloadURL string `json:"document_download_url,omitempty" db:"-"`
	TenorDays           int    `json:"tenor_days" db:"-"`
}

func (i *Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusOpen
}

func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

func (i *Invoice) OwnedBy(userID uuid.UUID) bool {
	return i.BorrowerID == userID
}

// AcceptsOfferAmount reports whether amount lies within [MinAcceptAmount, RequestedAmount].
func (i *Invoice) AcceptsOfferAmount(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(i.MinAcceptAmount) && amount.LessThanOrEqual(i.RequestedAmount)
}

// DTOs for requests and responses

type InvoiceRequest struct {
	Type                 string          `json:"type" validate:"required,oneof=trade service mixed invoice purchase_order"`
	InvoiceNumber        string          `json:"invoice_number" validate:"required,max=100"`
	BuyerName            string          `json:"buyer_name" validate:"required,max=255"`
	BuyerGSTIN           string          `json:"buyer_gstin" validate:"omitempty,max=15"`
	InvoiceDate          string          `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	DueDate              string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	InvoiceAmount        decimal.Decimal `json:"invoice_amount" validate:"required,gt=0"`
	RequestedAmount      decimal.Decimal `json:"requested_amount" validate:"required,gt=0"`
	MinAcceptAmount      decimal.Decimal `json:"min_accept_amount" validate:"required,gt=0"`
	ExpectedInterestRate decimal.Decimal `json:"expected_interest_rate" validate:"required,gt=0"`
	Currency             string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Location             string          `json:"location" validate:"omitempty,max=255"`
	DocumentKey          string          `json:"document_key" validate:"omitempty,max=512"`
}

// InvoiceFilter narrows the marketplace query. Zero values are ignored.
type InvoiceFilter struct {
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	BuyerGSTIN   string
	Counterparty string
	Search       string
}
