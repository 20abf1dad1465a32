package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	KYCStatusPending  = "pending"
	KYCStatusVerified = "verified"
	KYCStatusRejected = "rejected"
)

// KYCRecord is a user's identity-verification submission
type KYCRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	AadhaarLast4 string    `json:"aadhaar_last4" db:"aadhaar_last4"`
	PANLast4     string    `json:"pan_last4" db:"pan_last4"`
	AadhaarKey   string    `json:"aadhaar_key,omitempty" db:"aadhaar_key"`
	PANKey       string    `json:"pan_key,omitempty" db:"pan_key"`
	Status       string    `json:"status" db:"status"`
	Remarks      string    `json:"remarks,omitempty" db:"remarks"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (k *KYCRecord) IsVerified() bool {
	return k.Status == KYCStatusVerified
}

type SubmitKYCRequest struct {
	AadhaarLast4 string `json:"aadhaar_last4" validate:"required,len=4,numeric"`
	PANLast4     string `json:"pan_last4" validate:"required,len=4,alphanum"`
	AadhaarKey   string `json:"aadhaar_key" validate:"required,max=512"`
	PANKey       string `json:"pan_key" validate:"required,max=512"`
}

type ReviewKYCRequest struct {
	Remarks string `json:"remarks" validate:"omitempty,max=1000"`
}
