package domain

import (
	"github.com/google/uuid"
)

// Capability is a role a user holds on the marketplace.
type Capability string

const (
	CapabilityBorrower Capability = "borrower"
	CapabilityLender   Capability = "lender"
	CapabilityAdmin    Capability = "admin"
)

// Caller is the authenticated user behind a request.
type Caller struct {
	ID           uuid.UUID    `json:"id"`
	Capabilities []Capability `json:"capabilities"`
}

func (c Caller) Has(capability Capability) bool {
	for _, held := range c.Capabilities {
		if held == capability {
			return true
		}
	}
	return false
}

func (c Caller) IsBorrower() bool { return c.Has(CapabilityBorrower) }
func (c Caller) IsLender() bool   { return c.Has(CapabilityLender) }
func (c Caller) IsAdmin() bool    { return c.Has(CapabilityAdmin) }

// Contact is the counter-party record disclosed on a deal once both sides are verified.
type Contact struct {
	UserID      uuid.UUID `json:"user_id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	CompanyName string    `json:"company_name" db:"company_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	Pincode     string    `json:"pincode" db:"pincode"`
	Website     string    `json:"website" db:"website"`
	GSTIN       string    `json:"gstin" db:"gstin"`
	PAN         string    `json:"pan" db:"pan"`
	KYCVerified bool      `json:"kyc_verified" db:"-"`
}
