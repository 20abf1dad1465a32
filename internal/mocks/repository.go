package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/invoice-marketplace/internal/domain"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateDraft(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Publish(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListOpen(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.Invoice, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, offer *domain.FundingOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundingOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferRepository) ExistsActive(ctx context.Context, invoiceID, lenderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, invoiceID, lenderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) ListByLender(ctx context.Context, lenderID uuid.UUID) ([]*domain.FundingOffer, error) {
	args := m.Called(ctx, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID, statuses ...string) ([]*domain.FundingOffer, error) {
	args := m.Called(ctx, invoiceID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferRepository) ListByInvoiceAndLender(ctx context.Context, invoiceID, lenderID uuid.UUID) ([]*domain.FundingOffer, error) {
	args := m.Called(ctx, invoiceID, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferRepository) Withdraw(ctx context.Context, id uuid.UUID) (*domain.FundingOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) CreateFromOffer(ctx context.Context, offer *domain.FundingOffer, borrowerID uuid.UUID, now time.Time) (*domain.AcceptedOffer, error) {
	args := m.Called(ctx, offer, borrowerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcceptedOffer), args.Error(1)
}

func (m *MockDealRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, visibility, invoiceStatus string) (*domain.Deal, error) {
	args := m.Called(ctx, id, status, visibility, invoiceStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetContact(ctx context.Context, userID uuid.UUID) (*domain.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

type MockKYCRepository struct {
	mock.Mock
}

func (m *MockKYCRepository) Upsert(ctx context.Context, record *domain.KYCRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockKYCRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.KYCRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCRecord), args.Error(1)
}

func (m *MockKYCRepository) SetStatus(ctx context.Context, userID uuid.UUID, status, remarks string) (*domain.KYCRecord, error) {
	args := m.Called(ctx, userID, status, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCRecord), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) IsVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockDocumentURLer struct {
	mock.Mock
}

func (m *MockDocumentURLer) DownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, userID, invoiceID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, invoiceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, invoiceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListInvoices(ctx context.Context, userID uuid.UUID) ([]*domain.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}
