package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/invoice-marketplace/internal/domain"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, caller domain.Caller, request *domain.InvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, caller, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller, request *domain.InvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, caller, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockListingService) Publish(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockListingService) Query(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockListingService) ListMine(ctx context.Context, caller domain.Caller) ([]*domain.Invoice, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockListingService) ListForBorrower(ctx context.Context, borrowerID uuid.UUID, caller domain.Caller) ([]*domain.Invoice, error) {
	args := m.Called(ctx, borrowerID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) Create(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID, request *domain.CreateOfferRequest) (*domain.FundingOffer, error) {
	args := m.Called(ctx, caller, invoiceID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferService) ListForLender(ctx context.Context, caller domain.Caller) ([]*domain.FundingOffer, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferService) ListForInvoice(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) ([]*domain.FundingOffer, error) {
	args := m.Called(ctx, invoiceID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundingOffer), args.Error(1)
}

func (m *MockOfferService) Withdraw(ctx context.Context, offerID uuid.UUID, caller domain.Caller) (*domain.FundingOffer, error) {
	args := m.Called(ctx, offerID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingOffer), args.Error(1)
}

type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) AcceptOffer(ctx context.Context, offerID uuid.UUID, caller domain.Caller) (*domain.DealView, error) {
	args := m.Called(ctx, offerID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealView), args.Error(1)
}

func (m *MockDealService) ReadDeal(ctx context.Context, dealID uuid.UUID, caller domain.Caller) (*domain.DealView, error) {
	args := m.Called(ctx, dealID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealView), args.Error(1)
}

func (m *MockDealService) ListMine(ctx context.Context, caller domain.Caller) ([]*domain.DealView, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DealView), args.Error(1)
}

func (m *MockDealService) AdminSetStatus(ctx context.Context, dealID uuid.UUID, status string, caller domain.Caller) (*domain.DealView, error) {
	args := m.Called(ctx, dealID, status, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealView), args.Error(1)
}

type MockKYCService struct {
	mock.Mock
}

func (m *MockKYCService) Submit(ctx context.Context, caller domain.Caller, request *domain.SubmitKYCRequest) (*domain.KYCRecord, error) {
	args := m.Called(ctx, caller, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCRecord), args.Error(1)
}

func (m *MockKYCService) Status(ctx context.Context, userID uuid.UUID, caller domain.Caller) (*domain.KYCRecord, error) {
	args := m.Called(ctx, userID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCRecord), args.Error(1)
}

func (m *MockKYCService) Approve(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error) {
	args := m.Called(ctx, userID, remarks, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCRecord), args.Error(1)
}

func (m *MockKYCService) Reject(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error) {
	args := m.Called(ctx, userID, remarks, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KYCRecord), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Add(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) (*domain.Favorite, error) {
	args := m.Called(ctx, caller, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) error {
	args := m.Called(ctx, caller, invoiceID)
	return args.Error(0)
}

func (m *MockFavoriteService) List(ctx context.Context, caller domain.Caller) ([]*domain.Invoice, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockFavoriteService) IsFavorited(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) (*domain.FavoriteStatus, error) {
	args := m.Called(ctx, caller, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteStatus), args.Error(1)
}
