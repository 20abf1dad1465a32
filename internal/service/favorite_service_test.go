package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/mocks"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

func newTestFavoriteService(favorites *mocks.MockFavoriteRepository, invoices *mocks.MockInvoiceRepository) *FavoriteService {
	s := NewFavoriteService(favorites, invoices)
	s.now = fixedClock
	return s
}

func TestFavoriteService_Add(t *testing.T) {
	caller := lenderCaller()

	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFavoriteRepository, *mocks.MockInvoiceRepository, *domain.Invoice)
		expectedKind customError.Kind
		expectedCode string
	}{
		{
			name: "Success",
			setupMocks: func(favorites *mocks.MockFavoriteRepository, invoices *mocks.MockInvoiceRepository, inv *domain.Invoice) {
				invoices.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
				favorites.On("Add", mock.Anything, mock.MatchedBy(func(f *domain.Favorite) bool {
					return f.UserID == caller.ID && f.InvoiceID == inv.ID && f.FavoritedAt.Equal(fixedNow)
				})).Return(nil)
			},
		},
		{
			name: "Failure - invoice not found",
			setupMocks: func(favorites *mocks.MockFavoriteRepository, invoices *mocks.MockInvoiceRepository, inv *domain.Invoice) {
				invoices.On("GetByID", mock.Anything, inv.ID).Return(nil, sql.ErrNoRows)
			},
			expectedKind: customError.KindNotFound,
			expectedCode: customError.ErrCodeInvoiceNotFound,
		},
		{
			name: "Failure - already favorited",
			setupMocks: func(favorites *mocks.MockFavoriteRepository, invoices *mocks.MockInvoiceRepository, inv *domain.Invoice) {
				invoices.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
				favorites.On("Add", mock.Anything, mock.Anything).Return(customError.ErrAlreadyFavorited)
			},
			expectedKind: customError.KindConflict,
			expectedCode: customError.ErrCodeAlreadyFavorited,
		},
		{
			name: "Failure - invoice removed before insert",
			setupMocks: func(favorites *mocks.MockFavoriteRepository, invoices *mocks.MockInvoiceRepository, inv *domain.Invoice) {
				invoices.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
				favorites.On("Add", mock.Anything, mock.Anything).Return(sql.ErrNoRows)
			},
			expectedKind: customError.KindNotFound,
			expectedCode: customError.ErrCodeInvoiceNotFound,
		},
		{
			name: "Failure - database error",
			setupMocks: func(favorites *mocks.MockFavoriteRepository, invoices *mocks.MockInvoiceRepository, inv *domain.Invoice) {
				invoices.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
				favorites.On("Add", mock.Anything, mock.Anything).Return(errors.New("boom"))
			},
			expectedKind: customError.KindInternal,
			expectedCode: customError.ErrCodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			favorites := &mocks.MockFavoriteRepository{}
			invoices := &mocks.MockInvoiceRepository{}
			invoice := openInvoice(uuid.New())
			tt.setupMocks(favorites, invoices, invoice)

			service := newTestFavoriteService(favorites, invoices)
			favorite, err := service.Add(context.Background(), caller, invoice.ID)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Nil(t, favorite)
				assert.Equal(t, tt.expectedKind, customError.KindOf(err))
				var be *customError.BusinessError
				require.True(t, errors.As(err, &be))
				assert.Equal(t, tt.expectedCode, be.Code)
			} else {
				require.NoError(t, err)
				assert.Equal(t, invoice.ID, favorite.InvoiceID)
			}

			favorites.AssertExpectations(t)
			invoices.AssertExpectations(t)
		})
	}
}

func TestFavoriteService_Remove(t *testing.T) {
	caller := lenderCaller()

	tests := []struct {
		name         string
		removeErr    error
		expectedKind customError.Kind
	}{
		{name: "Success"},
		{name: "Failure - not on watchlist", removeErr: customError.ErrFavoriteNotFound, expectedKind: customError.KindNotFound},
		{name: "Failure - database error", removeErr: errors.New("boom"), expectedKind: customError.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			favorites := &mocks.MockFavoriteRepository{}
			invoices := &mocks.MockInvoiceRepository{}
			invoice := openInvoice(uuid.New())
			invoices.On("GetByID", mock.Anything, invoice.ID).Return(invoice, nil)
			favorites.On("Remove", mock.Anything, caller.ID, invoice.ID).Return(tt.removeErr)

			err := newTestFavoriteService(favorites, invoices).Remove(context.Background(), caller, invoice.ID)

			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, customError.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
			favorites.AssertExpectations(t)
			invoices.AssertExpectations(t)
		})
	}
}

func TestFavoriteService_List(t *testing.T) {
	caller := lenderCaller()
	favorites := &mocks.MockFavoriteRepository{}
	invoices := &mocks.MockInvoiceRepository{}

	watched := openInvoice(uuid.New())
	watched.InvoiceDate = fixedNow
	watched.DueDate = fixedNow.Add(90 * 24 * time.Hour)
	favorites.On("ListInvoices", mock.Anything, caller.ID).Return([]*domain.Invoice{watched}, nil)

	result, err := newTestFavoriteService(favorites, invoices).List(context.Background(), caller)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 90, result[0].TenorDays)
	favorites.AssertExpectations(t)
}

func TestFavoriteService_IsFavorited(t *testing.T) {
	caller := lenderCaller()

	t.Run("reports watchlist membership", func(t *testing.T) {
		favorites := &mocks.MockFavoriteRepository{}
		invoices := &mocks.MockInvoiceRepository{}
		invoice := openInvoice(uuid.New())
		invoices.On("GetByID", mock.Anything, invoice.ID).Return(invoice, nil)
		favorites.On("Exists", mock.Anything, caller.ID, invoice.ID).Return(true, nil)

		status, err := newTestFavoriteService(favorites, invoices).IsFavorited(context.Background(), caller, invoice.ID)

		require.NoError(t, err)
		assert.True(t, status.Favorited)
		assert.Equal(t, invoice.ID, status.InvoiceID)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		favorites := &mocks.MockFavoriteRepository{}
		invoices := &mocks.MockInvoiceRepository{}
		invoiceID := uuid.New()
		invoices.On("GetByID", mock.Anything, invoiceID).Return(nil, sql.ErrNoRows)

		status, err := newTestFavoriteService(favorites, invoices).IsFavorited(context.Background(), caller, invoiceID)

		assert.Nil(t, status)
		assert.Equal(t, customError.KindNotFound, customError.KindOf(err))
		favorites.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})
}
