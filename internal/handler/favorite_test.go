package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

func TestFavoriteHandler_Add(t *testing.T) {
	lender := newCaller(domain.CapabilityLender)
	invoiceID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setupMocks     func(*testServer)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "adds to watchlist",
			path: "/api/v1/favorites/" + invoiceID.String(),
			setupMocks: func(s *testServer) {
				s.favorites.On("Add", mock.Anything, lender, invoiceID).
					Return(&domain.Favorite{UserID: lender.ID, InvoiceID: invoiceID}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "already favorited",
			path: "/api/v1/favorites/" + invoiceID.String(),
			setupMocks: func(s *testServer) {
				s.favorites.On("Add", mock.Anything, lender, invoiceID).
					Return(nil, customError.WrapAlreadyFavorited(invoiceID.String())).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   customError.ErrCodeAlreadyFavorited,
		},
		{
			name:           "malformed invoice id",
			path:           "/api/v1/favorites/not-a-uuid",
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   customError.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.setupMocks(s)

			w := s.do(t, &lender, http.MethodPost, tt.path, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeEnvelope(t, w).Code)
			}
			s.assertExpectations(t)
		})
	}
}

func TestFavoriteHandler_Remove(t *testing.T) {
	lender := newCaller(domain.CapabilityLender)
	invoiceID := uuid.New()

	t.Run("removes from watchlist", func(t *testing.T) {
		s := newTestServer(t)
		s.favorites.On("Remove", mock.Anything, lender, invoiceID).Return(nil).Once()

		w := s.do(t, &lender, http.MethodDelete, "/api/v1/favorites/"+invoiceID.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		s.assertExpectations(t)
	})

	t.Run("not on watchlist", func(t *testing.T) {
		s := newTestServer(t)
		s.favorites.On("Remove", mock.Anything, lender, invoiceID).
			Return(customError.WrapFavoriteNotFound(invoiceID.String())).Once()

		w := s.do(t, &lender, http.MethodDelete, "/api/v1/favorites/"+invoiceID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, customError.ErrCodeFavoriteNotFound, decodeEnvelope(t, w).Code)
		s.assertExpectations(t)
	})
}

func TestFavoriteHandler_ListAndCheck(t *testing.T) {
	lender := newCaller(domain.CapabilityLender)
	invoiceID := uuid.New()

	t.Run("lists watched invoices", func(t *testing.T) {
		s := newTestServer(t)
		s.favorites.On("List", mock.Anything, lender).
			Return([]*domain.Invoice{{ID: invoiceID, Status: domain.InvoiceStatusOpen}}, nil).Once()

		w := s.do(t, &lender, http.MethodGet, "/api/v1/favorites", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var invoices []domain.Invoice
		decodeData(t, w, &invoices)
		if assert.Len(t, invoices, 1) {
			assert.Equal(t, invoiceID, invoices[0].ID)
		}
		s.assertExpectations(t)
	})

	t.Run("checks one invoice", func(t *testing.T) {
		s := newTestServer(t)
		s.favorites.On("IsFavorited", mock.Anything, lender, invoiceID).
			Return(&domain.FavoriteStatus{InvoiceID: invoiceID, Favorited: true}, nil).Once()

		w := s.do(t, &lender, http.MethodGet, "/api/v1/favorites/"+invoiceID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var status domain.FavoriteStatus
		decodeData(t, w, &status)
		assert.True(t, status.Favorited)
		s.assertExpectations(t)
	})

	t.Run("requires a token", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, nil, http.MethodGet, "/api/v1/favorites", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		s.assertExpectations(t)
	})
}
