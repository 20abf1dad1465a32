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

func TestDealHandler_Get(t *testing.T) {
	borrower := newCaller(domain.CapabilityBorrower)
	offer := sampleOffer(uuid.New(), uuid.New(), domain.OfferStatusAccepted)

	t.Run("masked contacts are absent", func(t *testing.T) {
		s := newTestServer(t)
		view := sampleDeal(offer, borrower.ID)
		s.deals.On("ReadDeal", mock.Anything, view.ID, borrower).Return(view, nil).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/deals/"+view.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "borrower_contact")
		assert.NotContains(t, body, "lender_contact")
		assert.Contains(t, body, `"contacts_unlocked":false`)
		s.assertExpectations(t)
	})

	t.Run("unlocked contacts are present", func(t *testing.T) {
		s := newTestServer(t)
		view := sampleDeal(offer, borrower.ID)
		view.ContactsUnlocked = true
		view.BorrowerContact = &domain.Contact{UserID: borrower.ID, FullName: "Asha Rao", KYCVerified: true}
		view.LenderContact = &domain.Contact{UserID: offer.LenderID, FullName: "Lend Co", KYCVerified: true}
		s.deals.On("ReadDeal", mock.Anything, view.ID, borrower).Return(view, nil).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/deals/"+view.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got domain.DealView
		decodeData(t, w, &got)
		assert.True(t, got.ContactsUnlocked)
		if assert.NotNil(t, got.LenderContact) {
			assert.Equal(t, "Lend Co", got.LenderContact.FullName)
			assert.True(t, got.LenderContact.KYCVerified)
		}
		s.assertExpectations(t)
	})

	t.Run("not a party", func(t *testing.T) {
		s := newTestServer(t)
		dealID := uuid.New()
		s.deals.On("ReadDeal", mock.Anything, dealID, borrower).Return(nil, customError.WrapForbidden("not a party to this deal")).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/deals/"+dealID.String(), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		s.assertExpectations(t)
	})

	t.Run("mine", func(t *testing.T) {
		s := newTestServer(t)
		s.deals.On("ListMine", mock.Anything, borrower).Return([]*domain.DealView{sampleDeal(offer, borrower.ID)}, nil).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/deals/mine", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		s.assertExpectations(t)
	})
}

func TestDealHandler_UpdateStatus(t *testing.T) {
	admin := newCaller(domain.CapabilityAdmin)
	offer := sampleOffer(uuid.New(), uuid.New(), domain.OfferStatusAccepted)
	dealID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*testServer)
		expectedStatus int
	}{
		{
			name: "moves the deal",
			body: map[string]string{"status": domain.DealStatusActive},
			setupMocks: func(s *testServer) {
				view := sampleDeal(offer, uuid.New())
				view.Status = domain.DealStatusActive
				s.deals.On("AdminSetStatus", mock.Anything, dealID, domain.DealStatusActive, admin).Return(view, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown status",
			body:           map[string]string{"status": "teleported"},
			setupMocks:     func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing status",
			body:           map[string]string{},
			setupMocks:     func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown deal",
			body: map[string]string{"status": domain.DealStatusSettled},
			setupMocks: func(s *testServer) {
				s.deals.On("AdminSetStatus", mock.Anything, dealID, domain.DealStatusSettled, admin).
					Return(nil, customError.WrapDealNotFound(dealID.String())).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.setupMocks(s)

			w := s.do(t, &admin, http.MethodPut, "/api/v1/deals/"+dealID.String()+"/status", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			s.assertExpectations(t)
		})
	}
}
