package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

func sampleInvoice(borrowerID uuid.UUID, status string) *domain.Invoice {
	return &domain.Invoice{
		ID:                   uuid.New(),
		BorrowerID:           borrowerID,
		Type:                 domain.InvoiceTypeTrade,
		InvoiceNumber:        "INV-001",
		BuyerName:            "Acme Retail",
		InvoiceDate:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:              time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC),
		InvoiceAmount:        decimal.NewFromInt(12000),
		RequestedAmount:      decimal.NewFromInt(10000),
		MinAcceptAmount:      decimal.NewFromInt(8000),
		ExpectedInterestRate: decimal.NewFromFloat(12.5),
		Currency:             "INR",
		Status:               status,
	}
}

func TestInvoiceHandler_Create(t *testing.T) {
	borrower := newCaller(domain.CapabilityBorrower)

	validBody := map[string]interface{}{
		"type":                   "trade",
		"invoice_number":         "INV-001",
		"buyer_name":             "Acme Retail",
		"invoice_date":           "2026-03-01",
		"due_date":               "2026-05-30",
		"invoice_amount":         "12000",
		"requested_amount":       "10000",
		"min_accept_amount":      "8000",
		"expected_interest_rate": "12.5",
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*testServer)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "creates a draft",
			body: validBody,
			setupMocks: func(s *testServer) {
				s.listings.On("Create", mock.Anything, borrower, mock.MatchedBy(func(req *domain.InvoiceRequest) bool {
					return req.InvoiceNumber == "INV-001" && req.RequestedAmount.Equal(decimal.NewFromInt(10000))
				})).Return(sampleInvoice(borrower.ID, domain.InvoiceStatusDraft), nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed json",
			body:           `{"type":`,
			setupMocks:     func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   customError.ErrCodeValidation,
		},
		{
			name:           "unknown field",
			body:           `{"type":"trade","status":"open"}`,
			setupMocks:     func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   customError.ErrCodeValidation,
		},
		{
			name: "service validation error",
			body: validBody,
			setupMocks: func(s *testServer) {
				s.listings.On("Create", mock.Anything, borrower, mock.Anything).
					Return(nil, customError.WrapValidation("min_accept_amount must not exceed requested_amount", nil)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   customError.ErrCodeValidation,
		},
		{
			name: "non borrower forbidden",
			body: validBody,
			setupMocks: func(s *testServer) {
				s.listings.On("Create", mock.Anything, borrower, mock.Anything).
					Return(nil, customError.WrapForbidden("only borrowers can create invoices")).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   customError.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.setupMocks(s)

			w := s.do(t, &borrower, http.MethodPost, "/api/v1/invoices", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeEnvelope(t, w).Code)
			} else {
				var invoice domain.Invoice
				decodeData(t, w, &invoice)
				assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
			}
			s.assertExpectations(t)
		})
	}
}

func TestInvoiceHandler_Marketplace(t *testing.T) {
	lender := newCaller(domain.CapabilityLender)

	tests := []struct {
		name           string
		query          string
		setupMocks     func(*testServer)
		expectedStatus int
	}{
		{
			name:  "passes every filter",
			query: "?min_amount=5000&max_amount=20000&buyer_gstin=29ABCDE1234F1Z5&counterparty=acme&q=INV",
			setupMocks: func(s *testServer) {
				s.listings.On("Query", mock.Anything, mock.MatchedBy(func(f domain.InvoiceFilter) bool {
					return f.MinAmount != nil && f.MinAmount.Equal(decimal.NewFromInt(5000)) &&
						f.MaxAmount != nil && f.MaxAmount.Equal(decimal.NewFromInt(20000)) &&
						f.BuyerGSTIN == "29ABCDE1234F1Z5" &&
						f.Counterparty == "acme" &&
						f.Search == "INV"
				})).Return([]*domain.Invoice{sampleInvoice(uuid.New(), domain.InvoiceStatusOpen)}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "no filters",
			query: "",
			setupMocks: func(s *testServer) {
				s.listings.On("Query", mock.Anything, domain.InvoiceFilter{}).Return([]*domain.Invoice{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid amount",
			query:          "?min_amount=lots",
			setupMocks:     func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.setupMocks(s)

			w := s.do(t, &lender, http.MethodGet, "/api/v1/invoices"+tt.query, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			s.assertExpectations(t)
		})
	}
}

func TestInvoiceHandler_Routes(t *testing.T) {
	borrower := newCaller(domain.CapabilityBorrower)
	invoice := sampleInvoice(borrower.ID, domain.InvoiceStatusOpen)

	t.Run("mine is not captured by the id route", func(t *testing.T) {
		s := newTestServer(t)
		s.listings.On("ListMine", mock.Anything, borrower).Return([]*domain.Invoice{invoice}, nil).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/invoices/mine", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var invoices []domain.Invoice
		decodeData(t, w, &invoices)
		assert.Len(t, invoices, 1)
		s.assertExpectations(t)
	})

	t.Run("get by id", func(t *testing.T) {
		s := newTestServer(t)
		s.listings.On("Get", mock.Anything, invoice.ID).Return(invoice, nil).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/invoices/"+invoice.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		s.assertExpectations(t)
	})

	t.Run("get unknown invoice", func(t *testing.T) {
		s := newTestServer(t)
		missing := uuid.New()
		s.listings.On("Get", mock.Anything, missing).Return(nil, customError.WrapInvoiceNotFound(missing.String())).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/invoices/"+missing.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, customError.ErrCodeInvoiceNotFound, decodeEnvelope(t, w).Code)
		s.assertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.assertExpectations(t)
	})

	t.Run("publish", func(t *testing.T) {
		s := newTestServer(t)
		s.listings.On("Publish", mock.Anything, invoice.ID, borrower).Return(invoice, nil).Once()

		w := s.do(t, &borrower, http.MethodPost, "/api/v1/invoices/"+invoice.ID.String()+"/publish", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		s.assertExpectations(t)
	})

	t.Run("publish a non draft", func(t *testing.T) {
		s := newTestServer(t)
		s.listings.On("Publish", mock.Anything, invoice.ID, borrower).
			Return(nil, customError.WrapInvalidState("only draft invoices can be published", customError.ErrInvoiceNotDraft)).Once()

		w := s.do(t, &borrower, http.MethodPost, "/api/v1/invoices/"+invoice.ID.String()+"/publish", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, customError.ErrCodeInvalidState, decodeEnvelope(t, w).Code)
		s.assertExpectations(t)
	})

	t.Run("update", func(t *testing.T) {
		s := newTestServer(t)
		s.listings.On("Update", mock.Anything, invoice.ID, borrower, mock.MatchedBy(func(req *domain.InvoiceRequest) bool {
			return req.BuyerName == "Acme Wholesale"
		})).Return(invoice, nil).Once()

		w := s.do(t, &borrower, http.MethodPut, "/api/v1/invoices/"+invoice.ID.String(), map[string]interface{}{
			"type":                   "trade",
			"invoice_number":         "INV-001",
			"buyer_name":             "Acme Wholesale",
			"invoice_date":           "2026-03-01",
			"due_date":               "2026-05-30",
			"invoice_amount":         "12000",
			"requested_amount":       "10000",
			"min_accept_amount":      "8000",
			"expected_interest_rate": "12.5",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		s.assertExpectations(t)
	})

	t.Run("list for borrower", func(t *testing.T) {
		s := newTestServer(t)
		s.listings.On("ListForBorrower", mock.Anything, borrower.ID, borrower).Return([]*domain.Invoice{invoice}, nil).Once()

		w := s.do(t, &borrower, http.MethodGet, "/api/v1/invoices/borrower/"+borrower.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		s.assertExpectations(t)
	})
}
