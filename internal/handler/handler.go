package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/middleware"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/response"
	"github.com/segyhp/invoice-marketplace/pkg/utils"
)

const maxBodyBytes = 1 << 20

type ListingService interface {
	Create(ctx context.Context, caller domain.Caller, request *domain.InvoiceRequest) (*domain.Invoice, error)
	Update(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller, request *domain.InvoiceRequest) (*domain.Invoice, error)
	Publish(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) (*domain.Invoice, error)
	Query(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
	Get(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListMine(ctx context.Context, caller domain.Caller) ([]*domain.Invoice, error)
	ListForBorrower(ctx context.Context, borrowerID uuid.UUID, caller domain.Caller) ([]*domain.Invoice, error)
}

type OfferService interface {
	Create(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID, request *domain.CreateOfferRequest) (*domain.FundingOffer, error)
	ListForLender(ctx context.Context, caller domain.Caller) ([]*domain.FundingOffer, error)
	ListForInvoice(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) ([]*domain.FundingOffer, error)
	Withdraw(ctx context.Context, offerID uuid.UUID, caller domain.Caller) (*domain.FundingOffer, error)
}

type DealService interface {
	AcceptOffer(ctx context.Context, offerID uuid.UUID, caller domain.Caller) (*domain.DealView, error)
	ReadDeal(ctx context.Context, dealID uuid.UUID, caller domain.Caller) (*domain.DealView, error)
	ListMine(ctx context.Context, caller domain.Caller) ([]*domain.DealView, error)
	AdminSetStatus(ctx context.Context, dealID uuid.UUID, status string, caller domain.Caller) (*domain.DealView, error)
}

type KYCService interface {
	Submit(ctx context.Context, caller domain.Caller, request *domain.SubmitKYCRequest) (*domain.KYCRecord, error)
	Status(ctx context.Context, userID uuid.UUID, caller domain.Caller) (*domain.KYCRecord, error)
	Approve(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error)
	Reject(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error)
}

type FavoriteService interface {
	Add(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) error
	List(ctx context.Context, caller domain.Caller) ([]*domain.Invoice, error)
	IsFavorited(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) (*domain.FavoriteStatus, error)
}

// decodeJSON reads a single JSON object from the request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return customError.WrapValidation("request body is required", err)
		}
		return customError.WrapValidation("invalid request body", err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := decodeJSON(w, r, v)
	if err != nil && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, customError.WrapValidation("invalid "+name+": "+raw, err)
	}
	return id, nil
}

func queryDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	value, err := utils.ParseOptionalDecimal(raw)
	if err != nil {
		return nil, customError.WrapValidation("invalid "+name+": "+raw, err)
	}
	return value, nil
}

// callerOrFail writes a 401 when the request carries no caller
func callerOrFail(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.FromError(w, err)
		return domain.Caller{}, false
	}
	return caller, true
}
