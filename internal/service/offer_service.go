package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
	"github.com/segyhp/invoice-marketplace/pkg/validation"
)

type OfferService struct {
	OfferRepo   repository.OfferRepository
	InvoiceRepo repository.InvoiceRepository
	validate    *validator.Validate
	now         Clock
}

func NewOfferService(offerRepo repository.OfferRepository, invoiceRepo repository.InvoiceRepository) *OfferService {
	return &OfferService{
		OfferRepo:   offerRepo,
		InvoiceRepo: invoiceRepo,
		validate:    validation.New(),
		now:         utcNow,
	}
}

// Create places a lender's bid on an open invoice
func (s *OfferService) Create(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID, request *domain.CreateOfferRequest) (*domain.FundingOffer, error) {
	if !caller.IsLender() {
		return nil, customError.WrapForbidden("only lenders can place offers")
	}

	if err := s.validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.Describe(err), err)
	}

	invoice, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.OwnedBy(caller.ID) {
		return nil, customError.WrapForbidden("borrowers cannot bid on their own invoices")
	}
	if !invoice.IsOpen() {
		return nil, customError.WrapInvalidState("offers can only be placed on open invoices", customError.ErrInvoiceNotOpen)
	}

	now := s.now()
	if !request.ValidUntil.After(now) {
		return nil, customError.WrapValidation("valid_until must be in the future", nil)
	}
	if !invoice.AcceptsOfferAmount(request.OfferAmount) {
		return nil, customError.WrapValidation(
			"offer_amount must be between min_accept_amount "+invoice.MinAcceptAmount.String()+
				" and requested_amount "+invoice.RequestedAmount.String(), nil)
	}

	exists, err := s.OfferRepo.ExistsActive(ctx, invoiceID, caller.ID)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		return nil, customError.WrapDuplicateOffer(invoiceID.String())
	}

	offer := &domain.FundingOffer{
		ID:             uuid.New(),
		InvoiceID:      invoiceID,
		LenderID:       caller.ID,
		OfferAmount:    request.OfferAmount,
		InterestRatePA: request.InterestRatePA,
		ProcessingFee:  request.ProcessingFee,
		TenorDays:      request.TenorDays,
		ValidUntil:     request.ValidUntil.UTC(),
		Notes:          request.Notes,
		Status:         domain.OfferStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.OfferRepo.Create(ctx, offer); err != nil {
		// Lost the race to a concurrent create from the same lender.
		if errors.Is(err, customError.ErrDuplicateOffer) {
			return nil, customError.WrapDuplicateOffer(invoiceID.String())
		}
		// Lost the race to an accept or a status change on the invoice.
		if errors.Is(err, customError.ErrInvoiceNotOpen) {
			return nil, customError.WrapInvalidState("offers can only be placed on open invoices", customError.ErrInvoiceNotOpen)
		}
		if isNotFound(err) {
			return nil, customError.WrapInvoiceNotFound(invoiceID.String())
		}
		return nil, storageError(err)
	}

	logger.Info(ctx, "offer placed", "offer_id", offer.ID, "invoice_id", invoiceID, "lender_id", caller.ID)
	return offer, nil
}

// ListForLender returns every offer the caller has placed
func (s *OfferService) ListForLender(ctx context.Context, caller domain.Caller) ([]*domain.FundingOffer, error) {
	if !caller.IsLender() {
		return nil, customError.WrapForbidden("only lenders have offers")
	}

	offers, err := s.OfferRepo.ListByLender(ctx, caller.ID)
	if err != nil {
		return nil, storageError(err)
	}
	return offers, nil
}

// ListForInvoice returns the offers on an invoice that caller is allowed to see
func (s *OfferService) ListForInvoice(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) ([]*domain.FundingOffer, error) {
	invoice, err := s.loadInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	view, ok := selectOfferView(s.OfferRepo, invoice, caller)
	if !ok {
		return nil, customError.WrapForbidden("not allowed to view offers on this invoice")
	}

	offers, err := view.offers(ctx, invoice)
	if err != nil {
		return nil, storageError(err)
	}
	return offers, nil
}

// Withdraw retracts the caller's active offer
func (s *OfferService) Withdraw(ctx context.Context, offerID uuid.UUID, caller domain.Caller) (*domain.FundingOffer, error) {
	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if isNotFound(err) {
		return nil, customError.WrapOfferNotFound(offerID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	if offer.LenderID != caller.ID {
		return nil, customError.WrapForbidden("only the lender who placed the offer can withdraw it")
	}
	if offer.IsTerminal() {
		return nil, customError.WrapOfferUnavailable(offerID.String())
	}

	withdrawn, err := s.OfferRepo.Withdraw(ctx, offerID)
	if errors.Is(err, customError.ErrOfferUnavailable) {
		return nil, customError.WrapOfferUnavailable(offerID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	logger.Info(ctx, "offer withdrawn", "offer_id", offerID)
	return withdrawn, nil
}

// SweepExpired expires every active offer whose validity ended before now
func (s *OfferService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.OfferRepo.SweepExpired(ctx, now)
	if err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

func (s *OfferService) loadInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.InvoiceRepo.GetByID(ctx, invoiceID)
	if isNotFound(err) {
		return nil, customError.WrapInvoiceNotFound(invoiceID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}
	return invoice, nil
}
