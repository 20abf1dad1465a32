package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
)

// Verifier answers whether a user has passed identity verification
type Verifier interface {
	IsVerified(ctx context.Context, userID uuid.UUID) (bool, error)
}

type DealService struct {
	DealRepo    repository.DealRepository
	OfferRepo   repository.OfferRepository
	InvoiceRepo repository.InvoiceRepository
	UserRepo    repository.UserRepository
	verifier    Verifier
	now         Clock
}

func NewDealService(
	dealRepo repository.DealRepository,
	offerRepo repository.OfferRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	verifier Verifier,
) *DealService {
	return &DealService{
		DealRepo:    dealRepo,
		OfferRepo:   offerRepo,
		InvoiceRepo: invoiceRepo,
		UserRepo:    userRepo,
		verifier:    verifier,
		now:         utcNow,
	}
}

// AcceptOffer turns one offer into a deal. Of all concurrent accepts on the
// same invoice only the first to commit succeeds.
func (s *DealService) AcceptOffer(ctx context.Context, offerID uuid.UUID, caller domain.Caller) (*domain.DealView, error) {
	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if isNotFound(err) {
		return nil, customError.WrapOfferNotFound(offerID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	invoice, err := s.InvoiceRepo.GetByID(ctx, offer.InvoiceID)
	if isNotFound(err) {
		return nil, customError.WrapInvoiceNotFound(offer.InvoiceID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	if !invoice.OwnedBy(caller.ID) {
		return nil, customError.WrapForbidden("only the invoice owner can accept offers")
	}

	now := s.now()
	if !offer.UsableAt(now) {
		return nil, customError.WrapOfferUnavailable(offerID.String())
	}

	accepted, err := s.DealRepo.CreateFromOffer(ctx, offer, invoice.BorrowerID, now)
	switch {
	case errors.Is(err, customError.ErrOfferUnavailable):
		return nil, customError.WrapOfferUnavailable(offerID.String())
	case errors.Is(err, customError.ErrInvoiceNotOpen):
		return nil, customError.WrapInvalidState("invoice is no longer open for offers", err)
	case isNotFound(err):
		return nil, customError.WrapInvoiceNotFound(offer.InvoiceID.String())
	case err != nil:
		if customError.IsKind(err, customError.KindConflict) {
			logger.Warn(ctx, "offer acceptance conflicted", "offer_id", offerID, "error", err)
		}
		return nil, storageError(err)
	}

	logger.Info(ctx, "offer accepted",
		"deal_id", accepted.Deal.ID,
		"offer_id", offerID,
		"invoice_id", offer.InvoiceID,
		"rejected_siblings", accepted.RejectedCount,
	)

	return s.view(ctx, accepted.Deal)
}

// ReadDeal returns the deal to one of its parties or an admin. Contacts are
// attached only when both parties are verified right now.
func (s *DealService) ReadDeal(ctx context.Context, dealID uuid.UUID, caller domain.Caller) (*domain.DealView, error) {
	deal, err := s.DealRepo.GetByID(ctx, dealID)
	if isNotFound(err) {
		return nil, customError.WrapDealNotFound(dealID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	if !deal.Involves(caller.ID) && !caller.IsAdmin() {
		return nil, customError.WrapForbidden("not a party to this deal")
	}

	return s.view(ctx, deal)
}

// ListMine returns every deal the caller is a party to
func (s *DealService) ListMine(ctx context.Context, caller domain.Caller) ([]*domain.DealView, error) {
	deals, err := s.DealRepo.ListForUser(ctx, caller.ID)
	if err != nil {
		return nil, storageError(err)
	}

	views := make([]*domain.DealView, 0, len(deals))
	for _, deal := range deals {
		view, err := s.view(ctx, deal)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// AdminSetStatus moves a deal to any known status and mirrors it onto the invoice
func (s *DealService) AdminSetStatus(ctx context.Context, dealID uuid.UUID, status string, caller domain.Caller) (*domain.DealView, error) {
	if !caller.IsAdmin() {
		return nil, customError.WrapForbidden("only administrators can change deal status")
	}

	invoiceStatus, ok := domain.InvoiceStatusForDeal(status)
	if !ok {
		return nil, customError.WrapValidation("unknown deal status "+status, nil)
	}

	// Stored hint only; reads re-check verification.
	visibility := ""
	if status == domain.DealStatusKYCVerified {
		visibility = domain.ContactVisibilityVisible
	}

	deal, err := s.DealRepo.UpdateStatus(ctx, dealID, status, visibility, invoiceStatus)
	if isNotFound(err) {
		return nil, customError.WrapDealNotFound(dealID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	logger.Info(ctx, "deal status changed", "deal_id", dealID, "status", status, "admin_id", caller.ID)
	return s.view(ctx, deal)
}

func (s *DealService) view(ctx context.Context, deal *domain.Deal) (*domain.DealView, error) {
	view := &domain.DealView{Deal: deal}

	if !s.isVerified(ctx, deal.BorrowerID) || !s.isVerified(ctx, deal.LenderID) {
		return view, nil
	}

	borrower, err := s.contact(ctx, deal.BorrowerID)
	if err != nil {
		return nil, err
	}
	lender, err := s.contact(ctx, deal.LenderID)
	if err != nil {
		return nil, err
	}

	view.ContactsUnlocked = true
	view.BorrowerContact = borrower
	view.LenderContact = lender
	return view, nil
}

func (s *DealService) contact(ctx context.Context, userID uuid.UUID) (*domain.Contact, error) {
	contact, err := s.UserRepo.GetContact(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	contact.KYCVerified = true
	return contact, nil
}

// isVerified treats an oracle failure as unverified.
func (s *DealService) isVerified(ctx context.Context, userID uuid.UUID) bool {
	verified, err := s.verifier.IsVerified(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "verification lookup failed", "user_id", userID, "error", err)
		return false
	}
	return verified
}
