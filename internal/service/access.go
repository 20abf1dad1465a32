package service

import (
	"context"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

// offerView is the slice of an invoice's offers one class of caller may see.
type offerView interface {
	offers(ctx context.Context, invoice *domain.Invoice) ([]*domain.FundingOffer, error)
}

// ownerView: the borrower sees every bid still in play.
type ownerView struct {
	repo repository.OfferRepository
}

func (v ownerView) offers(ctx context.Context, invoice *domain.Invoice) ([]*domain.FundingOffer, error) {
	return v.repo.ListByInvoice(ctx, invoice.ID, domain.OfferStatusActive)
}

// adminView sees offers in every status, whatever the invoice state.
type adminView struct {
	repo repository.OfferRepository
}

func (v adminView) offers(ctx context.Context, invoice *domain.Invoice) ([]*domain.FundingOffer, error) {
	return v.repo.ListByInvoice(ctx, invoice.ID)
}

// lenderView shows a lender their own offers while the listing is open.
type lenderView struct {
	repo   repository.OfferRepository
	caller domain.Caller
}

func (v lenderView) offers(ctx context.Context, invoice *domain.Invoice) ([]*domain.FundingOffer, error) {
	if !invoice.IsOpen() {
		return nil, customError.WrapInvalidState("offers are only visible to lenders while the invoice is open", customError.ErrInvoiceNotOpen)
	}
	return v.repo.ListByInvoiceAndLender(ctx, invoice.ID, v.caller.ID)
}

// selectOfferView picks the policy for caller, owner first, then admin, then lender.
func selectOfferView(repo repository.OfferRepository, invoice *domain.Invoice, caller domain.Caller) (offerView, bool) {
	switch {
	case invoice.OwnedBy(caller.ID):
		return ownerView{repo: repo}, true
	case caller.IsAdmin():
		return adminView{repo: repo}, true
	case caller.IsLender():
		return lenderView{repo: repo, caller: caller}, true
	default:
		return nil, false
	}
}
