package handler

import (
	"net/http"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/pkg/response"
)

type OfferHandler struct {
	offers OfferService
	deals  DealService
}

func NewOfferHandler(offers OfferService, deals DealService) *OfferHandler {
	return &OfferHandler{offers: offers, deals: deals}
}

// Create places the caller's offer on an open invoice
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.CreateOfferRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.FromError(w, err)
		return
	}

	offer, err := h.offers.Create(r.Context(), caller, invoiceID, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, offer)
}

// ListForInvoice returns the offers on an invoice the caller may see
func (h *OfferHandler) ListForInvoice(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	offers, err := h.offers.ListForInvoice(r.Context(), invoiceID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, offers)
}

func (h *OfferHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	offers, err := h.offers.ListForLender(r.Context(), caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, offers)
}

func (h *OfferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	offerID, err := pathUUID(r, "offerId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	offer, err := h.offers.Withdraw(r.Context(), offerID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, offer)
}

// Accept turns the offer into a deal on behalf of the invoice owner
func (h *OfferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	offerID, err := pathUUID(r, "offerId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	deal, err := h.deals.AcceptOffer(r.Context(), offerID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, deal)
}
