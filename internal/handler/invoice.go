package handler

import (
	"net/http"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/pkg/response"
)

type InvoiceHandler struct {
	service ListingService
}

func NewInvoiceHandler(service ListingService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create stores a draft invoice for the caller
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	var request domain.InvoiceRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.FromError(w, err)
		return
	}

	invoice, err := h.service.Create(r.Context(), caller, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, invoice)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.InvoiceRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.FromError(w, err)
		return
	}

	invoice, err := h.service.Update(r.Context(), invoiceID, caller, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoice)
}

func (h *InvoiceHandler) Publish(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	invoice, err := h.service.Publish(r.Context(), invoiceID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoice)
}

// Marketplace lists open invoices. Supported filters: min_amount, max_amount,
// buyer_gstin, counterparty and q.
func (h *InvoiceHandler) Marketplace(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerOrFail(w, r); !ok {
		return
	}

	minAmount, err := queryDecimal(r, "min_amount")
	if err != nil {
		response.FromError(w, err)
		return
	}
	maxAmount, err := queryDecimal(r, "max_amount")
	if err != nil {
		response.FromError(w, err)
		return
	}

	query := r.URL.Query()
	filter := domain.InvoiceFilter{
		MinAmount:    minAmount,
		MaxAmount:    maxAmount,
		BuyerGSTIN:   query.Get("buyer_gstin"),
		Counterparty: query.Get("counterparty"),
		Search:       query.Get("q"),
	}

	invoices, err := h.service.Query(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerOrFail(w, r); !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	invoice, err := h.service.Get(r.Context(), invoiceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoice)
}

func (h *InvoiceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoices, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoices)
}

func (h *InvoiceHandler) ListForBorrower(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	borrowerID, err := pathUUID(r, "borrowerId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	invoices, err := h.service.ListForBorrower(r.Context(), borrowerID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoices)
}
