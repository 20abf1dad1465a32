package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/response"
	"github.com/segyhp/invoice-marketplace/pkg/validation"
)

type DealHandler struct {
	service   DealService
	validator *validator.Validate
}

func NewDealHandler(service DealService) *DealHandler {
	return &DealHandler{
		service:   service,
		validator: validation.New(),
	}
}

func (h *DealHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	deals, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, deals)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	dealID, err := pathUUID(r, "dealId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	deal, err := h.service.ReadDeal(r.Context(), dealID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, deal)
}

// UpdateStatus is the administrator's manual progression of a deal
func (h *DealHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	dealID, err := pathUUID(r, "dealId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.UpdateDealStatusRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.FromError(w, err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.FromError(w, customError.WrapValidation(validation.Describe(err), err))
		return
	}

	deal, err := h.service.AdminSetStatus(r.Context(), dealID, request.Status, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, deal)
}
