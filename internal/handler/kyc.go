package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/response"
	"github.com/segyhp/invoice-marketplace/pkg/validation"
)

type KYCHandler struct {
	service   KYCService
	validator *validator.Validate
}

func NewKYCHandler(service KYCService) *KYCHandler {
	return &KYCHandler{
		service:   service,
		validator: validation.New(),
	}
}

func (h *KYCHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	var request domain.SubmitKYCRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.FromError(w, err)
		return
	}

	record, err := h.service.Submit(r.Context(), caller, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, record)
}

func (h *KYCHandler) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	record, err := h.service.Status(r.Context(), userID, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *KYCHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.Approve)
}

func (h *KYCHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.Reject)
}

type reviewFunc func(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error)

func (h *KYCHandler) review(w http.ResponseWriter, r *http.Request, decide reviewFunc) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.ReviewKYCRequest
	if err := decodeOptionalJSON(w, r, &request); err != nil {
		response.FromError(w, err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.FromError(w, customError.WrapValidation(validation.Describe(err), err))
		return
	}

	record, err := decide(r.Context(), userID, request.Remarks, caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, record)
}
