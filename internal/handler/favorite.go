package handler

import (
	"net/http"

	"github.com/segyhp/invoice-marketplace/pkg/response"
)

type FavoriteHandler struct {
	service FavoriteService
}

func NewFavoriteHandler(service FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	favorite, err := h.service.Add(r.Context(), caller, invoiceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, favorite)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.service.Remove(r.Context(), caller, invoiceID); err != nil {
		response.FromError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoices, err := h.service.List(r.Context(), caller)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, invoices)
}

// Check reports whether the caller watches the invoice
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	invoiceID, err := pathUUID(r, "invoiceId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	status, err := h.service.IsFavorited(r.Context(), caller, invoiceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, status)
}
