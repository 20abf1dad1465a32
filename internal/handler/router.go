package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/segyhp/invoice-marketplace/internal/config"
	"github.com/segyhp/invoice-marketplace/internal/idempotency"
	"github.com/segyhp/invoice-marketplace/internal/middleware"
)

type RouterConfig struct {
	Auth           *config.AuthConfig
	Idempotency    idempotency.Store
	IdempotencyTTL time.Duration
}

type Handlers struct {
	Health   *HealthHandler
	Invoice  *InvoiceHandler
	Offer    *OfferHandler
	Deal     *DealHandler
	KYC      *KYCHandler
	Favorite *FavoriteHandler
}

// NewRouter wires every route. Literal segments such as /mine are registered
// before the matching {id} routes.
func NewRouter(cfg RouterConfig, h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.RequestLogger, middleware.Recovery)

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Auth))

	replay := func(f http.HandlerFunc) http.Handler { return f }
	if cfg.Idempotency != nil {
		guard := idempotency.Middleware(cfg.Idempotency, cfg.IdempotencyTTL)
		replay = func(f http.HandlerFunc) http.Handler { return guard(f) }
	}

	// Invoices
	api.HandleFunc("/invoices", h.Invoice.Create).Methods(http.MethodPost)
	api.HandleFunc("/invoices", h.Invoice.Marketplace).Methods(http.MethodGet)
	api.HandleFunc("/invoices/mine", h.Invoice.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/invoices/borrower/{borrowerId}", h.Invoice.ListForBorrower).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{invoiceId}", h.Invoice.Get).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{invoiceId}", h.Invoice.Update).Methods(http.MethodPut)
	api.HandleFunc("/invoices/{invoiceId}/publish", h.Invoice.Publish).Methods(http.MethodPost)

	// Offers
	api.HandleFunc("/invoices/{invoiceId}/offers", h.Offer.ListForInvoice).Methods(http.MethodGet)
	api.Handle("/invoices/{invoiceId}/offers", replay(h.Offer.Create)).Methods(http.MethodPost)
	api.HandleFunc("/offers/mine", h.Offer.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/offers/{offerId}/withdraw", h.Offer.Withdraw).Methods(http.MethodPost)
	api.Handle("/offers/{offerId}/accept", replay(h.Offer.Accept)).Methods(http.MethodPost)

	// Deals
	api.HandleFunc("/deals/mine", h.Deal.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/deals/{dealId}", h.Deal.Get).Methods(http.MethodGet)
	api.HandleFunc("/deals/{dealId}/status", h.Deal.UpdateStatus).Methods(http.MethodPut)

	// KYC
	api.HandleFunc("/kyc", h.KYC.Submit).Methods(http.MethodPost)
	api.HandleFunc("/kyc/{userId}", h.KYC.Status).Methods(http.MethodGet)
	api.HandleFunc("/kyc/{userId}/approve", h.KYC.Approve).Methods(http.MethodPost)
	api.HandleFunc("/kyc/{userId}/reject", h.KYC.Reject).Methods(http.MethodPost)

	// Favorites
	api.HandleFunc("/favorites", h.Favorite.List).Methods(http.MethodGet)
	api.HandleFunc("/favorites/{invoiceId}", h.Favorite.Check).Methods(http.MethodGet)
	api.HandleFunc("/favorites/{invoiceId}", h.Favorite.Add).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{invoiceId}", h.Favorite.Remove).Methods(http.MethodDelete)

	return router
}
