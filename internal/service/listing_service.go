package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
	"github.com/segyhp/invoice-marketplace/pkg/utils"
	"github.com/segyhp/invoice-marketplace/pkg/validation"
)

// DocumentURLer issues download links for stored invoice documents
type DocumentURLer interface {
	DownloadURL(ctx context.Context, key string) (string, error)
}

type ListingService struct {
	InvoiceRepo     repository.InvoiceRepository
	documents       DocumentURLer
	defaultCurrency string
	validate        *validator.Validate
	now             Clock
}

// NewListingService builds the listing manager. documents may be nil, in
// which case invoices are returned without download links.
func NewListingService(invoiceRepo repository.InvoiceRepository, documents DocumentURLer, defaultCurrency string) *ListingService {
	return &ListingService{
		InvoiceRepo:     invoiceRepo,
		documents:       documents,
		defaultCurrency: defaultCurrency,
		validate:        validation.New(),
		now:             utcNow,
	}
}

// Create stores a new draft invoice owned by the caller
func (s *ListingService) Create(ctx context.Context, caller domain.Caller, request *domain.InvoiceRequest) (*domain.Invoice, error) {
	if !caller.IsBorrower() {
		return nil, customError.WrapForbidden("only borrowers can create invoices")
	}

	now := s.now()
	invoice := &domain.Invoice{
		ID:         uuid.New(),
		BorrowerID: caller.ID,
		Status:     domain.InvoiceStatusDraft,
		CreatedAt:  now,
	}
	if err := s.apply(invoice, request); err != nil {
		return nil, err
	}
	invoice.UpdatedAt = now

	if err := s.InvoiceRepo.Create(ctx, invoice); err != nil {
		return nil, storageError(err)
	}

	logger.Info(ctx, "invoice created", "invoice_id", invoice.ID, "borrower_id", caller.ID)
	return s.decorate(ctx, invoice), nil
}

// Update rewrites a draft invoice. Only the owner may edit, and only while draft.
func (s *ListingService) Update(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller, request *domain.InvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.loadOwnedDraft(ctx, invoiceID, caller)
	if err != nil {
		return nil, err
	}

	if err := s.apply(invoice, request); err != nil {
		return nil, err
	}
	invoice.UpdatedAt = s.now()

	if err := s.InvoiceRepo.UpdateDraft(ctx, invoice); err != nil {
		return nil, s.draftError(err)
	}

	return s.decorate(ctx, invoice), nil
}

// Publish lists a draft invoice on the marketplace
func (s *ListingService) Publish(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) (*domain.Invoice, error) {
	if _, err := s.loadOwnedDraft(ctx, invoiceID, caller); err != nil {
		return nil, err
	}

	invoice, err := s.InvoiceRepo.Publish(ctx, invoiceID)
	if err != nil {
		return nil, s.draftError(err)
	}

	logger.Info(ctx, "invoice published", "invoice_id", invoice.ID)
	return s.decorate(ctx, invoice), nil
}

// Query returns open invoices matching filter, newest first
func (s *ListingService) Query(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return nil, customError.WrapValidation("min_amount must not exceed max_amount", nil)
	}

	invoices, err := s.InvoiceRepo.ListOpen(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}

	return s.decorateAll(ctx, invoices), nil
}

// Get returns any invoice to any authenticated caller
func (s *ListingService) Get(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.load(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, invoice), nil
}

// ListMine returns the calling borrower's invoices in every status
func (s *ListingService) ListMine(ctx context.Context, caller domain.Caller) ([]*domain.Invoice, error) {
	if !caller.IsBorrower() {
		return nil, customError.WrapForbidden("only borrowers own invoices")
	}
	return s.listByBorrower(ctx, caller.ID)
}

// ListForBorrower lets lenders and admins review one borrower's invoices
func (s *ListingService) ListForBorrower(ctx context.Context, borrowerID uuid.UUID, caller domain.Caller) ([]*domain.Invoice, error) {
	if caller.ID != borrowerID && !caller.IsLender() && !caller.IsAdmin() {
		return nil, customError.WrapForbidden("not allowed to list this borrower's invoices")
	}
	return s.listByBorrower(ctx, borrowerID)
}

func (s *ListingService) listByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.Invoice, error) {
	invoices, err := s.InvoiceRepo.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, storageError(err)
	}
	return s.decorateAll(ctx, invoices), nil
}

func (s *ListingService) load(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.InvoiceRepo.GetByID(ctx, invoiceID)
	if isNotFound(err) {
		return nil, customError.WrapInvoiceNotFound(invoiceID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}
	return invoice, nil
}

func (s *ListingService) loadOwnedDraft(ctx context.Context, invoiceID uuid.UUID, caller domain.Caller) (*domain.Invoice, error) {
	invoice, err := s.load(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.OwnedBy(caller.ID) {
		return nil, customError.WrapForbidden("only the owning borrower can modify this invoice")
	}
	if !invoice.IsDraft() {
		return nil, customError.WrapInvalidState("invoice can only be changed while in draft", customError.ErrInvoiceNotDraft)
	}
	return invoice, nil
}

func (s *ListingService) draftError(err error) error {
	if errors.Is(err, customError.ErrInvoiceNotDraft) {
		return customError.WrapInvalidState("invoice can only be changed while in draft", err)
	}
	return storageError(err)
}

// apply validates request and copies it onto invoice
func (s *ListingService) apply(invoice *domain.Invoice, request *domain.InvoiceRequest) error {
	if err := s.validate.Struct(request); err != nil {
		return customError.WrapValidation(validation.Describe(err), err)
	}

	invoiceDate, err := utils.ParseDate(request.InvoiceDate)
	if err != nil {
		return customError.WrapValidation("invoice_date must be YYYY-MM-DD", err)
	}
	dueDate, err := utils.ParseDate(request.DueDate)
	if err != nil {
		return customError.WrapValidation("due_date must be YYYY-MM-DD", err)
	}
	if dueDate.Before(invoiceDate) {
		return customError.WrapValidation("due_date must not be before invoice_date", nil)
	}

	if request.MinAcceptAmount.GreaterThan(request.RequestedAmount) {
		return customError.WrapValidation("min_accept_amount must not exceed requested_amount", nil)
	}
	if request.RequestedAmount.GreaterThan(request.InvoiceAmount) {
		return customError.WrapValidation("requested_amount must not exceed invoice_amount", nil)
	}

	currency := request.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	invoice.Type = request.Type
	invoice.InvoiceNumber = request.InvoiceNumber
	invoice.BuyerName = request.BuyerName
	invoice.BuyerGSTIN = request.BuyerGSTIN
	invoice.InvoiceDate = invoiceDate
	invoice.DueDate = dueDate
	invoice.InvoiceAmount = request.InvoiceAmount
	invoice.RequestedAmount = request.RequestedAmount
	invoice.MinAcceptAmount = request.MinAcceptAmount
	invoice.ExpectedInterestRate = request.ExpectedInterestRate
	invoice.Currency = currency
	invoice.Location = request.Location
	invoice.DocumentKey = utils.StringPtr(request.DocumentKey)
	return nil
}

// decorate fills the per-response fields. A failed document lookup only drops the link.
func (s *ListingService) decorate(ctx context.Context, invoice *domain.Invoice) *domain.Invoice {
	invoice.TenorDays = utils.TenorDays(invoice.InvoiceDate, invoice.DueDate)

	if s.documents == nil || invoice.DocumentKey == nil {
		return invoice
	}

	url, err := s.documents.DownloadURL(ctx, *invoice.DocumentKey)
	if err != nil {
		logger.Warn(ctx, "document url lookup failed", "invoice_id", invoice.ID, "error", err)
		return invoice
	}
	invoice.DocumentDownloadURL = url
	return invoice
}

func (s *ListingService) decorateAll(ctx context.Context, invoices []*domain.Invoice) []*domain.Invoice {
	for _, invoice := range invoices {
		s.decorate(ctx, invoice)
	}
	return invoices
}
