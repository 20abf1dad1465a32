package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/internal/domain"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
	"github.com/segyhp/invoice-marketplace/pkg/utils"
)

// FavoriteService keeps each user's watchlist of invoices
type FavoriteService struct {
	FavoriteRepo repository.FavoriteRepository
	InvoiceRepo  repository.InvoiceRepository
	now          Clock
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, invoiceRepo repository.InvoiceRepository) *FavoriteService {
	return &FavoriteService{
		FavoriteRepo: favoriteRepo,
		InvoiceRepo:  invoiceRepo,
		now:          utcNow,
	}
}

// Add puts the invoice on the caller's watchlist
func (s *FavoriteService) Add(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) (*domain.Favorite, error) {
	if err := s.ensureInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}

	favorite := &domain.Favorite{
		UserID:      caller.ID,
		InvoiceID:   invoiceID,
		FavoritedAt: s.now(),
	}

	if err := s.FavoriteRepo.Add(ctx, favorite); err != nil {
		if errors.Is(err, customError.ErrAlreadyFavorited) {
			return nil, customError.WrapAlreadyFavorited(invoiceID.String())
		}
		if isNotFound(err) {
			return nil, customError.WrapInvoiceNotFound(invoiceID.String())
		}
		return nil, storageError(err)
	}

	logger.Info(ctx, "invoice favorited", "invoice_id", invoiceID, "user_id", caller.ID)
	return favorite, nil
}

// Remove takes the invoice off the caller's watchlist
func (s *FavoriteService) Remove(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) error {
	if err := s.ensureInvoice(ctx, invoiceID); err != nil {
		return err
	}

	if err := s.FavoriteRepo.Remove(ctx, caller.ID, invoiceID); err != nil {
		if errors.Is(err, customError.ErrFavoriteNotFound) {
			return customError.WrapFavoriteNotFound(invoiceID.String())
		}
		return storageError(err)
	}
	return nil
}

// List returns the caller's watched invoices, newest first
func (s *FavoriteService) List(ctx context.Context, caller domain.Caller) ([]*domain.Invoice, error) {
	invoices, err := s.FavoriteRepo.ListInvoices(ctx, caller.ID)
	if err != nil {
		return nil, storageError(err)
	}

	for _, invoice := range invoices {
		invoice.TenorDays = utils.TenorDays(invoice.InvoiceDate, invoice.DueDate)
	}
	return invoices, nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, caller domain.Caller, invoiceID uuid.UUID) (*domain.FavoriteStatus, error) {
	if err := s.ensureInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}

	favorited, err := s.FavoriteRepo.Exists(ctx, caller.ID, invoiceID)
	if err != nil {
		return nil, storageError(err)
	}
	return &domain.FavoriteStatus{InvoiceID: invoiceID, Favorited: favorited}, nil
}

func (s *FavoriteService) ensureInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	_, err := s.InvoiceRepo.GetByID(ctx, invoiceID)
	if isNotFound(err) {
		return customError.WrapInvoiceNotFound(invoiceID.String())
	}
	if err != nil {
		return storageError(err)
	}
	return nil
}
