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
	"github.com/segyhp/invoice-marketplace/pkg/validation"
)

// KYCService stores identity verification submissions and their review
// outcome. It is also the Verifier consulted on every deal read.
type KYCService struct {
	KYCRepo  repository.KYCRepository
	validate *validator.Validate
	now      Clock
}

func NewKYCService(kycRepo repository.KYCRepository) *KYCService {
	return &KYCService{
		KYCRepo:  kycRepo,
		validate: validation.New(),
		now:      utcNow,
	}
}

// Submit records a pending submission for the caller
func (s *KYCService) Submit(ctx context.Context, caller domain.Caller, request *domain.SubmitKYCRequest) (*domain.KYCRecord, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(validation.Describe(err), err)
	}

	now := s.now()
	record := &domain.KYCRecord{
		ID:           uuid.New(),
		UserID:       caller.ID,
		AadhaarLast4: request.AadhaarLast4,
		PANLast4:     request.PANLast4,
		AadhaarKey:   request.AadhaarKey,
		PANKey:       request.PANKey,
		Status:       domain.KYCStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.KYCRepo.Upsert(ctx, record); err != nil {
		if errors.Is(err, customError.ErrKYCAlreadySubmitted) {
			return nil, customError.WrapKYCAlreadySubmitted(caller.ID.String())
		}
		return nil, storageError(err)
	}

	logger.Info(ctx, "kyc submitted", "user_id", caller.ID)
	return record, nil
}

// Status returns a user's record to the user or an admin
func (s *KYCService) Status(ctx context.Context, userID uuid.UUID, caller domain.Caller) (*domain.KYCRecord, error) {
	if caller.ID != userID && !caller.IsAdmin() {
		return nil, customError.WrapForbidden("not allowed to view this KYC record")
	}

	record, err := s.KYCRepo.GetByUserID(ctx, userID)
	if isNotFound(err) {
		return nil, customError.WrapKYCNotFound(userID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}
	return record, nil
}

func (s *KYCService) Approve(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error) {
	return s.review(ctx, userID, domain.KYCStatusVerified, remarks, caller)
}

func (s *KYCService) Reject(ctx context.Context, userID uuid.UUID, remarks string, caller domain.Caller) (*domain.KYCRecord, error) {
	return s.review(ctx, userID, domain.KYCStatusRejected, remarks, caller)
}

func (s *KYCService) review(ctx context.Context, userID uuid.UUID, status, remarks string, caller domain.Caller) (*domain.KYCRecord, error) {
	if !caller.IsAdmin() {
		return nil, customError.WrapForbidden("only administrators can review KYC")
	}

	record, err := s.KYCRepo.SetStatus(ctx, userID, status, remarks)
	if errors.Is(err, customError.ErrKYCNotFound) {
		return nil, customError.WrapKYCNotFound(userID.String())
	}
	if err != nil {
		return nil, storageError(err)
	}

	logger.Info(ctx, "kyc reviewed", "user_id", userID, "status", status, "admin_id", caller.ID)
	return record, nil
}

// IsVerified reports whether userID holds a verified record. No record means unverified.
func (s *KYCService) IsVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	record, err := s.KYCRepo.GetByUserID(ctx, userID)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return record.IsVerified(), nil
}
