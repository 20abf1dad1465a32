package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a BusinessError for the caller
type Kind string

const (
	KindValidation      Kind = "validation"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthenticated"
	KindInternal        Kind = "internal"
)

// Domain errors
var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrDealNotFound        = errors.New("deal not found")
	ErrKYCNotFound         = errors.New("kyc record not found")
	ErrOfferUnavailable    = errors.New("offer no longer available")
	ErrInvoiceNotOpen      = errors.New("invoice is not open")
	ErrInvoiceNotDraft     = errors.New("invoice is not a draft")
	ErrDuplicateOffer      = errors.New("lender already holds an active offer on this invoice")
	ErrConcurrentUpdate    = errors.New("concurrent update, retry the request")
	ErrKYCAlreadySubmitted = errors.New("kyc already submitted")
	ErrFavoriteNotFound    = errors.New("favorite not found")
	ErrAlreadyFavorited    = errors.New("invoice already in favorites")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(kind Kind, code, message string, err error) *BusinessError {
	return &BusinessError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeInvoiceNotFound   = "INVOICE_NOT_FOUND"
	ErrCodeOfferNotFound     = "OFFER_NOT_FOUND"
	ErrCodeDealNotFound      = "DEAL_NOT_FOUND"
	ErrCodeKYCNotFound       = "KYC_NOT_FOUND"
	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeOfferUnavailable  = "OFFER_UNAVAILABLE"
	ErrCodeDuplicateOffer    = "DUPLICATE_OFFER"
	ErrCodeKYCAlreadyPresent = "KYC_ALREADY_SUBMITTED"
	ErrCodeFavoriteNotFound  = "FAVORITE_NOT_FOUND"
	ErrCodeAlreadyFavorited  = "ALREADY_FAVORITED"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// KindOf returns the kind of the first BusinessError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Wrap common errors with business context

func WrapValidation(message string, err error) *BusinessError {
	if err == nil {
		err = ErrValidation
	}
	return NewBusinessError(KindValidation, ErrCodeValidation, message, err)
}

func WrapForbidden(message string) *BusinessError {
	return NewBusinessError(KindForbidden, ErrCodeForbidden, message, ErrForbidden)
}

func WrapUnauthenticated(message string) *BusinessError {
	return NewBusinessError(KindUnauthenticated, ErrCodeUnauthenticated, message, ErrUnauthenticated)
}

func WrapInvoiceNotFound(invoiceID string) *BusinessError {
	return NewBusinessError(
		KindNotFound,
		ErrCodeInvoiceNotFound,
		fmt.Sprintf("Invoice with ID %s not found", invoiceID),
		ErrInvoiceNotFound,
	)
}

func WrapOfferNotFound(offerID string) *BusinessError {
	return NewBusinessError(
		KindNotFound,
		ErrCodeOfferNotFound,
		fmt.Sprintf("Offer with ID %s not found", offerID),
		ErrOfferNotFound,
	)
}

func WrapDealNotFound(dealID string) *BusinessError {
	return NewBusinessError(
		KindNotFound,
		ErrCodeDealNotFound,
		fmt.Sprintf("Deal with ID %s not found", dealID),
		ErrDealNotFound,
	)
}

func WrapKYCNotFound(userID string) *BusinessError {
	return NewBusinessError(
		KindNotFound,
		ErrCodeKYCNotFound,
		fmt.Sprintf("No KYC record found for user %s", userID),
		ErrKYCNotFound,
	)
}

func WrapInvalidState(message string, err error) *BusinessError {
	return NewBusinessError(KindInvalidState, ErrCodeInvalidState, message, err)
}

func WrapOfferUnavailable(offerID string) *BusinessError {
	return NewBusinessError(
		KindInvalidState,
		ErrCodeOfferUnavailable,
		fmt.Sprintf("Offer with ID %s is no longer available", offerID),
		ErrOfferUnavailable,
	)
}

func WrapDuplicateOffer(invoiceID string) *BusinessError {
	return NewBusinessError(
		KindConflict,
		ErrCodeDuplicateOffer,
		fmt.Sprintf("An active offer on invoice %s already exists for this lender", invoiceID),
		ErrDuplicateOffer,
	)
}

func WrapKYCAlreadySubmitted(userID string) *BusinessError {
	return NewBusinessError(
		KindConflict,
		ErrCodeKYCAlreadyPresent,
		fmt.Sprintf("KYC already submitted for user %s", userID),
		ErrKYCAlreadySubmitted,
	)
}

func WrapFavoriteNotFound(invoiceID string) *BusinessError {
	return NewBusinessError(
		KindNotFound,
		ErrCodeFavoriteNotFound,
		fmt.Sprintf("Invoice %s is not in favorites", invoiceID),
		ErrFavoriteNotFound,
	)
}

func WrapAlreadyFavorited(invoiceID string) *BusinessError {
	return NewBusinessError(
		KindConflict,
		ErrCodeAlreadyFavorited,
		fmt.Sprintf("Invoice %s is already in favorites", invoiceID),
		ErrAlreadyFavorited,
	)
}

// WrapConflict marks err as a retryable concurrency failure.
func WrapConflict(err error) *BusinessError {
	return NewBusinessError(
		KindConflict,
		ErrCodeConflict,
		"the request conflicted with a concurrent update, please retry",
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		KindInternal,
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		KindInternal,
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
