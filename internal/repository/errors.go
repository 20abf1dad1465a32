package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"

	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

// Postgres error codes that mean a concurrent transaction won and the caller may retry.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

const activeLenderOfferIndex = "funding_offers_active_lender_uidx"

// isRetryable reports whether err was caused by losing a race against another transaction.
func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case codeUniqueViolation, codeSerializationFailure, codeDeadlockDetected,
		codeLockNotAvailable, codeQueryCanceled:
		return true
	}
	return false
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == codeUniqueViolation && pqErr.Constraint == constraint
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == codeForeignKeyViolation
}

// txError converts a failure inside a write transaction into a retryable
// conflict where appropriate. Other errors pass through unchanged.
func txError(err error) error {
	if err == nil {
		return nil
	}
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	if isRetryable(err) {
		return customError.WrapConflict(err)
	}
	return err
}
