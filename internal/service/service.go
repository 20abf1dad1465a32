package service

import (
	"database/sql"
	"errors"
	"time"

	customError "github.com/segyhp/invoice-marketplace/pkg/errors"
)

// Clock returns the current time. Services take one so tests can pin now.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// storageError keeps business errors raised by a repository and wraps anything else.
func storageError(err error) error {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return customError.WrapDatabaseError(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
