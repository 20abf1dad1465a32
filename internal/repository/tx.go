package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// beginTx opens a transaction bounded by timeout, both client side through
// the context and server side through lock_timeout and statement_timeout.
func beginTx(ctx context.Context, db *sqlx.DB, timeout time.Duration) (context.Context, *sqlx.Tx, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	ms := timeout.Milliseconds()
	for _, stmt := range []string{
		fmt.Sprintf("SET LOCAL lock_timeout = %d", ms),
		fmt.Sprintf("SET LOCAL statement_timeout = %d", ms),
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			cancel()
			return nil, nil, nil, err
		}
	}

	return ctx, tx, cancel, nil
}
