package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/sstepanov/recall-api/internal/platform/logger"
	"github.com/sstepanov/recall-api/internal/store"
)

// defaultTxAttempts bounds how many times a transaction is retried on
// serialization conflicts before the failure is surfaced to the caller.
const defaultTxAttempts = 3

// TxRunner implements store.Runner against a PostgreSQL database,
// retrying transactions that lose a serialization conflict or deadlock
// a bounded number of times. Each attempt runs the function with a
// fresh transaction, so the function must be idempotent from the top.
type TxRunner struct {
	db          *sql.DB
	logger      *slog.Logger
	maxAttempts int
}

// NewTxRunner creates a TxRunner for the given database connection.
// If logger is nil, a default logger will be used.
func NewTxRunner(db *sql.DB, logger *slog.Logger) *TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TxRunner{
		db:          db,
		logger:      logger.With(slog.String("component", "tx_runner")),
		maxAttempts: defaultTxAttempts,
	}
}

// Ensure TxRunner implements store.Runner interface
var _ store.Runner = (*TxRunner)(nil)

// RunInTransaction implements store.Runner.RunInTransaction.
func (r *TxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = store.RunInTransaction(ctx, r.db, fn)
		if err == nil {
			return nil
		}

		if !IsTransientConflict(err) {
			return err
		}

		if attempt == r.maxAttempts {
			break
		}

		log.Warn("retrying transaction after conflict",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		// Small backoff keeps two conflicting writers from colliding
		// again immediately.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}

	log.Error("transaction conflict retries exhausted",
		slog.Int("attempts", r.maxAttempts),
		slog.String("error", err.Error()))
	return fmt.Errorf("%w: retries exhausted: %v", store.ErrTransactionConflict, err)
}
