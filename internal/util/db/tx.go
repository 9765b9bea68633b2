package db

import (
	"context"
	"database/sql"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/pkg/errors"

	"github/vaultbridge/hw-wallet/internal/util"
)

// TxFn is the function signature executed within a database transaction.
type TxFn func(boil.ContextExecutor) error

// WithTransaction runs the given function within a database transaction,
// committing on success and rolling back on error or panic.
func WithTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			if txErr := tx.Rollback(); txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after panic")
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if txErr := tx.Rollback(); txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
			util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
