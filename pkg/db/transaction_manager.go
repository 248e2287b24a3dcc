// pkg/db/transaction_manager.go
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Executor is the subset of sqlx operations the repositories need.
// Both *sqlx.DB and *sqlx.Tx implement it, so a repository method can run
// either standalone or inside a unit of work.
type Executor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxManager runs a function inside a single database transaction. All stores
// invoked with the provided Executor commit together or roll back together.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(q Executor) error) error
}

type sqlxTxManager struct {
	db *sqlx.DB
}

// NewTxManager creates a TxManager backed by the given sqlx connection pool.
func NewTxManager(conn *sqlx.DB) TxManager {
	return &sqlxTxManager{db: conn}
}

// RunInTx begins a transaction, invokes fn with the transactional executor and
// commits. Any error from fn (or a panic) rolls the transaction back.
func (m *sqlxTxManager) RunInTx(ctx context.Context, fn func(q Executor) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
