// Package tx runs repository calls inside one database transaction. The
// transaction travels in the context so repositories pick it up without
// changing their signatures.
package tx

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type ctxKey struct{}

type Manager struct {
	DB *sql.DB
}

const maxRetries = 5

var ErrRetryExhausted = errors.New("transaction retry exhausted")

// WithTx runs fn in a read-committed transaction and commits when fn
// returns nil. Serialization failures are retried. A ctx that already
// carries a transaction runs fn inside it.
func (m *Manager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}

	for i := 0; i < maxRetries; i++ {
		t, err := m.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}

		err = fn(context.WithValue(ctx, ctxKey{}, t))
		if err != nil {
			_ = t.Rollback()
			if isSerializationError(err) {
				continue
			}
			return err
		}

		if err := t.Commit(); err != nil {
			if isSerializationError(err) {
				continue
			}
			return err
		}
		return nil
	}

	return ErrRetryExhausted
}

// From returns the transaction carried by ctx.
func From(ctx context.Context) (*sql.Tx, bool) {
	t, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return t, ok
}

// Conn returns the transaction carried by ctx, or db outside one.
func Conn(ctx context.Context, db *sql.DB) DBTX {
	if t, ok := From(ctx); ok {
		return t
	}
	return db
}

func isSerializationError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "could not serialize")
}
