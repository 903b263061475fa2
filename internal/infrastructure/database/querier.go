package database

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql used by repositories.
//
// Both *sql.DB and *sql.Tx satisfy it, so a repository can be bound to the
// shared connection for standalone operations or to an open transaction when
// a service needs multiple statements to commit atomically (registration's
// user+device pair, batch setpoint submission).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
