package store

import (
	"context"
	"database/sql"
)

// Stores accept the narrowest sqlx capability they need so callers can hand
// in either the pooled *sqlx.DB or an open *sqlx.Tx.

// Execer runs statements that return no rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Getter scans a single row into dest.
type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// Selecter scans a result set into a slice dest.
type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// DB is the full capability set of a pooled connection. Store constructors
// take DB; individual methods that run inside a transaction take the narrower
// Execer or Getter instead.
type DB interface {
	Execer
	Getter
	Selecter
}
