package store

import (
	"context"
	"database/sql"
)

// Test doubles for the capability interfaces. Function types keep per-test
// wiring down to a closure; a nil function is a no-op success.

type getFunc func(ctx context.Context, dest any, query string, args ...any) error

func (f getFunc) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if f == nil {
		return nil
	}
	return f(ctx, dest, query, args...)
}

type selectFunc func(ctx context.Context, dest any, query string, args ...any) error

func (f selectFunc) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if f == nil {
		return nil
	}
	return f(ctx, dest, query, args...)
}

type execFunc func(ctx context.Context, query string, args ...any) (sql.Result, error)

func (f execFunc) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f == nil {
		return execResult(0), nil
	}
	return f(ctx, query, args...)
}

// fakeConn bundles the three capabilities into a DB for store constructors.
type fakeConn struct {
	get  getFunc
	sel  selectFunc
	exec execFunc
}

func (c fakeConn) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return c.get.GetContext(ctx, dest, query, args...)
}

func (c fakeConn) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return c.sel.SelectContext(ctx, dest, query, args...)
}

func (c fakeConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.exec.ExecContext(ctx, query, args...)
}

// execResult is a sql.Result reporting a fixed number of affected rows.
type execResult int64

func (r execResult) LastInsertId() (int64, error) { return 0, nil }

func (r execResult) RowsAffected() (int64, error) { return int64(r), nil }
