// Package turbostmt is a minimal stand-in for the ORM query builder
// TurboCache composes with (the original crate wrapped Diesel; here it
// wraps sqlx/pgx). It satisfies turbocache.LoadQuery and
// turbocache.ExecQuery and nothing else — turbocache never imports this
// package, only the other way around, exactly as the original crate never
// depended on any particular Diesel backend beyond the traits it wrapped.
package turbostmt

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/orishu/turbocache/turbocache"
)

// Queryer is the subset of *sqlx.DB / *sqlx.Tx a Select needs. Keeping it
// this narrow is what lets turbocache.LoadQuery stay generic over "any
// connection", the Go rendering of Diesel's being generic over any
// diesel::Connection.
type Queryer interface {
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
}

// Scan reads one row's columns off rows into a T. Callers write one per
// row type, hand-scanning each query's projected columns with the usual
// `for rows.Next() { rows.Scan(...) }` shape.
type Scan[T any] func(rows *sqlx.Rows) (T, error)

// Select is a read query of row type T. T is frequently
// turbocache.Pair[Row, string] when the query tunnels a per-row cache key
// alongside each row — Select itself doesn't need to know that; it only
// needs a Scan that produces a T.
type Select[T any] struct {
	query string
	args  []any
	scan  Scan[T]
}

// NewSelect builds a Select. args are passed through to QueryxContext
// positionally.
func NewSelect[T any](query string, scan Scan[T], args ...any) *Select[T] {
	return &Select[T]{query: query, args: args, scan: scan}
}

// InternalLoad satisfies turbocache.LoadQuery[T, Queryer].
func (s *Select[T]) InternalLoad(ctx context.Context, conn Queryer) (turbocache.RowIter[T], error) {
	rows, err := conn.QueryxContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, err
	}
	return &rowIter[T]{rows: rows, scan: s.scan}, nil
}

// rowIter adapts *sqlx.Rows to turbocache.RowIter[T], the same
// Next/Value/Err/Close shape pgx.Rows and database/sql.Rows already use.
type rowIter[T any] struct {
	rows *sqlx.Rows
	scan Scan[T]

	current T
	err     error
}

func (it *rowIter[T]) Next(ctx context.Context) bool {
	if !it.rows.Next() {
		it.err = it.rows.Err()
		return false
	}
	v, err := it.scan(it.rows)
	if err != nil {
		it.err = err
		return false
	}
	it.current = v
	return true
}

func (it *rowIter[T]) Value() T    { return it.current }
func (it *rowIter[T]) Err() error  { return it.err }
func (it *rowIter[T]) Close() error { return it.rows.Close() }
