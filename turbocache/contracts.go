// Package turbocache is the query-wrapper composition and streaming
// iterator engine at the heart of TurboCache: it interleaves cache
// lookups, cache population, and database fallback on a per-row basis, and
// extends update statements to invalidate cache keys atomically with
// respect to the update's execution.
//
// TurboCache never touches SQL generation, connection pooling, or schema
// management itself. It consumes exactly two contracts from whatever query
// layer the caller has (see turbostmt for a minimal concrete one built on
// sqlx/pgx): a load contract that streams rows, and an execute contract
// that runs a mutating statement and reports the affected row count.
package turbocache

import "context"

// RowIter is a pull-based iterator over query results, the Go rendering of
// Diesel's RowIter<QueryResult<T>>. Implementations mirror database/sql's
// Rows: call Next to advance, Value to read the current item, and Close
// when done. Dropping an iterator without exhausting it (early
// abandonment) is a legal and complete form of cancellation.
type RowIter[T any] interface {
	// Next reports whether a further item is available. It returns false
	// both on clean exhaustion and on error; callers must check Err after a
	// false return to distinguish the two.
	Next(ctx context.Context) bool
	// Value returns the item most recently made available by Next. It is
	// only valid to call after a Next call that returned true.
	Value() T
	// Err returns the first error encountered by the iterator, or nil.
	Err() error
	Close() error
}

// LoadQuery is the load contract: anything that can stream rows of type T
// given a connection of type Conn. T is typically a Row, or a Pair[Row, Key]
// for queries that project an extra cache-key column (see Pair). Conn is
// left generic, the way Diesel's LoadQuery is generic over any
// diesel::Connection, so TurboCache never has to know what a connection
// looks like beyond what the caller's query layer requires of it.
type LoadQuery[T any, Conn any] interface {
	InternalLoad(ctx context.Context, conn Conn) (RowIter[T], error)
}

// ExecQuery is the execute contract: anything that runs a mutating
// statement and reports how many rows it affected.
type ExecQuery[Conn any] interface {
	Execute(ctx context.Context, conn Conn) (int64, error)
}

// Pair tunnels a per-row cache key alongside its Row without widening the
// materialised row itself. It is the Go analogue of Diesel's (Row, String)
// select tuple produced by a caller's SQL-expression key column.
type Pair[Row, Key any] struct {
	Row Row
	Key Key
}
