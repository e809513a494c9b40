package turbostmt

import (
	"context"
	"database/sql"
)

// Execer is the subset of *sqlx.DB / *sqlx.Tx an Update needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Update is a mutating statement. It satisfies turbocache.ExecQuery[Execer].
type Update struct {
	query string
	args  []any
}

// NewUpdate builds an Update. args are passed through to ExecContext
// positionally.
func NewUpdate(query string, args ...any) *Update {
	return &Update{query: query, args: args}
}

// Execute satisfies turbocache.ExecQuery[Execer].
func (u *Update) Execute(ctx context.Context, conn Execer) (int64, error) {
	res, err := conn.ExecContext(ctx, u.query, u.args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
