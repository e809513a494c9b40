package turbostmt

import (
	"github.com/jmoiron/sqlx"

	"github.com/orishu/turbocache/turbocache"
)

// ScanKeyed reads one row's columns AND its tunneled cache-key column off
// rows in a single Scan call (database/sql requires exactly one Scan per
// row, covering every projected column), storing the key through key.
type ScanKeyed[Row any] func(rows *sqlx.Rows, key *string) (Row, error)

// NewKeyedSelect builds a Select[turbocache.Pair[Row, string]] — a query
// whose SQL projects an extra cache-key expression alongside the row's own
// columns, grounded in turbodiesel's
// `(Student::as_select(), sql::<Text>("'student:' || id"))` two-element
// select. query must project the key expression as the last column;
// scanRow's single Scan call must read every projected column in that
// order, ending with the key.
//
// The result satisfies turbocache.WrappableQuery[Row, Queryer] (an interface
// embedding turbocache.LoadQuery[turbocache.Pair[Row, string], Queryer]), so it can be
// passed straight to PopulateCacheOf / TryFromCacheOf / TryFromCacheMultiOf /
// TryFromCacheAndPopulateOf.
func NewKeyedSelect[Row any](query string, scanRow ScanKeyed[Row], args ...any) *Select[turbocache.Pair[Row, string]] {
	scan := func(rows *sqlx.Rows) (turbocache.Pair[Row, string], error) {
		var key string
		row, err := scanRow(rows, &key)
		if err != nil {
			return turbocache.Pair[Row, string]{}, err
		}
		return turbocache.Pair[Row, string]{Row: row, Key: key}, nil
	}
	return NewSelect[turbocache.Pair[Row, string]](query, scan, args...)
}
