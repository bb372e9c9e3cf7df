// Package rows supplies the ordered row records a batch run iterates over.
// Sources are read-once: the processor calls Rows a single time and never
// mutates what it gets back.
package rows

import "context"

// Row is one input record. Address is in the chain's native representation
// and is passed through opaquely. CoingeckoID is only present on
// price-update sheets.
type Row struct {
	Line        int // position in the source, for log context
	Name        string
	Symbol      string
	Address     string
	CoingeckoID string
}

// Source provides an ordered sequence of rows.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}
