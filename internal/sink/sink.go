// Package sink records located results.
//
// CSVSink appends rows to a spreadsheet-friendly file; SQLiteStore keeps a
// queryable history. Multi fans one result out to several sinks.
package sink

import (
	"context"
	"errors"

	"switchtrace/internal/domain"
)

// Sink receives every successful result
type Sink interface {
	Write(ctx context.Context, result domain.TraversalResult) error
}

// Multi writes to every sink in order and joins their errors
type Multi []Sink

// Write implements Sink
func (m Multi) Write(ctx context.Context, result domain.TraversalResult) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
