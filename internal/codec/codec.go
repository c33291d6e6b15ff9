package codec

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"switchtrace/internal/domain"
)

// ErrUnknownFormat is returned by ForFormat for unsupported names
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter writes located results in one output format
type Exporter interface {
	Export(results []domain.TraversalResult, w io.Writer) error
	Format() string
}

// Exporters lists every supported exporter
func Exporters() []Exporter {
	return []Exporter{NewTableCodec(), NewJSONCodec(), NewYAMLCodec()}
}

// ForFormat returns the exporter for name
func ForFormat(name string) (Exporter, error) {
	for _, e := range Exporters() {
		if e.Format() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, name, Formats())
}

// Formats returns the supported format names, sorted
func Formats() []string {
	var names []string
	for _, e := range Exporters() {
		names = append(names, e.Format())
	}
	sort.Strings(names)
	return names
}
