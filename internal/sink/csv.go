package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"switchtrace/internal/domain"
)

// TimestampLayout is how CSV rows render the lookup time
const TimestampLayout = "2006-01-02 15:04:05"

// CSVHeader is written once, when the file is new or empty
var CSVHeader = []string{
	"timestamp",
	"target_ip",
	"mac",
	"switch",
	"port",
	"connected_device",
	"device_ip",
}

// CSVSink appends one row per result to a CSV file. Duplicate lookups
// produce duplicate rows.
type CSVSink struct {
	path string
	mu   sync.Mutex
}

// NewCSVSink creates a sink writing to path
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Path returns the file the sink writes to
func (s *CSVSink) Path() string {
	return s.path
}

// Write implements Sink
func (s *CSVSink) Write(_ context.Context, result domain.TraversalResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(CSVHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := w.Write(csvRow(result)); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", s.path, err)
	}
	return nil
}

func csvRow(r domain.TraversalResult) []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		r.TargetIP,
		r.MAC.String(),
		r.Device.String(),
		r.Port.String(),
		r.TerminalLabel,
		r.TerminalIP,
	}
}
