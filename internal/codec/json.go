package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"switchtrace/internal/domain"
)

// JSONCodec handles JSON export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Export writes results as an indented JSON array
func (c *JSONCodec) Export(results []domain.TraversalResult, w io.Writer) error {
	if results == nil {
		results = []domain.TraversalResult{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
