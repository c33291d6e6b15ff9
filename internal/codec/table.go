package codec

import (
	"fmt"
	"io"
	"text/tabwriter"

	"switchtrace/internal/domain"
)

// TableCodec renders results as aligned text columns
type TableCodec struct{}

// NewTableCodec creates a new table codec
func NewTableCodec() *TableCodec {
	return &TableCodec{}
}

// Format returns the codec format identifier
func (c *TableCodec) Format() string {
	return "table"
}

// Export writes one row per result
func (c *TableCodec) Export(results []domain.TraversalResult, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "LOCATED\tTARGET IP\tMAC\tSWITCH\tPORT\tHOPS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.TargetIP,
			r.MAC,
			r.Device,
			r.Port,
			len(r.Path),
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
