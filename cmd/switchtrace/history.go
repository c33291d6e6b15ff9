package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"switchtrace/internal/codec"
	"switchtrace/internal/sink"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		ip     string
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously located addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exporter, err := codec.ForFormat(format)
			if err != nil {
				return err
			}

			a, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			if a.cfg.Output.DatabasePath == "" {
				return fmt.Errorf("history needs output.database_path in the config")
			}

			store, err := sink.NewSQLiteStore(a.cfg.Output.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.ListResults(cmd.Context(), sink.Filter{TargetIP: ip, Limit: limit})
			if err != nil {
				return err
			}

			return exporter.Export(results, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&ip, "ip", "", "only show results for this address")
	cmd.Flags().StringVarP(&format, "format", "f", "table", fmt.Sprintf("output format %v", codec.Formats()))
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many results (0 = all)")

	return cmd
}
