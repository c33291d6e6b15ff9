package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "switchtrace",
		Short: "Locate the switch port an IP address is attached to",
		Long: `switchtrace resolves an IP to a MAC on the entry device, then follows the
MAC through MAC address tables and LLDP/CDP neighbors until it reaches a
port with no further switch behind it.

Without a subcommand it prompts for addresses until an empty line.

Examples:
  switchtrace --entry 192.168.1.1
  switchtrace locate 10.0.0.5 10.0.0.6
  switchtrace --lab lab.yaml locate 10.0.0.5
  switchtrace history --ip 10.0.0.5 --format yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return runInteractive(cmd, a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: search $SWITCHTRACE_CONFIG, ./switchtrace.yaml, XDG, /etc)")
	flags.StringVar(&opts.labPath, "lab", "", "replay a simulated topology file instead of using SSH")
	flags.StringVarP(&opts.entry, "entry", "e", "", "entry device (gateway) address, overrides the config")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(
		newLocateCmd(opts),
		newHistoryCmd(opts),
		newConfigCmd(opts),
	)

	return root
}

func newLocateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate IP [IP...]",
		Short: "Locate one or more IP addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			svc, closeSinks, err := a.locator()
			if err != nil {
				return err
			}
			defer closeSinks()

			out := cmd.OutOrStdout()
			complete := true
			for _, report := range svc.LocateAll(cmd.Context(), args) {
				printReport(out, svc.Entry(), report.Input, report.Outcome, report.Err)
				if report.Err != nil || !report.Outcome.IsFound() {
					complete = false
				}
			}

			if !complete {
				return errIncomplete
			}
			return nil
		},
	}
}
