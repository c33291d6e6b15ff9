// Command switchtrace finds the switch port an IP address is plugged into.
//
// Usage:
//
//	switchtrace                       interactive prompt, empty line exits
//	switchtrace locate 10.0.0.5 ...   one-shot lookups
//	switchtrace history --ip 10.0.0.5 --format json
//	switchtrace config init
//
// Every lookup starts from the entry device's ARP table and follows
// LLDP/CDP neighbors until it reaches a port with no switch behind it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errIncomplete) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
