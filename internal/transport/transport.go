// Package transport opens CLI sessions on network devices.
//
// An Opener returns a Session for a device address; a Session sends one
// command at a time and returns its raw text output. Every failure is a
// *domain.TransportError so callers can tell unreachable devices, rejected
// credentials and timeouts apart with errors.Is.
//
// SSHOpener talks to Cisco IOS-style devices over SSH. It opens an
// interactive shell (IOS does not run commands over exec channels reliably),
// raises the session to privileged exec with the enable secret, turns paging
// off and then tracks the device prompt to delimit command output.
package transport

import (
	"context"

	"switchtrace/internal/domain"
)

// Session is an open CLI session on one device
type Session interface {
	// SendCommand runs text and returns its output without the echoed
	// command line and the trailing prompt
	SendCommand(ctx context.Context, text string) (string, error)
	// Close ends the session; it is safe to call more than once
	Close() error
}

// Opener opens sessions
type Opener interface {
	Open(ctx context.Context, device domain.DeviceAddress) (Session, error)
}

// Preflighter checks that a device's SSH port answers before logging in
type Preflighter interface {
	Check(ctx context.Context, host string, port int) error
}
