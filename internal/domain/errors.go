package domain

import (
	"errors"
	"fmt"
)

// Transport failure kinds, usable with errors.Is on a *TransportError
var (
	ErrUnreachable = errors.New("device unreachable")
	ErrAuth        = errors.New("authentication failed")
	ErrTimeout     = errors.New("timed out")
	ErrSession     = errors.New("session failed")
)

// TransportError reports that a device could not be queried
type TransportError struct {
	Device DeviceAddress
	// Kind is one of ErrUnreachable, ErrAuth, ErrTimeout, ErrSession
	Kind  error
	Cause error
}

// NewTransportError builds a TransportError; a nil kind defaults to ErrSession
func NewTransportError(device DeviceAddress, kind, cause error) *TransportError {
	if kind == nil {
		kind = ErrSession
	}
	return &TransportError{Device: device, Kind: kind, Cause: cause}
}

func (e *TransportError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %v", e.Device, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Device, e.Kind, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *TransportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// AsTransportError extracts a *TransportError from err, if any
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
