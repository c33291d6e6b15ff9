package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeConstructors(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	result := NewTraversalResult("10.0.0.5", MustParseMAC("aaaa.bbbb.cccc"), "10.0.0.2", "Fa1/0/10", at, nil)

	found := Found(result)
	require.True(t, found.IsFound())
	assert.Equal(t, OutcomeFound, found.Kind)
	assert.Equal(t, DeviceAddress("10.0.0.2"), found.Device)
	assert.Contains(t, found.String(), "Fa1/0/10")

	assert.Equal(t, OutcomeNotFoundAtGateway, NotFoundAtGateway().Kind)
	assert.Equal(t, OutcomeMACNotFoundOnPath, MACNotFoundOnPath().Kind)

	pu := PortUnidentified("10.0.0.1")
	assert.Equal(t, DeviceAddress("10.0.0.1"), pu.Device)
	assert.False(t, pu.IsFound())

	cyc := CycleDetected("10.0.0.3")
	assert.Contains(t, cyc.String(), "10.0.0.3")

	cause := errors.New("boom")
	tf := TransportFailure("10.0.0.4", cause)
	assert.Equal(t, OutcomeTransportError, tf.Kind)
	assert.ErrorIs(t, tf.Err, cause)
}

func TestNewTraversalResult(t *testing.T) {
	at := time.Now()
	path := []Hop{{Device: "10.0.0.1", Port: "Gi1/0/1"}}
	result := NewTraversalResult("10.0.0.5", MustParseMAC("aaaa.bbbb.cccc"), "10.0.0.1", "Gi1/0/1", at, path)

	assert.Equal(t, TerminalLabelEndHost, result.TerminalLabel)
	assert.Equal(t, "10.0.0.5", result.TerminalIP)

	// caller's slice must not alias the result
	path[0].Port = "Gi9/9/9"
	assert.Equal(t, PortIdentifier("Gi1/0/1"), result.Path[0].Port)
}

func TestNeighborInfoUsable(t *testing.T) {
	assert.True(t, NeighborInfo{Name: "SW2", ManagementIP: "10.0.0.2"}.Usable())
	assert.False(t, NeighborInfo{Name: "SW2"}.Usable())
	assert.False(t, NeighborInfo{ManagementIP: "10.0.0.2"}.Usable())
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("10.0.0.9", ErrUnreachable, cause)

	assert.ErrorIs(t, err, ErrUnreachable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrAuth)
	assert.Equal(t, "10.0.0.9: device unreachable: connection refused", err.Error())

	wrapped := errors.Join(errors.New("locate"), err)
	te, ok := AsTransportError(wrapped)
	require.True(t, ok)
	assert.Equal(t, DeviceAddress("10.0.0.9"), te.Device)

	defaulted := NewTransportError("10.0.0.9", nil, nil)
	assert.ErrorIs(t, defaulted, ErrSession)
	assert.Equal(t, "10.0.0.9: session failed", defaulted.Error())
}
