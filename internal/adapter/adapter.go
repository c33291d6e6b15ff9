package adapter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"switchtrace/internal/domain"
	"switchtrace/internal/parse"
	"switchtrace/internal/transport"
)

// CLI commands issued by the adapter
const (
	cmdARP          = "show ip arp %s"
	cmdMACAddress   = "show mac address-table address %s"
	cmdMACDynamic   = "show mac address-table dynamic"
	cmdLLDPNeighbor = "show lldp neighbors %s detail"
	cmdCDPNeighbor  = "show cdp neighbors %s detail"
)

// raw output logged with diagnostics is cut to this many bytes
const maxSnippetLength = 240

// PortStatus classifies a MAC table lookup
type PortStatus int

const (
	// PortFound means the MAC sits behind Port
	PortFound PortStatus = iota
	// MACAbsent means no MAC table row carries the MAC
	MACAbsent
	// PortUnidentifiable means a row carries the MAC but names no
	// recognizable interface
	PortUnidentifiable
)

func (s PortStatus) String() string {
	switch s {
	case PortFound:
		return "found"
	case MACAbsent:
		return "mac_absent"
	case PortUnidentifiable:
		return "port_unidentifiable"
	default:
		return fmt.Sprintf("PortStatus(%d)", int(s))
	}
}

// PortLookup is the answer to LocatePort
type PortLookup struct {
	Status PortStatus
	Port   domain.PortIdentifier
}

// Querier queries devices through a transport
type Querier struct {
	opener transport.Opener
	log    zerolog.Logger
}

// New creates a Querier
func New(opener transport.Opener, log zerolog.Logger) *Querier {
	return &Querier{opener: opener, log: log}
}

// ResolveARP looks targetIP up in device's ARP table. The flag is false when
// there is no complete entry.
func (q *Querier) ResolveARP(ctx context.Context, device domain.DeviceAddress, targetIP string) (domain.MACAddress, bool, error) {
	var (
		mac   domain.MACAddress
		found bool
	)

	err := q.withSession(ctx, device, func(s transport.Session) error {
		output, err := s.SendCommand(ctx, fmt.Sprintf(cmdARP, targetIP))
		if err != nil {
			return err
		}

		mac, found = parse.ARPEntry(output, targetIP)
		if !found && output != "" {
			q.log.Debug().
				Str("device", device.String()).
				Str("ip", targetIP).
				Str("output", snippet(output)).
				Msg("no ARP entry in output")
		}
		return nil
	})
	if err != nil {
		return domain.MACAddress{}, false, err
	}

	return mac, found, nil
}

// LocatePort finds the port mac is learned on. A scoped query is tried
// first; when it shows no row for mac the full dynamic table is read.
func (q *Querier) LocatePort(ctx context.Context, device domain.DeviceAddress, mac domain.MACAddress) (PortLookup, error) {
	var match parse.MACTableMatch
	var last string

	err := q.withSession(ctx, device, func(s transport.Session) error {
		output, err := s.SendCommand(ctx, fmt.Sprintf(cmdMACAddress, mac))
		if err != nil {
			return err
		}
		last = output
		match = parse.MACTablePort(output, mac)
		if match.Present {
			return nil
		}

		output, err = s.SendCommand(ctx, cmdMACDynamic)
		if err != nil {
			return err
		}
		last = output
		match = parse.MACTablePort(output, mac)
		return nil
	})
	if err != nil {
		return PortLookup{}, err
	}

	switch {
	case !match.Present:
		return PortLookup{Status: MACAbsent}, nil
	case !match.Identified():
		// distinct from "absent": the MAC is there but we cannot tell where
		q.log.Warn().
			Str("device", device.String()).
			Str("mac", mac.String()).
			Str("row", match.Row).
			Str("output", snippet(last)).
			Msg("port unidentifiable in MAC table row")
		return PortLookup{Status: PortUnidentifiable}, nil
	default:
		return PortLookup{Status: PortFound, Port: match.Port}, nil
	}
}

// DiscoverNeighbor asks LLDP, then CDP, who is connected on port. The flag
// is false when neither protocol names a neighbor with a management
// address.
func (q *Querier) DiscoverNeighbor(ctx context.Context, device domain.DeviceAddress, port domain.PortIdentifier) (domain.NeighborInfo, bool, error) {
	var (
		neighbor domain.NeighborInfo
		found    bool
	)

	err := q.withSession(ctx, device, func(s transport.Session) error {
		output, err := s.SendCommand(ctx, fmt.Sprintf(cmdLLDPNeighbor, port))
		if err != nil {
			return err
		}
		lldp, named := parse.LLDPNeighbor(output)
		if lldp.Usable() {
			neighbor, found = lldp, true
			return nil
		}
		if named {
			q.log.Debug().
				Str("device", device.String()).
				Str("port", port.String()).
				Str("neighbor", lldp.Name).
				Msg("LLDP neighbor has no management address, trying CDP")
		}

		output, err = s.SendCommand(ctx, fmt.Sprintf(cmdCDPNeighbor, port))
		if err != nil {
			return err
		}
		cdp, named := parse.CDPNeighbor(output)
		if cdp.Usable() {
			neighbor, found = cdp, true
			return nil
		}
		if named {
			q.log.Info().
				Str("device", device.String()).
				Str("port", port.String()).
				Str("neighbor", cdp.Name).
				Msg("CDP neighbor has no management address, treating port as terminal")
		}
		return nil
	})
	if err != nil {
		return domain.NeighborInfo{}, false, err
	}

	return neighbor, found, nil
}

// withSession runs fn on a fresh session and always closes it
func (q *Querier) withSession(ctx context.Context, device domain.DeviceAddress, fn func(transport.Session) error) error {
	session, err := q.opener.Open(ctx, device)
	if err != nil {
		return asTransportError(device, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			q.log.Debug().Err(cerr).Str("device", device.String()).Msg("closing session")
		}
	}()

	if err := fn(session); err != nil {
		return asTransportError(device, err)
	}
	return nil
}

func asTransportError(device domain.DeviceAddress, err error) error {
	if _, ok := domain.AsTransportError(err); ok {
		return err
	}
	return domain.NewTransportError(device, domain.ErrSession, err)
}

func snippet(output string) string {
	if len(output) <= maxSnippetLength {
		return output
	}
	return output[:maxSnippetLength] + "..."
}
