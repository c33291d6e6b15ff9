package domain

import "time"

// TerminalLabelEndHost labels a result whose port has no neighbor device
const TerminalLabelEndHost = "end-host"

// Hop is one device visited during a walk
type Hop struct {
	Device DeviceAddress  `json:"device" yaml:"device"`
	Port   PortIdentifier `json:"port" yaml:"port"`
	// Neighbor is set when the walk continued past this hop
	Neighbor *NeighborInfo `json:"neighbor,omitempty" yaml:"neighbor,omitempty"`
}

// TraversalResult is the attachment point of a located IP
// Produced once per successful walk and never modified afterwards
type TraversalResult struct {
	TargetIP      string         `json:"target_ip" yaml:"target_ip"`
	MAC           MACAddress     `json:"mac" yaml:"mac"`
	Device        DeviceAddress  `json:"device" yaml:"device"`
	Port          PortIdentifier `json:"port" yaml:"port"`
	TerminalLabel string         `json:"terminal_label" yaml:"terminal_label"`
	TerminalIP    string         `json:"terminal_ip" yaml:"terminal_ip"`
	Timestamp     time.Time      `json:"timestamp" yaml:"timestamp"`
	Path          []Hop          `json:"path,omitempty" yaml:"path,omitempty"`
}

// NewTraversalResult builds the record for a port with no further neighbor
func NewTraversalResult(targetIP string, mac MACAddress, device DeviceAddress, port PortIdentifier, at time.Time, path []Hop) TraversalResult {
	hops := make([]Hop, len(path))
	copy(hops, path)

	return TraversalResult{
		TargetIP:      targetIP,
		MAC:           mac,
		Device:        device,
		Port:          port,
		TerminalLabel: TerminalLabelEndHost,
		TerminalIP:    targetIP,
		Timestamp:     at,
		Path:          hops,
	}
}
