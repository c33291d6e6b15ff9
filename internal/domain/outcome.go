package domain

import "fmt"

// OutcomeKind tags the result of one Locate call
type OutcomeKind string

const (
	OutcomeFound             OutcomeKind = "found"
	OutcomeNotFoundAtGateway OutcomeKind = "not_found_at_gateway" // no ARP entry on the entry device
	OutcomeMACNotFoundOnPath OutcomeKind = "mac_not_found_on_path" // MAC missing from a MAC table mid-walk
	OutcomePortUnidentified  OutcomeKind = "port_unidentified"     // MAC present, port token not recognized
	OutcomeCycleDetected     OutcomeKind = "cycle_detected"
	OutcomeTransportError    OutcomeKind = "transport_error"
)

// Outcome is the tagged result of a walk. Result is set only for
// OutcomeFound; Device for PortUnidentified, CycleDetected and
// TransportError; Err only for TransportError.
type Outcome struct {
	Kind   OutcomeKind
	Result *TraversalResult
	Device DeviceAddress
	Err    error
}

// Found wraps a successful result
func Found(result TraversalResult) Outcome {
	return Outcome{Kind: OutcomeFound, Result: &result, Device: result.Device}
}

// NotFoundAtGateway is returned when the entry device has no ARP entry
func NotFoundAtGateway() Outcome {
	return Outcome{Kind: OutcomeNotFoundAtGateway}
}

// MACNotFoundOnPath is returned when a device on the path no longer knows the MAC
func MACNotFoundOnPath() Outcome {
	return Outcome{Kind: OutcomeMACNotFoundOnPath}
}

// PortUnidentified is returned when device lists the MAC on a port we cannot parse
func PortUnidentified(device DeviceAddress) Outcome {
	return Outcome{Kind: OutcomePortUnidentified, Device: device}
}

// CycleDetected is returned when the walk leads back to a visited device
func CycleDetected(device DeviceAddress) Outcome {
	return Outcome{Kind: OutcomeCycleDetected, Device: device}
}

// TransportFailure is returned when a device could not be queried
func TransportFailure(device DeviceAddress, err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Device: device, Err: err}
}

// IsFound reports whether the walk located the IP
func (o Outcome) IsFound() bool {
	return o.Kind == OutcomeFound && o.Result != nil
}

// String returns a one-line human summary
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeFound:
		if o.Result == nil {
			return "found"
		}
		return fmt.Sprintf("found %s (%s) on %s port %s",
			o.Result.TargetIP, o.Result.MAC, o.Result.Device, o.Result.Port)
	case OutcomeNotFoundAtGateway:
		return "IP not present in the entry device ARP table"
	case OutcomeMACNotFoundOnPath:
		return "MAC no longer present in a MAC address table on the path"
	case OutcomePortUnidentified:
		return fmt.Sprintf("MAC present on %s but the port could not be identified", o.Device)
	case OutcomeCycleDetected:
		return fmt.Sprintf("topology loop: %s was already visited", o.Device)
	case OutcomeTransportError:
		return fmt.Sprintf("could not query %s: %v", o.Device, o.Err)
	default:
		return string(o.Kind)
	}
}
