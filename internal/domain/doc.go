// Package domain defines the core types for switchtrace.
//
// switchtrace finds the switch port an IP address is plugged into by walking a
// Cisco-style topology: ARP on the entry device gives the MAC, the MAC table
// gives the port, and LLDP/CDP on that port says whether another switch sits
// behind it. This package holds the values that flow through that walk.
//
// # Core Types
//
// DeviceAddress identifies a device to open a CLI session against.
//
// MACAddress is a normalized link-layer address. Cisco dotted, colon and
// hyphen forms of the same address compare equal.
//
// PortIdentifier is a device-local interface name such as Gi1/0/3.
//
// NeighborInfo describes a switch discovered behind a port via LLDP or CDP.
//
// TraversalResult is the terminal record of a successful walk.
//
// Outcome is the tagged result of one walk: found, or one of the negative
// and failure kinds.
//
// # Errors
//
// TransportError carries the device and the failure kind (unreachable, auth,
// timeout, session) for anything the transport could not do. Kinds are
// exposed as sentinels for errors.Is.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
// - No logging
package domain
