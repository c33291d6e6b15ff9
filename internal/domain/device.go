package domain

import "strings"

// DeviceAddress identifies a network device (host name or management IP)
// Equality is exact string match
type DeviceAddress string

// String returns the address as given
func (d DeviceAddress) String() string {
	return string(d)
}

// IsZero reports whether the address is empty
func (d DeviceAddress) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// PortIdentifier is a device-local interface name (e.g. Gi1/0/3, Fa1/0/47)
type PortIdentifier string

// String returns the interface name
func (p PortIdentifier) String() string {
	return string(p)
}

// Credentials holds what is needed to log into a device and reach
// privileged exec mode
type Credentials struct {
	Username string
	Password string
	// EnableSecret is sent after "enable" when the login prompt is unprivileged
	EnableSecret string
	// PrivateKeyPath is tried before the password when set
	PrivateKeyPath string
	// PrivateKeyPassphrase decrypts PrivateKeyPath
	PrivateKeyPassphrase string
}

// HasKey reports whether key-based auth is configured
func (c Credentials) HasKey() bool {
	return c.PrivateKeyPath != ""
}
