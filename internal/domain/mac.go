package domain

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrInvalidMAC is returned when a string is not a 48-bit MAC address
var ErrInvalidMAC = errors.New("invalid MAC address")

// MACAddress is a normalized 48-bit link-layer address
// The zero value is not a valid address
type MACAddress struct {
	hw [6]byte
	ok bool
}

// ParseMAC parses a MAC address in any of the separator styles devices print:
// aabb.ccdd.eeff, aa:bb:cc:dd:ee:ff, aa-bb-cc-dd-ee-ff or aabbccddeeff.
// Case is ignored.
func ParseMAC(s string) (MACAddress, error) {
	s = strings.TrimSpace(s)
	if len(s) == 12 && isHex(s) {
		s = s[0:4] + "." + s[4:8] + "." + s[8:12]
	}

	hw, err := net.ParseMAC(s)
	if err != nil {
		return MACAddress{}, fmt.Errorf("%w: %q", ErrInvalidMAC, s)
	}
	if len(hw) != 6 {
		return MACAddress{}, fmt.Errorf("%w: %q is not 48-bit", ErrInvalidMAC, s)
	}

	var m MACAddress
	copy(m.hw[:], hw)
	m.ok = true
	return m, nil
}

// MustParseMAC is ParseMAC for constants; it panics on bad input
func MustParseMAC(s string) MACAddress {
	m, err := ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return m
}

// IsValid reports whether m holds a parsed address
func (m MACAddress) IsValid() bool {
	return m.ok
}

// Equal compares two addresses regardless of the form they were parsed from
func (m MACAddress) Equal(other MACAddress) bool {
	return m.ok && other.ok && m.hw == other.hw
}

// String renders the Cisco dotted form (aabb.ccdd.eeff), which is what IOS
// accepts in "show mac address-table address"
func (m MACAddress) String() string {
	if !m.ok {
		return ""
	}
	return fmt.Sprintf("%02x%02x.%02x%02x.%02x%02x",
		m.hw[0], m.hw[1], m.hw[2], m.hw[3], m.hw[4], m.hw[5])
}

// Colon renders aa:bb:cc:dd:ee:ff
func (m MACAddress) Colon() string {
	if !m.ok {
		return ""
	}
	return net.HardwareAddr(m.hw[:]).String()
}

// MarshalText implements encoding.TextMarshaler
func (m MACAddress) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *MACAddress) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = MACAddress{}
		return nil
	}
	parsed, err := ParseMAC(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
