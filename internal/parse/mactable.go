package parse

import (
	"strings"

	"switchtrace/internal/domain"
)

// MACTableMatch is what a MAC table dump says about one address
type MACTableMatch struct {
	// Present is true when at least one row carries the MAC
	Present bool
	// Port is the interface of the first matching row with a recognizable
	// port token; empty when Present but nothing could be identified
	Port domain.PortIdentifier
	// Row is the raw matching line, kept for diagnostics
	Row string
}

// Identified reports whether a port was extracted
func (m MACTableMatch) Identified() bool {
	return m.Present && m.Port != ""
}

// MACTablePort finds mac in "show mac address-table" output
//
//	Vlan    Mac Address       Type        Ports
//	----    -----------       --------    -----
//	  10    f80d.ac59.366a    DYNAMIC     Fa1/0/47
//
// A row matches when one of its fields parses as a MAC equal to mac, whatever
// separator style either side uses. The port is the last field of that row
// that looks like an interface name; from a comma separated port list the
// first entry is taken.
// Rows pointing at CPU, Router or Drop keep Present true with an empty Port.
func MACTablePort(output string, mac domain.MACAddress) MACTableMatch {
	var match MACTableMatch

	for _, line := range lines(output) {
		fields := strings.Fields(line)
		if !rowHasMAC(fields, mac) {
			continue
		}

		if !match.Present {
			match.Present = true
			match.Row = strings.TrimSpace(line)
		}

		if port := lastInterface(fields); port != "" {
			match.Port = domain.PortIdentifier(port)
			match.Row = strings.TrimSpace(line)
			return match
		}
	}

	return match
}

func rowHasMAC(fields []string, mac domain.MACAddress) bool {
	for _, field := range fields {
		if candidate, err := domain.ParseMAC(field); err == nil && candidate.Equal(mac) {
			return true
		}
	}
	return false
}

func lastInterface(fields []string) string {
	for i := len(fields) - 1; i >= 0; i-- {
		for _, token := range strings.Split(fields[i], ",") {
			if IsInterfaceName(token) {
				return token
			}
		}
	}
	return ""
}
