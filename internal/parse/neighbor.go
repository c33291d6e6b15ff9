package parse

import (
	"regexp"
	"strings"

	"switchtrace/internal/domain"
)

var (
	lldpNameRe     = regexp.MustCompile(`(?i)^\s*System Name:\s*(\S+)`)
	lldpPortRe     = regexp.MustCompile(`(?i)^\s*Port id:\s*(\S+)`)
	lldpMgmtRe     = regexp.MustCompile(`(?i)^\s*Management Address(?:es)?\s*:(.*)$`)
	cdpNameRe      = regexp.MustCompile(`(?i)^\s*Device ID:\s*(\S+)`)
	cdpPortRe      = regexp.MustCompile(`(?i)Port ID \(outgoing port\):\s*(\S+)`)
	cdpMgmtRe      = regexp.MustCompile(`(?i)^\s*Management address(?:\(es\))?:(.*)$`)
	cdpEntryRe     = regexp.MustCompile(`(?i)^\s*Entry address(?:\(es\))?:(.*)$`)
	cdpIPAddressRe = regexp.MustCompile(`(?i)^\s*IP(?:v4)? address:\s*(\S+)`)
	addressLineRe  = regexp.MustCompile(`(?i)^\s*IP(?:v[46])?(?: address)?\s*:`)
	separatorRe    = regexp.MustCompile(`^\s*-{5,}\s*$`)
)

// LLDPNeighbor parses "show lldp neighbors <port> detail" output
//
//	Local Intf: Gi1/0/3
//	Chassis id: 0011.2233.4455
//	Port id: Gi1/0/48
//	System Name: SW2.example.com
//	...
//	Management Addresses:
//	    IP: 10.0.0.2
//
// hasName reports whether a System Name field was present at all. The
// returned neighbor may still lack a management address; see
// domain.NeighborInfo.Usable.
func LLDPNeighbor(output string) (neighbor domain.NeighborInfo, hasName bool) {
	for _, block := range blocks(output) {
		n, ok := parseLLDPBlock(block)
		if !ok {
			continue
		}
		if !hasName || (!neighbor.Usable() && n.Usable()) {
			neighbor, hasName = n, true
		}
		if neighbor.Usable() {
			break
		}
	}
	return neighbor, hasName
}

func parseLLDPBlock(block []string) (domain.NeighborInfo, bool) {
	n := domain.NeighborInfo{Protocol: domain.NeighborProtocolLLDP}
	found := false

	for i, line := range block {
		if m := lldpNameRe.FindStringSubmatch(line); m != nil && !found {
			n.Name = m[1]
			found = true
			continue
		}
		if m := lldpPortRe.FindStringSubmatch(line); m != nil && n.RemotePort == "" {
			n.RemotePort = domain.PortIdentifier(m[1])
			continue
		}
		if m := lldpMgmtRe.FindStringSubmatch(line); m != nil && n.ManagementIP == "" {
			n.ManagementIP = domain.DeviceAddress(sectionIPv4(m[1], block[i+1:]))
		}
	}

	return n, found
}

// CDPNeighbor parses "show cdp neighbors <port> detail" output
//
//	Device ID: SW2.cisco.com
//	Entry address(es):
//	  IP address: 192.168.1.12
//	...
//	Management address(es):
//	  IP address: 192.168.1.12
//
// The management address section wins over the entry address section.
func CDPNeighbor(output string) (neighbor domain.NeighborInfo, hasName bool) {
	for _, block := range blocks(output) {
		n, ok := parseCDPBlock(block)
		if !ok {
			continue
		}
		if !hasName || (!neighbor.Usable() && n.Usable()) {
			neighbor, hasName = n, true
		}
		if neighbor.Usable() {
			break
		}
	}
	return neighbor, hasName
}

func parseCDPBlock(block []string) (domain.NeighborInfo, bool) {
	n := domain.NeighborInfo{Protocol: domain.NeighborProtocolCDP}
	found := false
	var mgmtIP, entryIP, anyIP string

	for i, line := range block {
		if m := cdpNameRe.FindStringSubmatch(line); m != nil && !found {
			n.Name = m[1]
			found = true
			continue
		}
		if m := cdpPortRe.FindStringSubmatch(line); m != nil && n.RemotePort == "" {
			n.RemotePort = domain.PortIdentifier(strings.TrimSuffix(m[1], ","))
		}
		if m := cdpMgmtRe.FindStringSubmatch(line); m != nil && mgmtIP == "" {
			mgmtIP = sectionIPv4(m[1], block[i+1:])
			continue
		}
		if m := cdpEntryRe.FindStringSubmatch(line); m != nil && entryIP == "" {
			entryIP = sectionIPv4(m[1], block[i+1:])
			continue
		}
		if m := cdpIPAddressRe.FindStringSubmatch(line); m != nil && anyIP == "" {
			anyIP = firstIPv4(m[1])
		}
	}

	switch {
	case mgmtIP != "":
		n.ManagementIP = domain.DeviceAddress(mgmtIP)
	case entryIP != "":
		n.ManagementIP = domain.DeviceAddress(entryIP)
	default:
		n.ManagementIP = domain.DeviceAddress(anyIP)
	}

	return n, found
}

// sectionIPv4 returns the address of a "header:" section: either inline
// after the colon or on the lines that follow it. Following lines belong to
// the section while they are indented or are themselves address lines, so
// unindented captures like "IP address: 192.168.1.12" still count.
func sectionIPv4(inline string, rest []string) string {
	if strings.Contains(strings.ToLower(inline), "not advertised") {
		return ""
	}
	if ip := firstIPv4(inline); ip != "" {
		return ip
	}

	for _, line := range rest {
		if strings.TrimSpace(line) == "" {
			break
		}
		if !startsIndented(line) && !addressLineRe.MatchString(line) {
			break
		}
		if ip := firstIPv4(line); ip != "" {
			return ip
		}
	}
	return ""
}

func startsIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// blocks splits detail output into per-neighbor sections on dashed
// separator lines
func blocks(output string) [][]string {
	var (
		result  [][]string
		current []string
	)

	for _, line := range lines(output) {
		if separatorRe.MatchString(line) {
			if len(current) > 0 {
				result = append(result, current)
			}
			current = nil
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		result = append(result, current)
	}

	return result
}
