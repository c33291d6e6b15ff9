package parse

import (
	"net"
	"regexp"
	"strings"
)

// interfaceRe matches the interface naming families seen in MAC tables,
// short and long forms: Gi1/0/3, GigabitEthernet1/0/3, Fa0/5, Te1/1/1,
// Twe1/0/1, Eth1/49, Po12, Port-channel12 ...
var interfaceRe = regexp.MustCompile(`(?i)^(?:` +
	`GigabitEthernet|FastEthernet|TenGigabitEthernet|TwoGigabitEthernet|` +
	`TwentyFiveGigE|FortyGigabitEthernet|HundredGigE|Ethernet|Port-channel|` +
	`Gi|Fa|Te|Tw|Twe|Fo|Hu|Eth|Et|Po` +
	`)\d+(?:/\d+)*(?:\.\d+)?$`)

// ipv4Re finds dotted quads; candidates are checked with net.ParseIP
var ipv4Re = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)

// IsInterfaceName reports whether token is a recognizable switch port name
func IsInterfaceName(token string) bool {
	return interfaceRe.MatchString(strings.TrimSpace(token))
}

// firstIPv4 returns the first valid IPv4 address in s
func firstIPv4(s string) string {
	for _, candidate := range ipv4Re.FindAllString(s, -1) {
		if ip := net.ParseIP(candidate); ip != nil && ip.To4() != nil {
			return candidate
		}
	}
	return ""
}

// sameIP compares two textual IPs, tolerating different spellings of the
// same address (leading zeros are rejected by net.ParseIP and never match)
func sameIP(a, b string) bool {
	ipA := net.ParseIP(strings.Trim(a, "()"))
	ipB := net.ParseIP(strings.Trim(b, "()"))
	return ipA != nil && ipB != nil && ipA.Equal(ipB)
}

// lines splits output into lines without trailing carriage returns
func lines(output string) []string {
	raw := strings.Split(output, "\n")
	for i, l := range raw {
		raw[i] = strings.TrimRight(l, "\r")
	}
	return raw
}
