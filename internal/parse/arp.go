package parse

import (
	"strings"

	"switchtrace/internal/domain"
)

// ARPEntry extracts the MAC for ip from "show ip arp" output
//
//	Protocol  Address          Age (min)  Hardware Addr   Type   Interface
//	Internet  192.168.1.18            0   f80d.ac59.366a  ARPA   Vlan10
//
// Only a row whose address column equals ip is considered, so looking up
// 10.0.0.5 never picks the row for 10.0.0.55. Incomplete entries yield false.
func ARPEntry(output, ip string) (domain.MACAddress, bool) {
	for _, line := range lines(output) {
		fields := strings.Fields(line)
		if len(fields) < 2 || !rowHasIP(fields, ip) {
			continue
		}

		for _, field := range fields {
			if mac, err := domain.ParseMAC(field); err == nil {
				return mac, true
			}
		}
	}

	return domain.MACAddress{}, false
}

func rowHasIP(fields []string, ip string) bool {
	for _, field := range fields {
		if sameIP(field, ip) {
			return true
		}
	}
	return false
}
