package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchtrace/internal/domain"
)

// fixture loads a captured CLI output from testdata/
func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestARPEntry(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		ip      string
		wantMAC string
		wantOK  bool
	}{
		{name: "single row", fixture: "arp_entry.txt", ip: "192.168.1.18", wantMAC: "f80d.ac59.366a", wantOK: true},
		{name: "exact address among neighbors", fixture: "arp_neighbors.txt", ip: "10.0.0.5", wantMAC: "aaaa.bbbb.cccc", wantOK: true},
		{name: "longer address not confused", fixture: "arp_neighbors.txt", ip: "10.0.0.55", wantMAC: "aaaa.bbbb.dddd", wantOK: true},
		{name: "incomplete entry", fixture: "arp_neighbors.txt", ip: "10.0.0.77", wantOK: false},
		{name: "absent", fixture: "arp_neighbors.txt", ip: "10.0.0.99", wantOK: false},
		{name: "header only", fixture: "", ip: "10.0.0.5", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := ""
			if tt.fixture != "" {
				output = fixture(t, tt.fixture)
			}

			mac, ok := ARPEntry(output, tt.ip)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantMAC, mac.String())
			}
		})
	}
}

func TestMACTablePort(t *testing.T) {
	tests := []struct {
		name        string
		fixture     string
		mac         string
		wantPresent bool
		wantPort    domain.PortIdentifier
	}{
		{name: "scoped query", fixture: "mac_scoped.txt", mac: "f80d.ac59.366a", wantPresent: true, wantPort: "Fa1/0/47"},
		{name: "dynamic dump", fixture: "mac_dynamic.txt", mac: "aaaa.bbbb.cccc", wantPresent: true, wantPort: "Gi1/0/3"},
		{name: "colon form matches dotted table", fixture: "mac_dynamic.txt", mac: "aa:aa:bb:bb:cc:cc", wantPresent: true, wantPort: "Gi1/0/3"},
		{name: "ten gig port", fixture: "mac_dynamic.txt", mac: "F8-0D-AC-59-36-6A", wantPresent: true, wantPort: "Te1/1/1"},
		{name: "nexus layout", fixture: "mac_nxos.txt", mac: "aaaa.bbbb.cccc", wantPresent: true, wantPort: "Eth1/49"},
		{name: "present without port", fixture: "mac_cpu.txt", mac: "aaaa.bbbb.cccc", wantPresent: true, wantPort: ""},
		{name: "absent", fixture: "mac_dynamic.txt", mac: "0000.0000.0001", wantPresent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := MACTablePort(fixture(t, tt.fixture), domain.MustParseMAC(tt.mac))
			assert.Equal(t, tt.wantPresent, match.Present)
			assert.Equal(t, tt.wantPort, match.Port)
			assert.Equal(t, tt.wantPresent && tt.wantPort != "", match.Identified())
		})
	}
}

// A raw substring search for "aaaa.bbbb.ccc" style prefixes would hit the
// neighbouring row; field matching must not.
func TestMACTablePortIgnoresPartialMatches(t *testing.T) {
	output := "  10    aaaa.bbbb.cccc0   DYNAMIC     Gi1/0/9\n" +
		"  10    description aaaa.bbbb.cccc uplink\n"

	match := MACTablePort(output, domain.MustParseMAC("aaaa.bbbb.cccc"))
	assert.True(t, match.Present, "second row carries the MAC as a field")
	assert.Empty(t, match.Port)
}

func TestMACTablePortSplitsPortLists(t *testing.T) {
	output := "  10    aaaa.bbbb.cccc    STATIC      Gi1/0/1,Gi1/0/2\n"
	match := MACTablePort(output, domain.MustParseMAC("aaaa.bbbb.cccc"))
	assert.Equal(t, domain.PortIdentifier("Gi1/0/1"), match.Port)
}

func TestIsInterfaceName(t *testing.T) {
	valid := []string{
		"Gi1/0/3", "Fa0/5", "Te1/1/1", "Twe1/0/1", "Tw1/0/1", "Fo1/1/1", "Hu1/0/49",
		"Eth1/49", "Et1", "Po12", "GigabitEthernet1/0/3", "FastEthernet1/0/47",
		"TenGigabitEthernet1/1/1", "Port-channel12", "Gi1/0/3.100",
	}
	for _, name := range valid {
		assert.True(t, IsInterfaceName(name), name)
	}

	invalid := []string{"CPU", "Router", "Drop", "Vlan10", "DYNAMIC", "10", "Gi", "aaaa.bbbb.cccc", ""}
	for _, name := range invalid {
		assert.False(t, IsInterfaceName(name), name)
	}
}

func TestLLDPNeighbor(t *testing.T) {
	t.Run("full detail", func(t *testing.T) {
		n, hasName := LLDPNeighbor(fixture(t, "lldp_detail.txt"))
		require.True(t, hasName)
		assert.Equal(t, "SW2.example.com", n.Name)
		assert.Equal(t, domain.DeviceAddress("10.0.0.2"), n.ManagementIP)
		assert.Equal(t, domain.PortIdentifier("Gi1/0/48"), n.RemotePort)
		assert.Equal(t, domain.NeighborProtocolLLDP, n.Protocol)
		assert.True(t, n.Usable())
	})

	t.Run("address not advertised", func(t *testing.T) {
		n, hasName := LLDPNeighbor(fixture(t, "lldp_no_mgmt.txt"))
		require.True(t, hasName)
		assert.Equal(t, "SW2.example.com", n.Name)
		assert.False(t, n.Usable())
	})

	t.Run("no entries", func(t *testing.T) {
		_, hasName := LLDPNeighbor(fixture(t, "lldp_none.txt"))
		assert.False(t, hasName)
	})

	t.Run("inline management address", func(t *testing.T) {
		n, hasName := LLDPNeighbor("System Name: leaf-01\nManagement Address: 10.1.1.1\n")
		require.True(t, hasName)
		assert.Equal(t, domain.DeviceAddress("10.1.1.1"), n.ManagementIP)
	})

	t.Run("empty output", func(t *testing.T) {
		_, hasName := LLDPNeighbor("")
		assert.False(t, hasName)
	})
}

func TestCDPNeighbor(t *testing.T) {
	t.Run("management address preferred", func(t *testing.T) {
		n, hasName := CDPNeighbor(fixture(t, "cdp_detail.txt"))
		require.True(t, hasName)
		assert.Equal(t, "SW2.cisco.com", n.Name)
		assert.Equal(t, domain.DeviceAddress("192.168.100.12"), n.ManagementIP)
		assert.Equal(t, domain.PortIdentifier("FastEthernet1/0/48"), n.RemotePort)
		assert.Equal(t, domain.NeighborProtocolCDP, n.Protocol)
	})

	t.Run("entry address fallback", func(t *testing.T) {
		n, hasName := CDPNeighbor(fixture(t, "cdp_entry_only.txt"))
		require.True(t, hasName)
		assert.Equal(t, domain.DeviceAddress("192.168.1.13"), n.ManagementIP)
		assert.True(t, n.Usable())
	})

	t.Run("unindented address lines", func(t *testing.T) {
		n, hasName := CDPNeighbor(fixture(t, "cdp_unindented.txt"))
		require.True(t, hasName)
		assert.Equal(t, "SW2", n.Name)
		assert.Equal(t, domain.DeviceAddress("192.168.1.99"), n.ManagementIP)
		assert.Equal(t, domain.PortIdentifier("GigabitEthernet1/0/24"), n.RemotePort)
	})

	t.Run("phone without address", func(t *testing.T) {
		n, hasName := CDPNeighbor(fixture(t, "cdp_phone.txt"))
		require.True(t, hasName)
		assert.Equal(t, "SEP001122334455", n.Name)
		assert.False(t, n.Usable())
	})

	t.Run("no neighbor", func(t *testing.T) {
		_, hasName := CDPNeighbor("")
		assert.False(t, hasName)
	})
}

func TestCDPNeighborPicksFirstUsableEntry(t *testing.T) {
	output := fixture(t, "cdp_phone.txt") + fixture(t, "cdp_entry_only.txt")
	n, hasName := CDPNeighbor(output)
	require.True(t, hasName)
	assert.Equal(t, "SW3", n.Name)
}
