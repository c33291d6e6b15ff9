package domain

// NeighborProtocol names the link-layer discovery protocol an entry came from
type NeighborProtocol string

const (
	// NeighborProtocolLLDP is the vendor-neutral protocol, always asked first
	NeighborProtocolLLDP NeighborProtocol = "lldp"
	// NeighborProtocolCDP is the Cisco protocol, asked when LLDP has nothing usable
	NeighborProtocolCDP NeighborProtocol = "cdp"
)

// NeighborInfo is a network device seen behind a local port
type NeighborInfo struct {
	Name         string           `json:"name" yaml:"name"`
	ManagementIP DeviceAddress    `json:"management_ip" yaml:"management_ip"`
	Protocol     NeighborProtocol `json:"protocol" yaml:"protocol"`
	// RemotePort is the neighbor's interface facing us, when advertised
	RemotePort PortIdentifier `json:"remote_port,omitempty" yaml:"remote_port,omitempty"`
}

// Usable reports whether the neighbor can be walked to: it needs both a
// system name and a management address
func (n NeighborInfo) Usable() bool {
	return n.Name != "" && !n.ManagementIP.IsZero()
}
