// Package lab replays captured CLI output instead of talking to devices.
//
// A topology file maps device addresses to the output each command should
// produce:
//
//	description: two switches, host behind SW2
//	devices:
//	  10.0.0.1:
//	    hostname: SW1
//	    commands:
//	      show ip arp 10.0.0.5: |
//	        Internet  10.0.0.5   3   aaaa.bbbb.cccc  ARPA   Vlan10
//	    files:
//	      show lldp neighbors Gi1/0/3 detail: captures/sw1_lldp.txt
//	  10.0.0.9:
//	    unreachable: true
//
// Commands not listed return empty output, the way a filtered show command
// does on a real switch. Topology implements transport.Opener.
package lab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"switchtrace/internal/domain"
	"switchtrace/internal/transport"
)

var (
	errNoSuchDevice = errors.New("no such device in lab topology")
	errLabAuth      = errors.New("lab device rejects credentials")
)

// TopologyYAML represents the YAML file structure
type TopologyYAML struct {
	Description string                 `yaml:"description,omitempty"`
	Devices     map[string]*DeviceYAML `yaml:"devices"`
}

// DeviceYAML represents one simulated device
type DeviceYAML struct {
	Hostname    string            `yaml:"hostname,omitempty"`
	Unreachable bool              `yaml:"unreachable,omitempty"`
	AuthFailure bool              `yaml:"auth_failure,omitempty"`
	Commands    map[string]string `yaml:"commands,omitempty"`
	// Files maps commands to capture files, relative to the topology file
	Files map[string]string `yaml:"files,omitempty"`
}

type device struct {
	hostname    string
	unreachable bool
	authFailure bool
	outputs     map[string]string
}

// Topology is a loaded lab
type Topology struct {
	description string
	devices     map[domain.DeviceAddress]*device

	mu         sync.Mutex
	transcript []string
}

// Load reads a topology file
func Load(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lab topology: %w", err)
	}
	return Parse(bytes.NewReader(data), filepath.Dir(path))
}

// Parse reads a topology; capture files resolve against baseDir
func Parse(r io.Reader, baseDir string) (*Topology, error) {
	var ty TopologyYAML
	if err := yaml.NewDecoder(r).Decode(&ty); err != nil {
		return nil, fmt.Errorf("failed to parse lab topology: %w", err)
	}
	if len(ty.Devices) == 0 {
		return nil, fmt.Errorf("lab topology has no devices")
	}

	t := &Topology{
		description: ty.Description,
		devices:     make(map[domain.DeviceAddress]*device, len(ty.Devices)),
	}

	for addr, dy := range ty.Devices {
		if dy == nil {
			dy = &DeviceYAML{}
		}
		d := &device{
			hostname:    dy.Hostname,
			unreachable: dy.Unreachable,
			authFailure: dy.AuthFailure,
			outputs:     make(map[string]string, len(dy.Commands)+len(dy.Files)),
		}
		if d.hostname == "" {
			d.hostname = addr
		}

		for cmd, out := range dy.Commands {
			d.outputs[normalizeCommand(cmd)] = out
		}
		for cmd, file := range dy.Files {
			if !filepath.IsAbs(file) {
				file = filepath.Join(baseDir, file)
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("device %s: failed to read capture for %q: %w", addr, cmd, err)
			}
			d.outputs[normalizeCommand(cmd)] = string(data)
		}

		t.devices[domain.DeviceAddress(addr)] = d
	}

	return t, nil
}

// Description returns the topology's description
func (t *Topology) Description() string {
	return t.description
}

// Hostname returns the configured hostname of a device
func (t *Topology) Hostname(addr domain.DeviceAddress) (string, bool) {
	d, ok := t.devices[addr]
	if !ok {
		return "", false
	}
	return d.hostname, true
}

// Open implements transport.Opener
func (t *Topology) Open(ctx context.Context, addr domain.DeviceAddress) (transport.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewTransportError(addr, domain.ErrTimeout, err)
	}

	d, ok := t.devices[addr]
	switch {
	case !ok:
		return nil, domain.NewTransportError(addr, domain.ErrUnreachable, errNoSuchDevice)
	case d.unreachable:
		return nil, domain.NewTransportError(addr, domain.ErrUnreachable, fmt.Errorf("%s is marked unreachable", d.hostname))
	case d.authFailure:
		return nil, domain.NewTransportError(addr, domain.ErrAuth, errLabAuth)
	}

	t.record(addr, "open")
	return &session{topology: t, addr: addr, device: d}, nil
}

// Transcript returns every open and command so far, as "addr: text"
func (t *Topology) Transcript() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.transcript))
	copy(out, t.transcript)
	return out
}

func (t *Topology) record(addr domain.DeviceAddress, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transcript = append(t.transcript, fmt.Sprintf("%s: %s", addr, text))
}

type session struct {
	topology *Topology
	addr     domain.DeviceAddress
	device   *device
	closed   bool
}

func (s *session) SendCommand(ctx context.Context, text string) (string, error) {
	if s.closed {
		return "", domain.NewTransportError(s.addr, domain.ErrSession, errors.New("session closed"))
	}
	if err := ctx.Err(); err != nil {
		return "", domain.NewTransportError(s.addr, domain.ErrTimeout, err)
	}

	s.topology.record(s.addr, text)
	return s.device.outputs[normalizeCommand(text)], nil
}

func (s *session) Close() error {
	if !s.closed {
		s.closed = true
		s.topology.record(s.addr, "close")
	}
	return nil
}

func normalizeCommand(cmd string) string {
	return strings.Join(strings.Fields(cmd), " ")
}
