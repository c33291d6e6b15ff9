package transport

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/Ullaakut/nmap/v3"
	"github.com/rs/zerolog"
)

var (
	ErrHostDown    = errors.New("host did not respond")
	ErrPortNotOpen = errors.New("ssh port not open")
)

// NmapPreflight checks SSH reachability with a single-port nmap scan
type NmapPreflight struct {
	timeout           time.Duration
	skipHostDiscovery bool
	binaryPath        string
	log               zerolog.Logger
}

// PreflightOption configures NmapPreflight
type PreflightOption func(*NmapPreflight)

// WithPreflightTimeout bounds each scan
func WithPreflightTimeout(d time.Duration) PreflightOption {
	return func(p *NmapPreflight) {
		p.timeout = d
	}
}

// WithHostDiscovery enables nmap's ping phase; switches often drop ICMP from
// management hosts so it is skipped (-Pn) by default
func WithHostDiscovery(enabled bool) PreflightOption {
	return func(p *NmapPreflight) {
		p.skipHostDiscovery = !enabled
	}
}

// WithNmapBinary sets the nmap binary location
func WithNmapBinary(path string) PreflightOption {
	return func(p *NmapPreflight) {
		p.binaryPath = path
	}
}

// NewNmapPreflight creates a preflight checker
func NewNmapPreflight(log zerolog.Logger, opts ...PreflightOption) *NmapPreflight {
	p := &NmapPreflight{
		timeout:           15 * time.Second,
		skipHostDiscovery: true,
		log:               log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NmapAvailable reports the nmap binary path and its version line, or an
// error when nmap is missing or does not run
func NmapAvailable(ctx context.Context, binary string) (path, version string, err error) {
	if binary == "" {
		binary = "nmap"
	}
	path, err = exec.LookPath(binary)
	if err != nil {
		return "", "", fmt.Errorf("nmap not in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return path, "", fmt.Errorf("nmap exists but --version failed: %w", err)
	}

	version = strings.TrimSpace(strings.Split(string(output), "\n")[0])
	return path, version, nil
}

// Check scans host:port and fails unless the port is open
func (p *NmapPreflight) Check(ctx context.Context, host string, port int) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	scanner, err := nmap.NewScanner(ctx, p.options(host, port)...)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	result, warnings, err := scanner.Run()
	if err != nil {
		return fmt.Errorf("preflight scan failed: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		p.log.Debug().Str("host", host).Strs("warnings", *warnings).Msg("nmap warnings")
	}

	return interpretScan(result, port)
}

func (p *NmapPreflight) options(host string, port int) []nmap.Option {
	opts := []nmap.Option{
		nmap.WithTargets(host),
		nmap.WithPorts(strconv.Itoa(port)),
	}
	if p.skipHostDiscovery {
		opts = append(opts, nmap.WithSkipHostDiscovery())
	}
	if p.binaryPath != "" {
		opts = append(opts, nmap.WithBinaryPath(p.binaryPath))
	}
	return opts
}

// interpretScan decides reachability from a finished scan
func interpretScan(result *nmap.Run, port int) error {
	if result == nil {
		return fmt.Errorf("nil scan result")
	}

	for _, host := range result.Hosts {
		if host.Status.State != "up" {
			continue
		}
		for _, p := range host.Ports {
			if int(p.ID) != port {
				continue
			}
			if p.State.State == "open" {
				return nil
			}
			return fmt.Errorf("%w: port %d is %s", ErrPortNotOpen, port, p.State.State)
		}
		return fmt.Errorf("%w: port %d not reported", ErrPortNotOpen, port)
	}

	return ErrHostDown
}
