// Package walker follows a MAC address from the gateway that resolved it,
// switch by switch, to the port it is attached to.
//
// Each Locate call owns its visited set; nothing is shared between calls,
// so a Walker may be used from several goroutines at once. The walker does
// not log or retry: every result, including failures, is returned as a
// domain.Outcome for the caller to report.
package walker

import (
	"context"
	"time"

	"switchtrace/internal/adapter"
	"switchtrace/internal/domain"
)

// Querier is the device access the walker needs
type Querier interface {
	ResolveARP(ctx context.Context, device domain.DeviceAddress, targetIP string) (domain.MACAddress, bool, error)
	LocatePort(ctx context.Context, device domain.DeviceAddress, mac domain.MACAddress) (adapter.PortLookup, error)
	DiscoverNeighbor(ctx context.Context, device domain.DeviceAddress, port domain.PortIdentifier) (domain.NeighborInfo, bool, error)
}

// Walker locates IP addresses in a switched topology
type Walker struct {
	querier Querier
	now     func() time.Time
}

// Option configures a Walker
type Option func(*Walker)

// WithClock sets the clock used to timestamp results
func WithClock(now func() time.Time) Option {
	return func(w *Walker) {
		w.now = now
	}
}

// New creates a Walker
func New(querier Querier, opts ...Option) *Walker {
	w := &Walker{
		querier: querier,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Locate finds the switch port targetIP is attached to, starting from the
// entry device that routes for it
func (w *Walker) Locate(ctx context.Context, entry domain.DeviceAddress, targetIP string) domain.Outcome {
	mac, found, err := w.querier.ResolveARP(ctx, entry, targetIP)
	if err != nil {
		return domain.TransportFailure(entry, err)
	}
	if !found {
		return domain.NotFoundAtGateway()
	}

	visited := make(map[domain.DeviceAddress]struct{})
	var path []domain.Hop
	current := entry

	for {
		if _, seen := visited[current]; seen {
			return domain.CycleDetected(current)
		}
		visited[current] = struct{}{}

		lookup, err := w.querier.LocatePort(ctx, current, mac)
		if err != nil {
			return domain.TransportFailure(current, err)
		}
		switch lookup.Status {
		case adapter.MACAbsent:
			return domain.MACNotFoundOnPath()
		case adapter.PortUnidentifiable:
			return domain.PortUnidentified(current)
		}

		neighbor, found, err := w.querier.DiscoverNeighbor(ctx, current, lookup.Port)
		if err != nil {
			return domain.TransportFailure(current, err)
		}
		if !found {
			path = append(path, domain.Hop{Device: current, Port: lookup.Port})
			return domain.Found(domain.NewTraversalResult(targetIP, mac, current, lookup.Port, w.now(), path))
		}

		path = append(path, domain.Hop{Device: current, Port: lookup.Port, Neighbor: &neighbor})
		current = neighbor.ManagementIP
	}
}
