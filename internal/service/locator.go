package service

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/rs/zerolog"

	"switchtrace/internal/domain"
	"switchtrace/internal/sink"
)

// ErrInvalidIP is returned for input that is not an IP address
var ErrInvalidIP = errors.New("invalid IP address")

// Walker runs one topology walk
type Walker interface {
	Locate(ctx context.Context, entry domain.DeviceAddress, targetIP string) domain.Outcome
}

// Report is the outcome of one requested address
type Report struct {
	Input   string
	Outcome domain.Outcome
	// Err is set for invalid input or when recording a result failed
	Err error
}

// LocatorService locates addresses from a fixed entry device
type LocatorService struct {
	walker Walker
	sink   sink.Sink
	entry  domain.DeviceAddress
	log    zerolog.Logger
}

// NewLocatorService creates a locator. sink may be nil.
func NewLocatorService(walker Walker, s sink.Sink, entry domain.DeviceAddress, log zerolog.Logger) *LocatorService {
	return &LocatorService{
		walker: walker,
		sink:   s,
		entry:  entry,
		log:    log,
	}
}

// Entry returns the device walks start from
func (s *LocatorService) Entry() domain.DeviceAddress {
	return s.entry
}

// Locate walks to rawIP's attachment point and records a found result.
// The outcome is meaningful even when err is a sink failure.
func (s *LocatorService) Locate(ctx context.Context, rawIP string) (domain.Outcome, error) {
	ip, err := ParseTarget(rawIP)
	if err != nil {
		return domain.Outcome{}, err
	}

	log := s.log.With().Str("ip", ip).Str("entry", s.entry.String()).Logger()
	log.Debug().Msg("locating")

	outcome := s.walker.Locate(ctx, s.entry, ip)
	logOutcome(log, outcome)

	if !outcome.IsFound() || s.sink == nil {
		return outcome, nil
	}

	if err := s.sink.Write(ctx, *outcome.Result); err != nil {
		log.Error().Err(err).Msg("failed to record result")
		return outcome, fmt.Errorf("recording result for %s: %w", ip, err)
	}
	return outcome, nil
}

// LocateAll handles each input in turn
func (s *LocatorService) LocateAll(ctx context.Context, inputs []string) []Report {
	reports := make([]Report, 0, len(inputs))
	for _, input := range inputs {
		outcome, err := s.Locate(ctx, input)
		reports = append(reports, Report{Input: input, Outcome: outcome, Err: err})
	}
	return reports
}

// ParseTarget validates and normalizes a target address
func ParseTarget(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	addr, err := netip.ParseAddr(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIP, trimmed)
	}
	return addr.String(), nil
}

func logOutcome(log zerolog.Logger, o domain.Outcome) {
	switch o.Kind {
	case domain.OutcomeFound:
		r := o.Result
		ev := log.Info().
			Str("mac", r.MAC.String()).
			Str("device", r.Device.String()).
			Str("port", r.Port.String()).
			Int("hops", len(r.Path))
		for i, hop := range r.Path {
			if hop.Neighbor != nil {
				ev = ev.Str(fmt.Sprintf("hop%d", i+1),
					fmt.Sprintf("%s %s -> %s (%s)", hop.Device, hop.Port, hop.Neighbor.ManagementIP, hop.Neighbor.Protocol))
			}
		}
		ev.Msg("located")
	case domain.OutcomeNotFoundAtGateway:
		log.Warn().Msg("no ARP entry on the entry device")
	case domain.OutcomeMACNotFoundOnPath:
		log.Warn().Msg("MAC missing from a MAC address table along the path")
	case domain.OutcomePortUnidentified:
		log.Warn().Str("device", o.Device.String()).Msg("MAC present but port could not be identified")
	case domain.OutcomeCycleDetected:
		log.Error().Str("device", o.Device.String()).Msg("neighbor chain loops back to a visited device")
	case domain.OutcomeTransportError:
		log.Error().Err(o.Err).Str("device", o.Device.String()).Msg("device query failed")
	default:
		log.Error().Str("kind", string(o.Kind)).Msg("unknown outcome")
	}
}
