package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"switchtrace/internal/domain"
	"switchtrace/internal/service"
)

var (
	styleFound = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

// printReport writes one human readable line per lookup, plus the path for
// found addresses
func printReport(out io.Writer, entry domain.DeviceAddress, input string, o domain.Outcome, err error) {
	fmt.Fprintln(out, describe(entry, input, o, err))
	if o.IsFound() && len(o.Result.Path) > 1 {
		for _, hop := range o.Result.Path {
			fmt.Fprintln(out, styleDim.Render("    "+describeHop(hop)))
		}
	}
}

func describe(entry domain.DeviceAddress, input string, o domain.Outcome, err error) string {
	if errors.Is(err, service.ErrInvalidIP) {
		return styleError.Render(fmt.Sprintf("%q is not a valid IP address", input))
	}

	var line string
	switch o.Kind {
	case domain.OutcomeFound:
		r := o.Result
		line = styleFound.Render(fmt.Sprintf("%s (%s) is on switch %s port %s", r.TargetIP, r.MAC, r.Device, r.Port))
	case domain.OutcomeNotFoundAtGateway:
		line = styleWarn.Render(fmt.Sprintf("%s: no ARP entry on %s", input, entry))
	case domain.OutcomeMACNotFoundOnPath:
		line = styleWarn.Render(fmt.Sprintf("%s: MAC not found in a MAC address table along the path", input))
	case domain.OutcomePortUnidentified:
		line = styleWarn.Render(fmt.Sprintf("%s: MAC present on %s but the port could not be identified", input, o.Device))
	case domain.OutcomeCycleDetected:
		line = styleError.Render(fmt.Sprintf("%s: neighbor loop detected at %s", input, o.Device))
	case domain.OutcomeTransportError:
		line = styleError.Render(fmt.Sprintf("%s: could not query %s: %v", input, o.Device, o.Err))
	default:
		line = styleError.Render(fmt.Sprintf("%s: %s", input, o))
	}

	if err != nil {
		line += "\n" + styleError.Render(fmt.Sprintf("  result not recorded: %v", err))
	}
	return line
}

func describeHop(hop domain.Hop) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", hop.Device, hop.Port)
	if hop.Neighbor != nil {
		fmt.Fprintf(&b, " -> %s %s (%s)", hop.Neighbor.Name, hop.Neighbor.ManagementIP, hop.Neighbor.Protocol)
	}
	return b.String()
}
