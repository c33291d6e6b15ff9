package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"switchtrace/internal/domain"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument represents the YAML structure for exported results
type yamlDocument struct {
	Results []yamlResult `yaml:"results"`
}

type yamlResult struct {
	TargetIP  string    `yaml:"target_ip"`
	MAC       string    `yaml:"mac"`
	Switch    string    `yaml:"switch"`
	Port      string    `yaml:"port"`
	Terminal  string    `yaml:"terminal"`
	LocatedAt string    `yaml:"located_at"`
	Path      []yamlHop `yaml:"path,omitempty"`
}

type yamlHop struct {
	Device   string `yaml:"device"`
	Port     string `yaml:"port"`
	Neighbor string `yaml:"neighbor,omitempty"`
	Via      string `yaml:"via,omitempty"`
}

// Export writes results as a YAML document
func (c *YAMLCodec) Export(results []domain.TraversalResult, w io.Writer) error {
	doc := yamlDocument{
		Results: make([]yamlResult, 0, len(results)),
	}

	for _, r := range results {
		yr := yamlResult{
			TargetIP:  r.TargetIP,
			MAC:       r.MAC.String(),
			Switch:    r.Device.String(),
			Port:      r.Port.String(),
			Terminal:  fmt.Sprintf("%s %s", r.TerminalLabel, r.TerminalIP),
			LocatedAt: r.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
		for _, hop := range r.Path {
			yh := yamlHop{Device: hop.Device.String(), Port: hop.Port.String()}
			if hop.Neighbor != nil {
				yh.Neighbor = fmt.Sprintf("%s (%s)", hop.Neighbor.Name, hop.Neighbor.ManagementIP)
				yh.Via = string(hop.Neighbor.Protocol)
			}
			yr.Path = append(yr.Path, yh)
		}
		doc.Results = append(doc.Results, yr)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
