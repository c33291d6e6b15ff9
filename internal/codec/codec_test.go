package codec

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"switchtrace/internal/domain"
)

func sampleResults() []domain.TraversalResult {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sw2 := domain.NeighborInfo{Name: "SW2", ManagementIP: "10.0.0.2", Protocol: domain.NeighborProtocolCDP}
	return []domain.TraversalResult{
		domain.NewTraversalResult("10.0.0.5", domain.MustParseMAC("aabb.ccdd.eeff"), "10.0.0.2", "Fa1/0/10", at, []domain.Hop{
			{Device: "10.0.0.1", Port: "Gi1/0/3", Neighbor: &sw2},
			{Device: "10.0.0.2", Port: "Fa1/0/10"},
		}),
		domain.NewTraversalResult("10.0.0.6", domain.MustParseMAC("0011.2233.4455"), "10.0.0.1", "Gi1/0/7", at, nil),
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"table", "json", "yaml"} {
		e, err := ForFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.Format())
	}

	_, err := ForFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"json", "table", "yaml"}, Formats())
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleResults(), &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "10.0.0.5", decoded[0]["target_ip"])
	assert.Equal(t, "aabb.ccdd.eeff", decoded[0]["mac"])
	assert.Equal(t, "Fa1/0/10", decoded[0]["port"])
	assert.Equal(t, "end-host", decoded[0]["terminal_label"])
	assert.Len(t, decoded[0]["path"], 2)
	assert.NotContains(t, decoded[1], "path")
}

func TestJSONExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(sampleResults(), &buf))

	var doc yamlDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 2)

	first := doc.Results[0]
	assert.Equal(t, "10.0.0.2", first.Switch)
	assert.Equal(t, "end-host 10.0.0.5", first.Terminal)
	assert.Equal(t, "2024-03-01T10:00:00Z", first.LocatedAt)
	require.Len(t, first.Path, 2)
	assert.Equal(t, "SW2 (10.0.0.2)", first.Path[0].Neighbor)
	assert.Equal(t, "cdp", first.Path[0].Via)
	assert.Empty(t, first.Path[1].Neighbor)
}

func TestTableExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableCodec().Export(sampleResults(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "LOCATED"))
	assert.Contains(t, lines[1], "10.0.0.5")
	assert.Contains(t, lines[1], "aabb.ccdd.eeff")
	assert.Contains(t, lines[1], "Fa1/0/10")
	assert.True(t, strings.HasSuffix(lines[2], "0"))
}
