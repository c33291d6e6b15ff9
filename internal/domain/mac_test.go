package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMAC(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "cisco dotted", input: "f80d.ac59.366a", want: "f80d.ac59.366a"},
		{name: "cisco dotted upper", input: "F80D.AC59.366A", want: "f80d.ac59.366a"},
		{name: "colon", input: "f8:0d:ac:59:36:6a", want: "f80d.ac59.366a"},
		{name: "hyphen", input: "F8-0D-AC-59-36-6A", want: "f80d.ac59.366a"},
		{name: "bare hex", input: "f80dac59366a", want: "f80d.ac59.366a"},
		{name: "surrounding space", input: "  aabb.ccdd.eeff\n", want: "aabb.ccdd.eeff"},
		{name: "empty", input: "", wantErr: true},
		{name: "ip address", input: "10.0.0.5", wantErr: true},
		{name: "too short", input: "aabb.ccdd", wantErr: true},
		{name: "eui64", input: "00:00:5e:00:53:00:00:01", wantErr: true},
		{name: "incomplete", input: "Incomplete", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMAC(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMAC)
				assert.False(t, got.IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMACAddressEqualAcrossSeparators(t *testing.T) {
	colon := MustParseMAC("aa:bb:cc:dd:ee:ff")
	dotted := MustParseMAC("aabb.ccdd.eeff")
	hyphen := MustParseMAC("AA-BB-CC-DD-EE-FF")

	assert.True(t, colon.Equal(dotted))
	assert.True(t, dotted.Equal(hyphen))
	assert.False(t, colon.Equal(MustParseMAC("aabb.ccdd.eef0")))
	assert.False(t, colon.Equal(MACAddress{}), "zero value never matches")
	assert.False(t, MACAddress{}.Equal(MACAddress{}))
}

func TestMACAddressFormats(t *testing.T) {
	m := MustParseMAC("aabb.ccdd.eeff")
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", m.Colon())
	assert.Equal(t, "", MACAddress{}.String())
	assert.Equal(t, "", MACAddress{}.Colon())
}

func TestMACAddressText(t *testing.T) {
	var m MACAddress
	require.NoError(t, m.UnmarshalText([]byte("AA:BB:CC:DD:EE:FF")))
	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "aabb.ccdd.eeff", string(text))

	require.Error(t, m.UnmarshalText([]byte("nope")))

	require.NoError(t, m.UnmarshalText(nil))
	assert.False(t, m.IsValid())
}
