package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannel_StringAndParseRoundTrip(t *testing.T) {
	ch, err := NewChannel("router", "operator", "alert")
	require.NoError(t, err)
	assert.Equal(t, "intellirouter:router:operator:alert", ch.String())

	parsed, err := ParseChannel(ch.String())
	require.NoError(t, err)
	assert.Equal(t, ch, parsed)
}

func TestNewChannel_RejectsInvalidComponents(t *testing.T) {
	cases := []struct {
		name                           string
		source, destination, kind string
	}{
		{"hyphen in source", "router-a", "operator", "alert"},
		{"uppercase in destination", "router", "Operator", "alert"},
		{"wildcard kind not allowed", "router", "operator", "*"},
		{"empty component", "", "operator", "alert"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewChannel(tc.source, tc.destination, tc.kind)
			assert.Error(t, err)
		})
	}
}

func TestNewChannelPattern_AllowsWildcardKindOnly(t *testing.T) {
	ch, err := NewChannelPattern("router", "operator", "*")
	require.NoError(t, err)
	assert.Equal(t, "*", ch.Kind())

	_, err = NewChannelPattern("*", "operator", "*")
	assert.Error(t, err, "source still rejects the wildcard")
}

func TestParseChannel_RejectsMalformedInput(t *testing.T) {
	cases := []string{
		"router:operator:alert",
		"intellirouter:router:operator",
		"wrongprefix:router:operator:alert",
		"intellirouter:router:operator:alert:extra",
	}
	for _, s := range cases {
		_, err := ParseChannel(s)
		assert.Error(t, err, s)
	}
}
