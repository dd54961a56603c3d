package types

import (
	"fmt"
	"regexp"
	"strings"
)

// channelComponent matches the grammar required of every channel name
// segment: lowercase letters, digits, and underscores.
var channelComponent = regexp.MustCompile(`^[a-z0-9_]+$`)

// channelTerminal additionally allows a bare "*" for pattern subscriptions,
// and only in the terminal (event-kind) segment.
var channelTerminal = regexp.MustCompile(`^([a-z0-9_]+|\*)$`)

// Channel is the three-part colon-delimited directed-event address:
// intellirouter:{source}:{destination}:{kind}. Channel values are immutable
// once constructed and unique per directed module pair plus event kind.
type Channel struct {
	source      string
	destination string
	kind        string
}

// NewChannel builds a Channel, rejecting any component outside [a-z0-9_]+.
func NewChannel(source, destination, kind string) (Channel, error) {
	if !channelComponent.MatchString(source) {
		return Channel{}, fmt.Errorf("intellirouter: invalid channel source %q", source)
	}
	if !channelComponent.MatchString(destination) {
		return Channel{}, fmt.Errorf("intellirouter: invalid channel destination %q", destination)
	}
	if !channelComponent.MatchString(kind) {
		return Channel{}, fmt.Errorf("intellirouter: invalid channel kind %q", kind)
	}
	return Channel{source: source, destination: destination, kind: kind}, nil
}

// NewChannelPattern builds a pattern Channel for psubscribe, where kind may
// be the literal "*" wildcard in addition to a concrete kind.
func NewChannelPattern(source, destination, kind string) (Channel, error) {
	if !channelComponent.MatchString(source) {
		return Channel{}, fmt.Errorf("intellirouter: invalid channel source %q", source)
	}
	if !channelComponent.MatchString(destination) {
		return Channel{}, fmt.Errorf("intellirouter: invalid channel destination %q", destination)
	}
	if !channelTerminal.MatchString(kind) {
		return Channel{}, fmt.Errorf("intellirouter: invalid channel kind pattern %q", kind)
	}
	return Channel{source: source, destination: destination, kind: kind}, nil
}

// String renders the canonical wire form of the channel name.
func (c Channel) String() string {
	return strings.Join([]string{"intellirouter", c.source, c.destination, c.kind}, ":")
}

func (c Channel) Source() string      { return c.source }
func (c Channel) Destination() string { return c.destination }
func (c Channel) Kind() string        { return c.kind }

// ParseChannel parses the canonical wire form back into a Channel.
func ParseChannel(s string) (Channel, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 || parts[0] != "intellirouter" {
		return Channel{}, fmt.Errorf("intellirouter: malformed channel %q", s)
	}
	return NewChannel(parts[1], parts[2], parts[3])
}
