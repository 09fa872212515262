package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixCommand = "cmd"
	PrefixShape   = "shape"
	PrefixEvent   = "evt"
	PrefixSession = "sess"
	PrefixPlayer  = "player"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewCommandID() string { return New(PrefixCommand) }
func NewShapeID() string   { return New(PrefixShape) }
func NewEventID() string   { return New(PrefixEvent) }
func NewSessionID() string { return New(PrefixSession) }
func NewPlayerID() string  { return New(PrefixPlayer) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
