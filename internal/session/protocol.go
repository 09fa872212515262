package session

import (
	"encoding/json"

	"github.com/samuraislice/slicer/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	PlayerID  string          `json:"playerId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Client -> server
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeShapeSpawn  = "shape.spawn"
	TypeWordSpawn   = "word.spawn"

	// Server -> client
	TypeWelcome     = "welcome"
	TypeRosterJoin  = "roster.join"
	TypeRosterLeave = "roster.leave"
	TypeFrame       = "frame"
	TypeShapeSplit  = "shape.split"
	TypeError       = "error"
)

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SpawnPayload spawns a catalog shape, or a composite when Composite is
// set.
type SpawnPayload struct {
	Kind      string  `json:"kind"`
	Composite bool    `json:"composite,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx,omitempty"`
	VY        float64 `json:"vy,omitempty"`
}

type WordPayload struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type WelcomePayload struct {
	ClientID string   `json:"clientId"`
	PlayerID string   `json:"playerId"`
	Players  []Player `json:"players"`
	Kinds    []string `json:"kinds"`
	Frame    int      `json:"frame"`
}

type RosterPayload struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName,omitempty"`
}

type FramePayload struct {
	Frame    int                  `json:"frame"`
	Commands []engine.DrawCommand `json:"commands"`
}

type SplitPayload struct {
	EventID  string    `json:"eventId"`
	ShapeID  string    `json:"shapeId"`
	Tag      string    `json:"tag,omitempty"`
	PlayerID string    `json:"playerId,omitempty"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Children [2]string `json:"children"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}
