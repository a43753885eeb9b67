// Package ws defines the websocket message envelope and its type tags.
package ws

import "encoding/json"

// Message is the envelope every websocket frame carries: a type tag and a
// payload whose shape depends on the tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound message types.
const (
	MessageTypeMove      = "move"
	MessageTypeClaimDraw = "claim_draw"
	MessageTypeResign    = "resign"
)

// Outbound message types.
const (
	MessageTypeGameState = "game_state"
	MessageTypeError     = "error"
)
