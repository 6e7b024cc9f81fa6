package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool   // whether this frame is the last one of the message
	opCode  byte   // operation code (text message, binary data, close and so on)
	length  uint64 // payload length
	payload []byte // frame payload
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Error  string         `json:"error,omitempty"`
	Card   *int           `json:"card,omitempty"`
}
