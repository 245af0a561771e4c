package ws

import "encoding/json"

// client → server
type InboundMessage struct {
	Type  string `json:"type"`
	Value string `json:"value"` // menu input: "1".."N", "0" or "?"
}

// server → client
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CommitmentPayload struct {
	HMAC string `json:"hmac"`
}

type MenuPayload struct {
	Moves []string `json:"moves"`
}

type TablePayload struct {
	Rows [][]string `json:"rows"`
}

type InvalidPayload struct {
	Input string `json:"input"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
