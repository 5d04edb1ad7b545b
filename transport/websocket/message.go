package websocket

import "encoding/json"

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type betPayload struct {
	BetAmount float64 `json:"betAmount"`
}

type revealPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func newMessage(action string, payload any) *Message {
	msg := &Message{Action: action}

	raw, err := json.Marshal(payload)
	if err != nil {
		msg.Error = "failed to encode payload"
		return msg
	}

	msg.Payload = raw

	return msg
}

func errorMessage(action, errMsg string) *Message {
	return &Message{Action: action, Error: errMsg}
}
