package ws

import "encoding/json"

// Inbound event names accepted on the socket.
const (
	EventJoinChat    = "joinChat"
	EventSendMessage = "sendMessage"
	EventTyping      = "typing"
)

// Envelope is the tagged wire format, both directions: a name plus an
// event-specific payload.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type OutEnvelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// SendMessagePayload deliberately has no sender fields: identity comes
// from the authenticated session, and anything a client smuggles into
// the payload is dropped at decode time.
type SendMessagePayload struct {
	ChatID  string `json:"chatId" validate:"required"`
	Content string `json:"content"`
}

type TypingPayload struct {
	ChatID   string `json:"chatId" validate:"required"`
	IsTyping bool   `json:"isTyping"`
}
