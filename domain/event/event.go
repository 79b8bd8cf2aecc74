package event

import "chat-relay/domain"

// Outbound event names pushed to room members.
const (
	NameNewMessage = "newMessage"
	NameUserTyping = "userTyping"
)

// Event is a broadcastable occurrence scoped to one chat room.
type Event interface {
	Name() string
	// Payload is what gets serialized on the wire for this event.
	Payload() any
}

// NewMessage announces a freshly persisted message to its room.
type NewMessage struct {
	Message domain.Message
}

func (e NewMessage) Name() string { return NameNewMessage }

func (e NewMessage) Payload() any { return e.Message }

// UserTyping relays an ephemeral typing state. Never persisted.
type UserTyping struct {
	Chat     string `json:"chatId"`
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

func (e UserTyping) Name() string { return NameUserTyping }

func (e UserTyping) Payload() any { return e }
