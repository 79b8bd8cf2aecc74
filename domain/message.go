// Package domain contains core concepts of the chat system.
// This file defines Message records and related rules.
// Messages are immutable once created, except for reaction appends.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is an emoji attached to a message by a user.
type Reaction struct {
	Emoji    string `json:"emoji"`
	Username string `json:"username"`
}

// Message represents one persisted chat message.
// Sender identity always comes from the authenticated session,
// never from a client payload.
type Message struct {
	ID             uuid.UUID  `json:"id"`
	ChatID         string     `json:"chatId"`
	SenderID       string     `json:"senderId"`
	SenderUsername string     `json:"senderUsername"`
	Content        string     `json:"content"`
	At             time.Time  `json:"time"`
	Reactions      []Reaction `json:"reactions"`
}

// NewMessage builds a message with a fresh unique id and an empty
// reaction list. Content is taken verbatim.
func NewMessage(chatID string, sender Identity, content string, at time.Time) Message {
	return Message{
		ID:             uuid.New(),
		ChatID:         chatID,
		SenderID:       sender.ID,
		SenderUsername: sender.Username,
		Content:        content,
		At:             at,
		Reactions:      []Reaction{},
	}
}
