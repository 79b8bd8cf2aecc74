package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_Unique_Ids_And_Empty_Reactions(t *testing.T) {
	req := require.New(t)
	sender := Identity{ID: "u-1", Username: "alice"}
	at := time.Now().UTC()

	seen := make(map[uuid.UUID]struct{})
	for i := 0; i < 100; i++ {
		message := NewMessage("room1", sender, "hi", at)
		req.NotContains(seen, message.ID)
		seen[message.ID] = struct{}{}

		req.Equal("u-1", message.SenderID)
		req.Equal("alice", message.SenderUsername)
		req.NotNil(message.Reactions)
		req.Empty(message.Reactions)
	}
}
