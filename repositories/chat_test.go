package repositories

import (
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"
	errs "chat-relay/errors"

	"github.com/stretchr/testify/require"
)

func TestChatRepository_UpdateSummary(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	repository := NewChatRepository(store, slog.Default())

	// Given two existing chats
	req.NoError(store.Save("chats", []domain.Chat{
		{ID: "room1", LastMessage: "old"},
		{ID: "room2"},
	}))

	// When room1's summary is refreshed
	at := time.Now().UTC().Truncate(time.Second)
	req.NoError(repository.UpdateSummary("room1", "hi", at))

	// Then only room1 changed
	chats, err := repository.All()
	req.NoError(err)
	req.Equal("hi", chats[0].LastMessage)
	req.Equal(at, chats[0].LastTime.UTC())
	req.Empty(chats[1].LastMessage)
}

func TestChatRepository_UpdateSummary_Unknown_Chat(t *testing.T) {
	req := require.New(t)
	repository := NewChatRepository(newTestStore(t), slog.Default())

	err := repository.UpdateSummary("ghost", "hi", time.Now().UTC())
	req.ErrorIs(err, errs.ErrChatNotFound)
}
