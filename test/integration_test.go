package test

import (
	"context"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/mocks"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/services"
	"chat-relay/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Scenario_Full_Pipeline(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)

	// Reduced value log for testing (avoid gigabytes of preallocation)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromString("DEBUG")
	store := storage.New(db, log)
	messages := repositories.NewMessageRepository(store, log)
	chats := repositories.NewChatRepository(store, log)
	broadcaster := runtime.NewBroadcaster(log)
	registry := runtime.NewRegistry(log, broadcaster)
	chatService := services.NewChatService(log, messages, chats, broadcaster)

	// Given a chat record for room1
	req.NoError(store.Save("chats", []domain.Chat{{ID: "room1"}}))

	// And two connected members of room1, one of them mocked
	ctrl := gomock.NewController(t)
	aliceSink := mocks.NewMockEventSink(ctrl)
	bobSink := mocks.NewMockEventSink(ctrl)

	done := make(chan event.Event, 1)
	aliceSink.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.Event) error {
			done <- e
			return nil
		}).
		Times(1)
	bobSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	aliceSession := registry.Register("conn-a", domain.Identity{ID: "u-1", Username: "alice"})
	registry.Register("conn-b", domain.Identity{ID: "u-2", Username: "bob"})
	broadcaster.Attach("conn-a", aliceSink)
	broadcaster.Attach("conn-b", bobSink)
	chatService.JoinChat(aliceSession, "room1")
	broadcaster.Join("conn-b", "room1")

	// When alice sends a message
	err = chatService.HandleIncomingMessage(ctx, aliceSession, "room1", "hi")
	req.NoError(err)

	// Then alice herself received the echo
	select {
	case e := <-done:
		newMessage, ok := e.(event.NewMessage)
		req.True(ok)
		req.Equal("alice", newMessage.Message.SenderUsername)
	case <-time.After(2 * time.Second):
		req.Fail("Timeout: echo never reached the sender's sink")
	}

	// And the message survives in the log with the chat summary refreshed
	persisted, err := messages.All()
	req.NoError(err)
	req.Len(persisted, 1)
	req.Equal("hi", persisted[0].Content)

	allChats, err := chats.All()
	req.NoError(err)
	req.Equal("hi", allChats[0].LastMessage)

	// And after disconnect nothing is delivered anymore
	registry.Unregister("conn-a")
	registry.Unregister("conn-b")
	err = chatService.HandleIncomingMessage(ctx, aliceSession, "room1", "anyone?")
	req.NoError(err)

	persisted, err = messages.All()
	req.NoError(err)
	req.Len(persisted, 2)
}
