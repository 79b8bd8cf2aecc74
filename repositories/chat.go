//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"sync"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	errs "chat-relay/errors"

	"github.com/samber/lo"
)

const chatsCollection = "chats"

type IChatRepository interface {
	UpdateSummary(chatID, preview string, at time.Time) error
	All() ([]domain.Chat, error)
}

// ChatRepository refreshes chat summaries. Same single-writer rule as
// the message log: one mutex per collection snapshot.
type ChatRepository struct {
	mu    sync.Mutex
	store contract.Store
	log   *slog.Logger
}

func NewChatRepository(store contract.Store, log *slog.Logger) *ChatRepository {
	return &ChatRepository{store: store, log: log}
}

// UpdateSummary sets lastMessage/lastTime on the matching chat.
// Returns ErrChatNotFound when no chat has this id; callers decide
// whether that is fatal.
func (c *ChatRepository) UpdateSummary(chatID, preview string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var chats []domain.Chat
	if err := c.store.Load(chatsCollection, &chats); err != nil {
		return err
	}
	_, index, found := lo.FindIndexOf(chats, func(item domain.Chat) bool {
		return item.ID == chatID
	})
	if !found {
		return errs.ErrChatNotFound
	}
	chats[index].LastMessage = preview
	chats[index].LastTime = at
	return c.store.Save(chatsCollection, chats)
}

func (c *ChatRepository) All() ([]domain.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var chats []domain.Chat
	if err := c.store.Load(chatsCollection, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}
