//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"

	"github.com/samber/lo"
)

const messagesCollection = "messages"

type IMessageRepository interface {
	Append(message domain.Message) error
	All() ([]domain.Message, error)
	ByChat(chatID string) ([]domain.Message, error)
}

// MessageRepository owns the append-only message log. The snapshot
// read-modify-write is guarded by a mutex so two concurrent sends can
// never lose each other's append.
type MessageRepository struct {
	mu    sync.Mutex
	store contract.Store
	log   *slog.Logger
}

func NewMessageRepository(store contract.Store, log *slog.Logger) *MessageRepository {
	return &MessageRepository{store: store, log: log}
}

func (m *MessageRepository) Append(message domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var messages []domain.Message
	if err := m.store.Load(messagesCollection, &messages); err != nil {
		return err
	}
	messages = append(messages, message)
	return m.store.Save(messagesCollection, messages)
}

func (m *MessageRepository) All() ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var messages []domain.Message
	if err := m.store.Load(messagesCollection, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (m *MessageRepository) ByChat(chatID string) ([]domain.Message, error) {
	messages, err := m.All()
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(item domain.Message, _ int) bool {
		return item.ChatID == chatID
	}), nil
}
