package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	errs "chat-relay/errors"
	"chat-relay/repositories"
)

type IChatService interface {
	JoinChat(session domain.Session, chatID string)
	HandleIncomingMessage(ctx context.Context, session domain.Session, chatID, content string) error
	HandleTyping(ctx context.Context, session domain.Session, chatID string, isTyping bool)
}

// ChatService is the message pipeline: persist, summarize, broadcast.
// Errors stay on the server side; the sender learns about a message
// only through the broadcast echo.
type ChatService struct {
	log      *slog.Logger
	messages repositories.IMessageRepository
	chats    repositories.IChatRepository
	rooms    contract.Broadcaster
	now      func() time.Time
}

func NewChatService(log *slog.Logger, messages repositories.IMessageRepository,
	chats repositories.IChatRepository, rooms contract.Broadcaster) *ChatService {
	return &ChatService{
		log:      log,
		messages: messages,
		chats:    chats,
		rooms:    rooms,
		now:      time.Now,
	}
}

func (s *ChatService) JoinChat(session domain.Session, chatID string) {
	s.rooms.Join(session.ConnectionID, chatID)
}

// HandleIncomingMessage runs the pipeline for one inbound message.
// Sender identity comes from the authenticated session, never from the
// payload. Persistence precedes broadcast: a message that failed to
// reach the log is never delivered.
func (s *ChatService) HandleIncomingMessage(ctx context.Context, session domain.Session, chatID, content string) error {
	message := domain.NewMessage(chatID, session.Identity, content, s.now().UTC())

	if err := s.messages.Append(message); err != nil {
		s.log.Error("Failed to persist message, dropping it",
			"chat_id", chatID,
			"message_id", message.ID,
			"err", err)
		return err
	}

	if err := s.chats.UpdateSummary(chatID, domain.Preview(content), message.At); err != nil {
		if errors.Is(err, errs.ErrChatNotFound) {
			// Summary is best-effort: the message is already in the log,
			// a chat record may simply not exist for this room.
			s.log.Debug("No chat record for summary update", "chat_id", chatID)
		} else {
			s.log.Error("Failed to update chat summary",
				"chat_id", chatID,
				"message_id", message.ID,
				"err", err)
		}
	}

	// Everyone in the room gets the message, the sender included: the
	// echo is the only delivery confirmation this protocol has.
	s.rooms.Broadcast(ctx, chatID, event.NewMessage{Message: message}, "")
	return nil
}

// HandleTyping relays an ephemeral typing state to the room, excluding
// the sender's own connection. Nothing is persisted or retained.
func (s *ChatService) HandleTyping(ctx context.Context, session domain.Session, chatID string, isTyping bool) {
	s.rooms.Broadcast(ctx, chatID, event.UserTyping{
		Chat:     chatID,
		Username: session.Identity.Username,
		IsTyping: isTyping,
	}, session.ConnectionID)
}
