// Package ws is the websocket transport: it gates connections on a
// bearer credential, dispatches the inbound event protocol, and turns
// each connection into a broadcaster sink.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chat-relay/auth"
	errs "chat-relay/errors"
	"chat-relay/runtime"
	"chat-relay/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const maxFrameSize = 1 << 20

type Server struct {
	upgrader    websocket.Upgrader
	gate        *auth.Gate
	registry    *runtime.Registry
	rooms       *runtime.Broadcaster
	chatService services.IChatService
	validate    *validator.Validate
	log         *slog.Logger

	connectionBufferSize int
	pingEvery            time.Duration
}

func NewServer(log *slog.Logger, gate *auth.Gate, registry *runtime.Registry,
	rooms *runtime.Broadcaster, chatService services.IChatService,
	connectionBufferSize int, pingEvery time.Duration) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		gate:                 gate,
		registry:             registry,
		rooms:                rooms,
		chatService:          chatService,
		validate:             validator.New(),
		log:                  log,
		connectionBufferSize: connectionBufferSize,
		pingEvery:            pingEvery,
	}
}

// HandleWS is the connection entry point. The credential is checked
// before the upgrade: a refused connection never touches the registry
// or the broadcaster.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	credential := r.Header.Get("Authorization")
	if credential == "" {
		// Browser websocket clients cannot set headers
		credential = strings.TrimSpace(r.URL.Query().Get("access_token"))
	}

	identity, err := s.gate.Authenticate(credential)
	if err != nil {
		if errors.Is(err, errs.ErrMissingCredential) {
			http.Error(w, "missing credential", http.StatusUnauthorized)
		} else {
			http.Error(w, "invalid credential", http.StatusUnauthorized)
		}
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "err", err)
		return
	}

	connectionID := uuid.NewString()
	c := newWsConn(connectionID, conn, s.connectionBufferSize, s.log)
	s.registry.Register(connectionID, identity)
	s.rooms.Attach(connectionID, c)

	go c.writePump(r.Context(), s.pingEvery)
	s.readLoop(r.Context(), c)

	// Disconnect: tear down the session and every room membership.
	// In-flight persistence is never canceled, only delivery stops.
	s.registry.Unregister(connectionID)
	c.close()
}

// readLoop processes inbound events for one connection, one at a time,
// in arrival order. Handlers for other connections run concurrently.
func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			s.log.Debug("Dropping malformed frame", "connection_id", c.id)
			continue
		}
		s.dispatch(ctx, c.id, envelope)
	}
}

func (s *Server) dispatch(ctx context.Context, connectionID string, envelope Envelope) {
	session, err := s.registry.Lookup(connectionID)
	if err != nil {
		s.log.Warn("Event from unknown session", "connection_id", connectionID)
		return
	}

	switch envelope.Event {
	case EventJoinChat:
		// Payload is the bare room id
		var chatID string
		if err := json.Unmarshal(envelope.Payload, &chatID); err != nil || chatID == "" {
			s.log.Debug("Dropping joinChat with bad payload", "connection_id", connectionID)
			return
		}
		s.chatService.JoinChat(session, chatID)

	case EventSendMessage:
		var payload SendMessagePayload
		if !s.decode(envelope.Payload, &payload, connectionID, envelope.Event) {
			return
		}
		// Fire-and-forget: the error is already logged by the pipeline
		// and there is no negative acknowledgment channel to the client.
		_ = s.chatService.HandleIncomingMessage(ctx, session, payload.ChatID, payload.Content)

	case EventTyping:
		var payload TypingPayload
		if !s.decode(envelope.Payload, &payload, connectionID, envelope.Event) {
			return
		}
		s.chatService.HandleTyping(ctx, session, payload.ChatID, payload.IsTyping)

	default:
		s.log.Debug("Ignoring unknown event",
			"connection_id", connectionID, "event", envelope.Event)
	}
}

func (s *Server) decode(raw json.RawMessage, dst any, connectionID, name string) bool {
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Debug("Dropping event with bad payload",
			"connection_id", connectionID, "event", name, "err", err)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.log.Debug("Dropping event with invalid payload",
			"connection_id", connectionID, "event", name, "err", err)
		return false
	}
	return true
}
