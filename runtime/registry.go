package runtime

import (
	"log/slog"
	"sync"

	"chat-relay/domain"
	errs "chat-relay/errors"
)

// Registry holds one session per accepted connection. Sessions exist
// only between a successful handshake and the disconnect.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	rooms    *Broadcaster
	log      *slog.Logger
}

func NewRegistry(log *slog.Logger, rooms *Broadcaster) *Registry {
	return &Registry{
		sessions: make(map[string]domain.Session),
		rooms:    rooms,
		log:      log,
	}
}

// Register creates the session for a freshly authenticated connection.
// Connection ids are generated server-side, so no two live sessions
// share one.
func (r *Registry) Register(connectionID string, identity domain.Identity) domain.Session {
	session := domain.Session{ConnectionID: connectionID, Identity: identity}

	r.mu.Lock()
	r.sessions[connectionID] = session
	r.mu.Unlock()

	r.log.Info("Session registered",
		"connection_id", connectionID,
		"user_id", identity.ID,
		"username", identity.Username)
	return session
}

func (r *Registry) Lookup(connectionID string) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[connectionID]
	if !ok {
		return domain.Session{}, errs.ErrSessionNotFound
	}
	return session, nil
}

// Unregister removes the session and, through the broadcaster, every
// room membership it had. Idempotent.
func (r *Registry) Unregister(connectionID string) {
	r.mu.Lock()
	_, existed := r.sessions[connectionID]
	delete(r.sessions, connectionID)
	r.mu.Unlock()

	r.rooms.Detach(connectionID)

	if existed {
		r.log.Info("Session unregistered", "connection_id", connectionID)
	}
}
