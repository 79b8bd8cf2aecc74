// Package runtime tracks live connections and fans events out to room
// members. It contains no business rules about messages themselves.
package runtime

import (
	"context"
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain/event"
)

type Set map[string]struct{}

// Broadcaster maintains room membership per connection id and delivers
// events to every member's sink. Delivery is best-effort: a sink that
// refuses an event is skipped, never retried.
type Broadcaster struct {
	mu      sync.RWMutex
	sinks   map[string]contract.EventSink // connectionID -> sink
	members map[string]Set                // chatID -> connection ids
	rooms   map[string]Set                // connectionID -> chat ids (reverse index for LeaveAll)
	log     *slog.Logger
}

func NewBroadcaster(log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		sinks:   make(map[string]contract.EventSink),
		members: make(map[string]Set),
		rooms:   make(map[string]Set),
		log:     log,
	}
}

// Attach binds a connection's sink. One sink per connection; rooms are
// joined separately.
func (b *Broadcaster) Attach(connectionID string, sink contract.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks[connectionID] = sink
}

// Detach drops the sink and every room membership of the connection.
// Idempotent; used on disconnect.
func (b *Broadcaster) Detach(connectionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sinks, connectionID)
	b.leaveAllLocked(connectionID)
}

// Join is idempotent: joining an already-joined room is a no-op, and a
// member receives each broadcast exactly once regardless of how many
// times it joined.
func (b *Broadcaster) Join(connectionID, chatID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.members[chatID]; !ok {
		b.members[chatID] = make(Set)
	}
	b.members[chatID][connectionID] = struct{}{}

	if _, ok := b.rooms[connectionID]; !ok {
		b.rooms[connectionID] = make(Set)
	}
	b.rooms[connectionID][chatID] = struct{}{}
}

func (b *Broadcaster) Leave(connectionID, chatID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.leaveLocked(connectionID, chatID)
}

func (b *Broadcaster) LeaveAll(connectionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.leaveAllLocked(connectionID)
}

func (b *Broadcaster) leaveAllLocked(connectionID string) {
	for chatID := range b.rooms[connectionID] {
		b.leaveLocked(connectionID, chatID)
	}
}

func (b *Broadcaster) leaveLocked(connectionID, chatID string) {
	if members, ok := b.members[chatID]; ok {
		delete(members, connectionID)
		// No empty sets left behind, rooms come and go with their members
		if len(members) == 0 {
			delete(b.members, chatID)
		}
	}
	if rooms, ok := b.rooms[connectionID]; ok {
		delete(rooms, chatID)
		if len(rooms) == 0 {
			delete(b.rooms, connectionID)
		}
	}
}

// Broadcast delivers e to every current member of chatID except the
// optionally excluded sender connection. An empty room is a no-op.
// Within one room, delivery order follows Broadcast call order: each
// call snapshots members and pushes synchronously to their sinks.
func (b *Broadcaster) Broadcast(ctx context.Context, chatID string, e event.Event, excludeConnectionID string) {
	for _, sink := range b.sinksForRoom(chatID, excludeConnectionID) {
		if err := sink.Consume(ctx, e); err != nil {
			b.log.Debug("Sink refused event", "chat_id", chatID, "event", e.Name(), "err", err)
		}
	}
}

// sinksForRoom resolves the room's member connection ids into live
// sinks. Two-step lookup: a connection joined to several rooms still
// has a single sink managed in one place.
func (b *Broadcaster) sinksForRoom(chatID, exclude string) []contract.EventSink {
	b.mu.RLock()
	defer b.mu.RUnlock()

	members, ok := b.members[chatID]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for connectionID := range members {
		if connectionID == exclude {
			continue
		}
		if sink, exists := b.sinks[connectionID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}
