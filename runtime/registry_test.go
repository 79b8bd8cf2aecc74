package runtime

import (
	"context"
	"log/slog"
	"testing"

	"chat-relay/domain"
	errs "chat-relay/errors"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	broadcaster := NewBroadcaster(slog.Default())
	registry := NewRegistry(slog.Default(), broadcaster)

	// Given no session exists for the connection
	_, err := registry.Lookup("conn-1")
	req.ErrorIs(err, errs.ErrSessionNotFound)

	// When the connection registers
	identity := domain.Identity{ID: "u-1", Username: "alice"}
	registry.Register("conn-1", identity)

	// Then lookup yields its identity
	session, err := registry.Lookup("conn-1")
	req.NoError(err)
	req.Equal("conn-1", session.ConnectionID)
	req.Equal(identity, session.Identity)
}

func TestRegistry_Unregister_Detaches_Rooms(t *testing.T) {
	req := require.New(t)
	broadcaster := NewBroadcaster(slog.Default())
	registry := NewRegistry(slog.Default(), broadcaster)

	// Given a registered session joined to a room
	sink := &captureSink{}
	registry.Register("conn-1", domain.Identity{ID: "u-1", Username: "alice"})
	broadcaster.Attach("conn-1", sink)
	broadcaster.Join("conn-1", "room1")

	// When it unregisters (twice: unregister is idempotent)
	registry.Unregister("conn-1")
	registry.Unregister("conn-1")

	// Then the session is gone and broadcasts no longer reach it
	_, err := registry.Lookup("conn-1")
	req.ErrorIs(err, errs.ErrSessionNotFound)

	broadcaster.Broadcast(context.Background(), "room1", newMessageEvent("room1", "hi"), "")
	req.Empty(sink.events)
}
