package storage

import (
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, dir string) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	return db
}

func TestStore_Save_And_Load_Snapshot(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t, t.TempDir())
	defer db.Close()
	store := New(db, slog.Default())

	// Given a chats collection snapshot
	chats := []domain.Chat{
		{ID: "room1", LastMessage: "hi", LastTime: time.Now().UTC().Truncate(time.Second)},
		{ID: "room2"},
	}
	req.NoError(store.Save("chats", chats))

	// When it is loaded back
	var loaded []domain.Chat
	req.NoError(store.Load("chats", &loaded))

	// Then the snapshot round-trips
	req.Len(loaded, 2)
	req.Equal("room1", loaded[0].ID)
	req.Equal("hi", loaded[0].LastMessage)
}

func TestStore_Load_Missing_Collection_Is_Empty(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t, t.TempDir())
	defer db.Close()
	store := New(db, slog.Default())

	var messages []domain.Message
	req.NoError(store.Load("messages", &messages))
	req.Empty(messages)
}

func TestStore_Snapshot_Survives_Reopen(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	db := openTestDB(t, dir)
	store := New(db, slog.Default())
	req.NoError(store.Save("users", []domain.User{{ID: "u-1", Username: "alice"}}))
	req.NoError(db.Close())

	db = openTestDB(t, dir)
	defer db.Close()
	store = New(db, slog.Default())

	var users []domain.User
	req.NoError(store.Load("users", &users))
	req.Len(users, 1)
	req.Equal("alice", users[0].Username)
}
