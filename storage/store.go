// Package storage implements the document store contract on BadgerDB.
// Each named collection is persisted under a single key as one JSON
// snapshot, matching the whole-collection load/save semantics of the
// original document store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	errs "chat-relay/errors"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "collection:"

type Store struct {
	db  *badger.DB
	log *slog.Logger
}

func New(db *badger.DB, log *slog.Logger) *Store {
	return &Store{db: db, log: log}
}

// Load reads the snapshot of a named collection into out.
// A collection that was never saved is an empty collection, not an error.
func (s *Store) Load(name string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			s.log.Debug("Collection not found, treating as empty", "collection", name)
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, out)
		})
	})
	if err != nil {
		return &errs.PersistenceError{Collection: name, Err: err}
	}
	return nil
}

// Save replaces the snapshot of a named collection.
func (s *Store) Save(name string, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return &errs.PersistenceError{Collection: name, Err: err}
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(name), bytes)
	})
	if err != nil {
		return &errs.PersistenceError{Collection: name, Err: err}
	}
	return nil
}

func key(name string) []byte {
	return []byte(fmt.Sprintf("%s%s", keyPrefix, name))
}
