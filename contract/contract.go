//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-relay/domain/event"
)

// Worker doesn't protect itself; supervision handles panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding manual naming in the
// Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the delivery end of one live connection.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// Broadcaster maintains room membership per connection and fans events
// out to current members. Delivery is best-effort and fire-and-forget.
type Broadcaster interface {
	Join(connectionID, chatID string)
	Leave(connectionID, chatID string)
	LeaveAll(connectionID string)
	Broadcast(ctx context.Context, chatID string, e event.Event, excludeConnectionID string)
}

// Store persists named collections as whole snapshots. Loading a
// collection that was never saved leaves out untouched (empty collection).
type Store interface {
	Load(name string, out any) error
	Save(name string, v any) error
}
