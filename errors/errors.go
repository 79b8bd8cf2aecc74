package errors

import "fmt"

var (
	ErrMissingCredential = fmt.Errorf("missing credential")
	ErrInvalidCredential = fmt.Errorf("invalid credential")
	ErrSessionNotFound   = fmt.Errorf("session not found")
	ErrChatNotFound      = fmt.Errorf("chat not found")
)

// PersistenceError reports a failed read or write of a named collection.
// Message handling logs it and keeps the connection alive.
type PersistenceError struct {
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed for collection %q: %v", e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
