package domain

// Identity is the decoded content of a verified credential.
type Identity struct {
	ID       string
	Username string
}

// Session is the ephemeral server-side state of one live connection.
// Room memberships live in the broadcaster, keyed by ConnectionID.
// Sessions are never persisted.
type Session struct {
	ConnectionID string
	Identity     Identity
}
