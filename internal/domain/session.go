package domain

import "time"

// SessionInfo describes one persisted session for listings
type SessionInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Tooltip   string    `json:"tooltip,omitempty"`
}

// SessionStore defines the interface for session persistence
type SessionStore interface {
	// Load returns the named session's conversational turns. A missing or
	// unparseable file yields an empty slice, never an error.
	Load(name string) []Turn

	// Save overwrites the named session with the given turns. A non-empty
	// tooltip is written as a metadata record at position 0.
	Save(name string, turns []Turn, tooltip string) error

	// List returns all readable sessions, newest first. Files that fail to
	// parse are omitted.
	List() []SessionInfo

	// Delete removes the named session; deleting a nonexistent session is
	// a no-op.
	Delete(name string) error

	// Rename moves a session to a new name. The old file must not remain
	// once the rename succeeds.
	Rename(oldName, newName string) error

	// All returns the conversational turns of every session on disk,
	// iterated in stable filename order.
	All() []Turn
}
