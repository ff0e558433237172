package models

import "time"

// MutationAction is the kind of local write captured in the mutation queue.
type MutationAction string

const (
	ActionCreate MutationAction = "create"
	ActionUpdate MutationAction = "update"
	ActionDelete MutationAction = "delete"
)

// Valid reports whether a is one of the known mutation actions.
func (a MutationAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// QueuedMutation is a not-yet-acknowledged local write awaiting delivery to
// the remote store. Entries are owned exclusively by the mutation queue
// repository; the sync coordinator reads them and mutates only through the
// repository's MarkFailed/Remove operations.
type QueuedMutation struct {
	// QueueID is a time-ordered UUIDv7, so lexical order matches enqueue
	// order and breaks ties between mutations enqueued in the same instant.
	QueueID    string         `json:"queue_id"`
	Table      string         `json:"table"`
	Action     MutationAction `json:"action"`
	Payload    Record         `json:"payload"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
	RetryCount int            `json:"retry_count"`
	LastError  string         `json:"last_error,omitempty"`
}

// RecordID returns the id of the record the mutation targets.
func (m QueuedMutation) RecordID() string {
	return m.Payload.ID()
}
