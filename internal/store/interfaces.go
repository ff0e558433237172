// Package store implements the client-side persistent storage layer: the
// per-table record store, the durable mutation queue, and the per-table sync
// cursors. The package is pure storage: it has no network awareness and
// never initiates remote calls.
//
// All operations are durable before they return; there is no in-memory-only
// state that could be lost on process termination. Storage-layer failures
// wrap [ErrStorage] and are never swallowed: callers decide whether to retry
// or surface them.
package store

import (
	"context"
	"time"

	"github.com/fieldline/syncbox/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository is the per-table key-value record store. Table names are
// logical names ("orders", "inventory"); every table shares one physical
// records relation keyed by (table, id).
type RecordRepository interface {
	// GetAll returns every record of the named table.
	GetAll(ctx context.Context, table string) ([]models.Record, error)

	// GetByID returns the record with the given id, or a wrapped
	// [ErrRecordNotFound].
	GetByID(ctx context.Context, table, id string) (models.Record, error)

	// Put upserts a full record. There is no partial-field merge; callers
	// must supply the complete record.
	Put(ctx context.Context, table, id string, record models.Record) error

	// PutAll upserts a batch of records inside one transaction: either the
	// whole page becomes visible or none of it does, so readers never see
	// a half-applied pull.
	PutAll(ctx context.Context, table string, records []models.Record) error

	// Delete removes the record with the given id. Deleting an absent
	// record is not an error.
	Delete(ctx context.Context, table, id string) error

	// ClearTable removes every record of the named table.
	ClearTable(ctx context.Context, table string) error

	// Count returns the number of records in the named table.
	Count(ctx context.Context, table string) (int, error)

	// CountAll returns the total number of records across all tables.
	CountAll(ctx context.Context) (int, error)
}

// MutationQueueRepository is the ordered, durable queue of
// not-yet-acknowledged local writes. The queue is global (not per-table) and
// FIFO by enqueue time, preserving the user's causal order of edits.
type MutationQueueRepository interface {
	// Enqueue appends a mutation and returns its queue id. Enqueue never
	// performs network I/O; queueing is independent of delivery.
	Enqueue(ctx context.Context, table string, action models.MutationAction, payload models.Record) (string, error)

	// Get returns a single queued mutation by queue id, or a wrapped
	// [ErrMutationNotFound].
	Get(ctx context.Context, queueID string) (models.QueuedMutation, error)

	// ListPending returns all queued mutations ordered by enqueue time
	// ascending (queue id breaks ties).
	ListPending(ctx context.Context) ([]models.QueuedMutation, error)

	// MarkFailed increments the mutation's retry count and records the
	// delivery error. The entry stays in the queue.
	MarkFailed(ctx context.Context, queueID string, cause error) error

	// Remove deletes a mutation after confirmed successful delivery.
	Remove(ctx context.Context, queueID string) error

	// RemoveForRecord deletes every queued mutation targeting the given
	// record and returns how many were removed. Used when a conflict
	// resolves to the server side: the queued local writes are superseded
	// and must not be delivered.
	RemoveForRecord(ctx context.Context, table, recordID string) (int, error)

	// CountPending returns the number of queued mutations.
	CountPending(ctx context.Context) (int, error)

	// CountExhausted returns the number of queued mutations whose retry
	// count has reached maxRetries.
	CountExhausted(ctx context.Context, maxRetries int) (int, error)

	// PurgeExhausted removes mutations whose retry count has reached
	// maxRetries and returns how many were removed. This is a deliberate
	// data-loss decision reserved for explicit operator action; it is
	// never called automatically.
	PurgeExhausted(ctx context.Context, maxRetries int) (int, error)

	// PendingIDs returns the set of record ids that have at least one
	// queued mutation for the named table. The pull phase uses it to
	// detect rows that must go through conflict resolution instead of
	// being overwritten.
	PendingIDs(ctx context.Context, table string) (map[string]struct{}, error)
}

// CursorRepository stores the per-table "last synchronized at" watermark.
// Cursors are mutated only by the sync coordinator after a verified
// successful pull.
type CursorRepository interface {
	// Get returns the cursor for the named table, or the zero time when no
	// pull has completed yet.
	Get(ctx context.Context, table string) (time.Time, error)

	// Set stores the cursor for the named table.
	Set(ctx context.Context, table string, ts time.Time) error

	// List returns every stored cursor ordered by table name.
	List(ctx context.Context) ([]models.SyncCursor, error)

	// Clear removes all cursors, forcing the next sync to perform full
	// pulls.
	Clear(ctx context.Context) error
}
