// Package sync implements the client-side synchronization engine: the
// coordinator that runs pull/push passes against the remote row-store, the
// conflict resolver, the offline manager for first-run and per-table
// refreshes, and the background job that schedules periodic and
// reconnect-triggered passes.
package sync

import (
	"context"
	"time"

	"github.com/fieldline/syncbox/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_mock.go -package=mock

// Coordinator orchestrates sync passes and accepts optimistic local writes.
// A single pass runs at a time: concurrent Sync calls beyond the first
// return [ErrSyncInProgress] without doing any work.
type Coordinator interface {
	// Sync runs one full pass: pull every configured table, then drain the
	// mutation queue. Per-item and per-table failures are collected into
	// the result, never thrown; the returned error is reserved for the
	// single-flight guard and storage-level failures that make a pass
	// impossible.
	Sync(ctx context.Context) (models.SyncResult, error)

	// Mutate applies a local write optimistically: the record store is
	// updated and the mutation queued durably, with no network I/O. It
	// returns the queue id of the enqueued mutation.
	Mutate(ctx context.Context, table string, action models.MutationAction, payload models.Record) (string, error)

	// Status reports current sync health. It is always answerable, online
	// or offline.
	Status(ctx context.Context) (models.SyncStatus, error)

	// State returns the coordinator's current phase.
	State() models.SyncState
}

// Manager covers lifecycle flows outside the regular incremental pass:
// first-run bootstrap and explicit per-table refresh.
type Manager interface {
	// InitialSyncNeeded reports whether the local store has no records at
	// all, i.e. the application is starting for the first time (or after a
	// reset).
	InitialSyncNeeded(ctx context.Context) (bool, error)

	// FullSync downloads every configured table from scratch and sets the
	// cursors. Used for first-run bootstrap.
	FullSync(ctx context.Context) (models.SyncResult, error)

	// RefreshTable discards the local copy of one table and re-downloads
	// it, regardless of cursor state.
	RefreshTable(ctx context.Context, table string) error
}

// EventSink receives fire-and-forget sync lifecycle notifications. Delivery
// is best-effort: the engine never blocks on a sink and never fails a pass
// on a sink error.
type EventSink interface {
	// SyncCompleted is invoked after every finished pass.
	SyncCompleted(ctx context.Context, result models.SyncResult)

	// MutationExhausted is invoked when a queued mutation reaches the
	// retry ceiling.
	MutationExhausted(ctx context.Context, mutation models.QueuedMutation)
}

// ProgressFunc receives push-phase progress updates for UI display.
type ProgressFunc func(progress models.SyncProgress)

// Clock abstracts time for the coordinator so cursor-fallback behavior is
// testable.
type Clock func() time.Time
