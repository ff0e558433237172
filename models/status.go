package models

import "time"

// SyncState is the coordinator's current phase. It is owned by the sync
// coordinator and exposed read-only everywhere else.
type SyncState string

const (
	StateIdle    SyncState = "idle"
	StatePulling SyncState = "pulling"
	StatePushing SyncState = "pushing"
)

// SyncStatus is the queryable sync health surface exposed to the UI and
// other collaborators. It must remain queryable regardless of sync health:
// offline-first means the application stays usable while items fail.
type SyncStatus struct {
	PendingCount   int       `json:"pending_count"`
	ExhaustedCount int       `json:"exhausted_count"`
	State          SyncState `json:"state"`
	IsSyncing      bool      `json:"is_syncing"`
	LastSyncTime   time.Time `json:"last_sync_time"`
	LastError      string    `json:"last_error,omitempty"`
}

// SyncProgress reports push-phase progress for UI display.
type SyncProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// SyncResult is the aggregate outcome of one sync pass. Failures are
// collected as a list, never a single thrown error, so callers can show
// partial-success detail.
type SyncResult struct {
	Pushed          int            `json:"pushed"`
	PushFailed      int            `json:"push_failed"`
	Pulled          int            `json:"pulled"`
	TablesPulled    int            `json:"tables_pulled"`
	Errors          []string       `json:"errors,omitempty"`
	Conflicts       []ConflictItem `json:"conflicts,omitempty"`
	AutoResolved    int            `json:"auto_resolved"`
	ManualConflicts int            `json:"manual_conflicts"`
	Exhausted       int            `json:"exhausted"`
}

// Success reports whether the pass completed without any recorded error.
func (r SyncResult) Success() bool {
	return len(r.Errors) == 0
}
