package models

import "time"

// SyncCursor records the last successful pull watermark for one table.
// Incremental pulls request only rows with updated_at > Timestamp. The
// cursor is advanced only by the sync coordinator after a verified
// successful pull, and never moves backwards.
type SyncCursor struct {
	Table     string    `json:"table"`
	Timestamp time.Time `json:"timestamp"`
}
