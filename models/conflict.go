package models

// ConflictItem is one field-level disagreement between the local and server
// copies of the same record. Items are produced transiently during a
// resolution pass and are never persisted.
type ConflictItem struct {
	ID            string `json:"id"`
	Table         string `json:"table"`
	Field         string `json:"field"`
	LocalValue    any    `json:"local_value"`
	ServerValue   any    `json:"server_value"`
	LocalVersion  Record `json:"local_version"`
	ServerVersion Record `json:"server_version"`
}

// ResolutionChoice names the winning side of a conflict resolution.
type ResolutionChoice string

const (
	ResolutionLocal  ResolutionChoice = "local"
	ResolutionServer ResolutionChoice = "server"
	ResolutionMerged ResolutionChoice = "merged"
)

// ConflictResolution is the decision for one record (not one field).
// Applying it overwrites the local copy and, when the winner differs from
// the server's current value, re-enqueues a mutation so the decision also
// propagates to the remote store.
type ConflictResolution struct {
	ID         string           `json:"id"`
	Resolution ResolutionChoice `json:"resolution"`
	// MergedData carries the record to apply when Resolution is "merged".
	// When nil, the computed merge of the two versions is used.
	MergedData Record `json:"merged_data,omitempty"`
}

// ConflictSummary is a pure aggregation of a conflict list for display:
// "N of M conflicts can be resolved automatically".
type ConflictSummary struct {
	Total          int            `json:"total"`
	ByTable        map[string]int `json:"by_table"`
	ByField        map[string]int `json:"by_field"`
	AutoResolvable int            `json:"auto_resolvable"`
}
