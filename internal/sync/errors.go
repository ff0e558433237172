package sync

import "errors"

var (
	// ErrSyncInProgress is returned by Sync when a pass is already running.
	// The running pass is never cancelled; the caller simply gets told no.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrOffline is returned when an operation requires connectivity and
	// the network monitor reports the remote store unreachable.
	ErrOffline = errors.New("remote store is offline")

	// ErrUnknownTable is returned by Mutate for a table outside the
	// configured sync set.
	ErrUnknownTable = errors.New("table is not in the configured sync set")

	// ErrInvalidAction is returned by Mutate for an unknown mutation action.
	ErrInvalidAction = errors.New("invalid mutation action")

	// ErrMissingRecordID is returned by Mutate when the payload carries no
	// usable id.
	ErrMissingRecordID = errors.New("record payload has no id")
)
