package remote

import "errors"

// Sentinel errors mapped from transport-level failures. Callers match them
// with [errors.Is] to pick retry behaviour:
//
//   - ErrNetwork is transient: the mutation is retried on the next sync
//     cycle, bounded by the retry ceiling.
//   - ErrValidation is permanent: retrying the same payload cannot succeed,
//     so the item is surfaced to the operator instead of endlessly retried.
var (
	// ErrNetwork indicates a transport failure or a 5xx response: the
	// remote store was unreachable or unable to process the request.
	ErrNetwork = errors.New("remote store unreachable")

	// ErrValidation indicates the remote store rejected the payload
	// (400/422). Retrying without modification will not help.
	ErrValidation = errors.New("payload rejected by remote store")

	// ErrUnauthorized indicates the bearer token was missing or rejected.
	ErrUnauthorized = errors.New("remote request unauthorized")

	// ErrNotFound indicates the addressed table or row does not exist on
	// the remote store.
	ErrNotFound = errors.New("remote row not found")

	// ErrVersionConflict indicates the remote store detected a concurrent
	// modification (409).
	ErrVersionConflict = errors.New("remote version conflict")
)
