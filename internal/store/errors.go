package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrStorage is the root of the local persistence failure class. Every
	// storage-layer failure (I/O error, corruption, constraint violation)
	// wraps it, so callers can treat the whole class as fatal to the
	// current operation without matching individual causes.
	ErrStorage = errors.New("local storage failure")

	// ErrRecordNotFound is returned when a lookup targets a record
	// (identified by table and id) that does not exist in the local store.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrMutationNotFound is returned when a queue operation targets a
	// queue id that is no longer present (already removed or never
	// enqueued).
	ErrMutationNotFound = errors.New("queued mutation was not found")

	// ErrInvalidMutation is returned by Enqueue when the mutation is
	// malformed: unknown action, empty table name, or a payload without a
	// record id.
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrInvalidRecord is returned when a record cannot be stored because
	// it has no usable id or cannot be serialized.
	ErrInvalidRecord = errors.New("invalid record")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied. All of them wrap [ErrStorage].
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// storageFailure chains a low-level sentinel and its cause onto
// [ErrStorage], so callers can match either the class or the specific
// condition with [errors.Is].
func storageFailure(sentinel, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %w", ErrStorage, sentinel)
	}
	return fmt.Errorf("%w: %w: %w", ErrStorage, sentinel, cause)
}
