// Package remote provides the transport-layer abstraction for the remote
// row-store the sync layer reconciles against.
//
// The primary abstraction is [RowStore], which decouples the sync
// coordinator from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRowStore]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrValidation] for a rejected payload,
// [ErrNetwork] for transient transport failures).
package remote

import (
	"context"
	"time"

	"github.com/fieldline/syncbox/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/row_store_mock.go -package=mock

// RowStore defines transport-agnostic access to the remote row-store. The
// store is consumed as a generic collection of named tables with
// filter/insert/update/delete operations keyed by table name and row id;
// its query engine is an external collaborator, never reimplemented here.
//
// Each call returns success or a typed error; partial success within a
// single call is never assumed.
type RowStore interface {
	// Select returns rows of the named table with updated_at > since,
	// ordered ascending by updated_at, at most limit rows (limit <= 0
	// means no bound). The zero since time requests all rows.
	Select(ctx context.Context, table string, since time.Time, limit int) ([]models.Record, error)

	// Insert creates a new row in the named table.
	Insert(ctx context.Context, table string, record models.Record) error

	// Update replaces the row whose id matches record's id.
	Update(ctx context.Context, table string, record models.Record) error

	// Delete removes the row with the given id from the named table.
	Delete(ctx context.Context, table, id string) error

	// Ping checks reachability of the remote store. Used by the network
	// monitor's connectivity probe; never used for correctness decisions.
	Ping(ctx context.Context) error
}
