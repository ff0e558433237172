package store

import (
	"context"
	"fmt"

	"github.com/fieldline/syncbox/internal/config"
	"github.com/fieldline/syncbox/internal/logger"
)

// Storages groups all client-side storage repositories into a single value
// that can be passed around the sync layer.
type Storages struct {
	// Records is the per-table record store.
	Records RecordRepository
	// Queue is the durable mutation queue.
	Queue MutationQueueRepository
	// Cursors holds the per-table pull watermarks.
	Cursors CursorRepository

	db *DB
}

// NewStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.ClientStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Records: NewRecordRepository(db, logger),
		Queue:   NewMutationQueueRepository(db, logger),
		Cursors: NewCursorRepository(db, logger),
		db:      db,
	}, nil
}

// Reset wipes all local state: every record table, the mutation queue, and
// every sync cursor. Used on logout/reset; afterwards the next sync behaves
// like a first sync.
func (s *Storages) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := s.db.ExecContext(ctx, "DELETE FROM records;"); err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}
	if _, err := s.db.ExecContext(ctx, clearMutationQueue); err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}
	if err := s.Cursors.Clear(ctx); err != nil {
		return err
	}

	log.Warn().Str("func", "Storages.Reset").Msg("local store reset: records, queue and cursors cleared")
	return nil
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
