package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/models"
)

type cursorRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCursorRepository constructs the SQLite-backed [CursorRepository].
func NewCursorRepository(db *DB, logger *logger.Logger) CursorRepository {
	return &cursorRepository{
		db:     db,
		logger: logger,
	}
}

func (c *cursorRepository) Get(ctx context.Context, table string) (time.Time, error) {
	var pulledAt time.Time
	err := c.db.QueryRowContext(ctx, getCursor, table).Scan(&pulledAt)
	if errors.Is(err, sql.ErrNoRows) {
		// No pull has completed yet: the zero time requests a full pull.
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, storageFailure(ErrExecutingQuery, err)
	}

	return pulledAt, nil
}

func (c *cursorRepository) Set(ctx context.Context, table string, ts time.Time) error {
	if _, err := c.db.ExecContext(ctx, setCursor, table, ts.UTC()); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cursorRepository.Set").
			Str("table", table).
			Msg("failed to store sync cursor")
		return storageFailure(ErrExecutingStatement, err)
	}

	return nil
}

func (c *cursorRepository) List(ctx context.Context) ([]models.SyncCursor, error) {
	rows, err := c.db.QueryContext(ctx, listCursors)
	if err != nil {
		return nil, storageFailure(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var cursors []models.SyncCursor
	for rows.Next() {
		var cursor models.SyncCursor
		if err := rows.Scan(&cursor.Table, &cursor.Timestamp); err != nil {
			return nil, storageFailure(ErrExecutingQuery, err)
		}
		cursors = append(cursors, cursor)
	}
	if err := rows.Err(); err != nil {
		return nil, storageFailure(ErrExecutingQuery, err)
	}

	return cursors, nil
}

func (c *cursorRepository) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, clearCursors); err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}

	return nil
}
