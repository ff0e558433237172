package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/utils"
	"github.com/fieldline/syncbox/models"
)

type mutationQueueRepository struct {
	db     *DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	// now is swappable in tests to control enqueue timestamps.
	now func() time.Time
}

// NewMutationQueueRepository constructs the SQLite-backed
// [MutationQueueRepository].
func NewMutationQueueRepository(db *DB, logger *logger.Logger) MutationQueueRepository {
	return &mutationQueueRepository{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
		now:    time.Now,
	}
}

func (q *mutationQueueRepository) Enqueue(ctx context.Context, table string, action models.MutationAction, payload models.Record) (string, error) {
	log := logger.FromContext(ctx)

	if table == "" || !action.Valid() {
		return "", storageFailure(ErrInvalidMutation, nil)
	}
	recordID := payload.ID()
	if recordID == "" {
		return "", storageFailure(ErrInvalidMutation, errors.New("payload has no record id"))
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", storageFailure(ErrInvalidMutation, err)
	}

	queueID := q.ids.Generate()
	enqueuedAt := q.now().UTC()

	_, err = q.db.ExecContext(ctx, enqueueMutation,
		queueID,
		table,
		recordID,
		string(action),
		string(raw),
		enqueuedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.Enqueue").
			Str("table", table).
			Str("record_id", recordID).
			Msg("failed to enqueue mutation")
		return "", storageFailure(ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "mutationQueueRepository.Enqueue").
		Str("queue_id", queueID).
		Str("table", table).
		Str("action", string(action)).
		Str("record_id", recordID).
		Msg("mutation enqueued")

	return queueID, nil
}

func (q *mutationQueueRepository) Get(ctx context.Context, queueID string) (models.QueuedMutation, error) {
	row := q.db.QueryRowContext(ctx, getMutation, queueID)

	m, err := scanMutation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QueuedMutation{}, storageFailure(ErrMutationNotFound, nil)
	}
	if err != nil {
		return models.QueuedMutation{}, err
	}

	return m, nil
}

func (q *mutationQueueRepository) ListPending(ctx context.Context) ([]models.QueuedMutation, error) {
	log := logger.FromContext(ctx)

	rows, err := q.db.QueryContext(ctx, listPendingMutations)
	if err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.ListPending").
			Msg("failed to query pending mutations")
		return nil, storageFailure(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var pending []models.QueuedMutation
	for rows.Next() {
		m, err := scanMutation(rows.Scan)
		if err != nil {
			return nil, err
		}
		pending = append(pending, m)
	}
	if err = rows.Err(); err != nil {
		return nil, storageFailure(ErrScanningRows, err)
	}

	return pending, nil
}

func (q *mutationQueueRepository) MarkFailed(ctx context.Context, queueID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}

	res, err := q.db.ExecContext(ctx, markMutationFailed, msg, queueID)
	if err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return storageFailure(ErrMutationNotFound, nil)
	}

	return nil
}

func (q *mutationQueueRepository) Remove(ctx context.Context, queueID string) error {
	res, err := q.db.ExecContext(ctx, removeMutation, queueID)
	if err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return storageFailure(ErrMutationNotFound, nil)
	}

	return nil
}

// RemoveForRecord drops all queued mutations for one record. Removing zero
// rows is not an error: the record may simply have nothing pending.
func (q *mutationQueueRepository) RemoveForRecord(ctx context.Context, table, recordID string) (int, error) {
	res, err := q.db.ExecContext(ctx, removeMutationsForRecord, table, recordID)
	if err != nil {
		return 0, storageFailure(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, storageFailure(ErrExecutingStatement, err)
	}

	return int(affected), nil
}

func (q *mutationQueueRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	if err := q.db.QueryRowContext(ctx, countPendingMutations).Scan(&count); err != nil {
		return 0, storageFailure(ErrExecutingQuery, err)
	}
	return count, nil
}

func (q *mutationQueueRepository) CountExhausted(ctx context.Context, maxRetries int) (int, error) {
	var count int
	if err := q.db.QueryRowContext(ctx, countExhaustedMutations, maxRetries).Scan(&count); err != nil {
		return 0, storageFailure(ErrExecutingQuery, err)
	}
	return count, nil
}

// PurgeExhausted deletes exhausted entries. Removal is a deliberate
// data-loss decision, so it is logged at warn level with the removed count.
func (q *mutationQueueRepository) PurgeExhausted(ctx context.Context, maxRetries int) (int, error) {
	log := logger.FromContext(ctx)

	res, err := q.db.ExecContext(ctx, purgeExhaustedMutations, maxRetries)
	if err != nil {
		return 0, storageFailure(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, storageFailure(ErrExecutingStatement, err)
	}

	if affected > 0 {
		log.Warn().
			Str("func", "mutationQueueRepository.PurgeExhausted").
			Int("max_retries", maxRetries).
			Int64("removed", affected).
			Msg("exhausted mutations purged by operator action; local edits discarded")
	}

	return int(affected), nil
}

func (q *mutationQueueRepository) PendingIDs(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := q.db.QueryContext(ctx, pendingRecordIDs, table)
	if err != nil {
		return nil, storageFailure(ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, storageFailure(ErrScanningRows, err)
		}
		ids[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, storageFailure(ErrScanningRows, err)
	}

	return ids, nil
}

// scanMutation maps one mutation_queue row into a model via the supplied
// scan function, shared between single-row and multi-row reads.
func scanMutation(scan func(dest ...any) error) (models.QueuedMutation, error) {
	var (
		m       models.QueuedMutation
		rid     string
		action  string
		payload string
	)

	err := scan(
		&m.QueueID,
		&m.Table,
		&rid,
		&action,
		&payload,
		&m.EnqueuedAt,
		&m.RetryCount,
		&m.LastError,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QueuedMutation{}, err
	}
	if err != nil {
		return models.QueuedMutation{}, storageFailure(ErrScanningRow, err)
	}

	m.Action = models.MutationAction(action)
	if err = json.Unmarshal([]byte(payload), &m.Payload); err != nil {
		return models.QueuedMutation{}, storageFailure(ErrInvalidMutation, err)
	}

	return m, nil
}
