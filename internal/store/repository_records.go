package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/models"
)

type recordRepository struct {
	db     *DB
	sb     sq.StatementBuilderType
	logger *logger.Logger
}

// NewRecordRepository constructs the SQLite-backed [RecordRepository].
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger: logger,
	}
}

func (r *recordRepository) GetAll(ctx context.Context, table string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.
		Select("payload").
		From("records").
		Where(sq.Eq{"table_name": table}).
		OrderBy("record_id ASC").
		ToSql()
	if err != nil {
		return nil, storageFailure(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetAll").
			Str("table", table).
			Msg("failed to query records")
		return nil, storageFailure(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, storageFailure(ErrScanningRows, err)
		}

		rec, err := decodeRecord(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, storageFailure(ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) GetByID(ctx context.Context, table, id string) (models.Record, error) {
	query, args, err := r.sb.
		Select("payload").
		From("records").
		Where(sq.Eq{"table_name": table, "record_id": id}).
		ToSql()
	if err != nil {
		return nil, storageFailure(ErrBuildingSQLQuery, err)
	}

	var payload string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storageFailure(ErrRecordNotFound, nil)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.GetByID").
			Str("table", table).
			Str("id", id).
			Msg("failed to query record")
		return nil, storageFailure(ErrExecutingQuery, err)
	}

	return decodeRecord(payload)
}

func (r *recordRepository) Put(ctx context.Context, table, id string, record models.Record) error {
	payload, err := encodeRecord(record)
	if err != nil {
		return err
	}

	query, args, err := r.upsertQuery(table, id, payload)
	if err != nil {
		return storageFailure(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.Put").
			Str("table", table).
			Str("id", id).
			Msg("failed to upsert record")
		return storageFailure(ErrExecutingStatement, err)
	}

	return nil
}

// PutAll applies the whole batch inside one transaction so a partially
// written pull page is never visible to readers.
func (r *recordRepository) PutAll(ctx context.Context, table string, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageFailure(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		id := rec.ID()
		if id == "" {
			return storageFailure(ErrInvalidRecord, errors.New("record without id in batch"))
		}

		payload, err := encodeRecord(rec)
		if err != nil {
			return err
		}

		query, args, err := r.upsertQuery(table, id, payload)
		if err != nil {
			return storageFailure(ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "recordRepository.PutAll").
				Str("table", table).
				Str("id", id).
				Msg("failed to upsert record in batch")
			return storageFailure(ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return storageFailure(ErrCommittingTransaction, err)
	}

	return nil
}

func (r *recordRepository) Delete(ctx context.Context, table, id string) error {
	query, args, err := r.sb.
		Delete("records").
		Where(sq.Eq{"table_name": table, "record_id": id}).
		ToSql()
	if err != nil {
		return storageFailure(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository) ClearTable(ctx context.Context, table string) error {
	query, args, err := r.sb.
		Delete("records").
		Where(sq.Eq{"table_name": table}).
		ToSql()
	if err != nil {
		return storageFailure(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return storageFailure(ErrExecutingStatement, err)
	}

	return nil
}

func (r *recordRepository) Count(ctx context.Context, table string) (int, error) {
	query, args, err := r.sb.
		Select("COUNT(*)").
		From("records").
		Where(sq.Eq{"table_name": table}).
		ToSql()
	if err != nil {
		return 0, storageFailure(ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, storageFailure(ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *recordRepository) CountAll(ctx context.Context) (int, error) {
	query, _, err := r.sb.
		Select("COUNT(*)").
		From("records").
		ToSql()
	if err != nil {
		return 0, storageFailure(ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, storageFailure(ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *recordRepository) upsertQuery(table, id, payload string) (string, []any, error) {
	return r.sb.
		Insert("records").
		Columns("table_name", "record_id", "payload", "updated_at").
		Values(table, id, payload, time.Now().UTC()).
		Suffix("ON CONFLICT (table_name, record_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
}

func encodeRecord(record models.Record) (string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return "", storageFailure(ErrInvalidRecord, err)
	}
	return string(raw), nil
}

func decodeRecord(payload string) (models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, storageFailure(ErrInvalidRecord, err)
	}
	return rec, nil
}
