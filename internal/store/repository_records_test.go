package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/models"
)

func newTestRecordRepo(t *testing.T) (*recordRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &recordRepository{
		db:     &DB{DB: db, logger: l},
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger: l,
	}
	return repo, mock, db
}

func TestGetAll_DecodesPayloads(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow(`{"id":"o1","status":"paid"}`).
		AddRow(`{"id":"o2","status":"draft"}`)

	mock.ExpectQuery("SELECT payload FROM records WHERE table_name").
		WithArgs("orders").
		WillReturnRows(rows)

	records, err := repo.GetAll(context.Background(), "orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID() != "o1" || records[0]["status"] != "paid" {
		t.Errorf("unexpected first record: %v", records[0])
	}
}

func TestGetAll_EmptyTable(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM records").
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	records, err := repo.GetAll(context.Background(), "orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM records").
		WithArgs("orders", "o1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"id":"o1","total":42}`))

	rec, err := repo.GetByID(context.Background(), "orders", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["total"] != float64(42) {
		t.Errorf("expected decoded total 42, got %v", rec["total"])
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM records").
		WithArgs("orders", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := repo.GetByID(context.Background(), "orders", "ghost")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if !errors.Is(err, ErrStorage) {
		t.Error("expected the error to chain onto ErrStorage")
	}
}

func TestPut_Upserts(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO records").
		WithArgs("orders", "o1", `{"id":"o1","status":"draft"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), "orders", "o1", models.Record{"id": "o1", "status": "draft"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPutAll_SingleTransaction(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	records := []models.Record{
		{"id": "o1", "status": "paid"},
		{"id": "o2", "status": "draft"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").
		WithArgs("orders", "o1", `{"id":"o1","status":"paid"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO records").
		WithArgs("orders", "o2", `{"id":"o2","status":"draft"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.PutAll(context.Background(), "orders", records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPutAll_RollsBackOnFailure(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	records := []models.Record{
		{"id": "o1"},
		{"id": "o2"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").
		WithArgs("orders", "o1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO records").
		WithArgs("orders", "o2", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.PutAll(context.Background(), "orders", records)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected an ErrStorage chain, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPutAll_RejectsRecordWithoutID(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.PutAll(context.Background(), "orders", []models.Record{{"status": "draft"}})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestPutAll_EmptyBatchIsNoOp(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	// no Begin expected: an empty page never opens a transaction
	if err := repo.PutAll(context.Background(), "orders", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM records").
		WithArgs("orders", "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "orders", "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteRecord_AbsentIsNotAnError(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM records").
		WithArgs("orders", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "orders", "ghost"); err != nil {
		t.Fatalf("expected no error for an absent record, got %v", err)
	}
}

func TestClearTable(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM records").
		WithArgs("orders").
		WillReturnResult(sqlmock.NewResult(0, 10))

	if err := repo.ClearTable(context.Background(), "orders"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.Count(context.Background(), "orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5, got %d", count)
	}
}

func TestCountAll(t *testing.T) {
	repo, mock, db := newTestRecordRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
}
