package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fieldline/syncbox/internal/logger"
)

func newTestCursorRepo(t *testing.T) (*cursorRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &cursorRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCursorGet_Existing(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	pulledAt := time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT pulled_at FROM sync_cursors").
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"pulled_at"}).AddRow(pulledAt))

	got, err := repo.Get(context.Background(), "orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(pulledAt) {
		t.Errorf("expected %v, got %v", pulledAt, got)
	}
}

func TestCursorGet_AbsentMeansZeroTime(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT pulled_at FROM sync_cursors").
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"pulled_at"}))

	got, err := repo.Get(context.Background(), "orders")
	if err != nil {
		t.Fatalf("expected no error for an absent cursor, got %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected the zero time, got %v", got)
	}
}

func TestCursorGet_QueryError(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT pulled_at FROM sync_cursors").
		WithArgs("orders").
		WillReturnError(errors.New("database locked"))

	_, err := repo.Get(context.Background(), "orders")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected an ErrStorage chain, got %v", err)
	}
}

func TestCursorSet_StoresUTC(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	local := time.Date(2026, 2, 15, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	mock.ExpectExec("INSERT INTO sync_cursors").
		WithArgs("orders", local.UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(context.Background(), "orders", local); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCursorList_ReturnsAllCursors(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	ordersAt := time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)
	inventoryAt := time.Date(2026, 2, 14, 20, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT table_name, pulled_at FROM sync_cursors").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "pulled_at"}).
			AddRow("inventory", inventoryAt).
			AddRow("orders", ordersAt))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cursors, got %d", len(got))
	}
	if got[0].Table != "inventory" || !got[0].Timestamp.Equal(inventoryAt) {
		t.Errorf("unexpected first cursor: %+v", got[0])
	}
	if got[1].Table != "orders" || !got[1].Timestamp.Equal(ordersAt) {
		t.Errorf("unexpected second cursor: %+v", got[1])
	}
}

func TestCursorList_Empty(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT table_name, pulled_at FROM sync_cursors").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "pulled_at"}))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no cursors, got %d", len(got))
	}
}

func TestCursorClear(t *testing.T) {
	repo, mock, db := newTestCursorRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sync_cursors").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
