package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldline/syncbox/internal/config"
	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/netmon"
	"github.com/fieldline/syncbox/internal/remote"
	"github.com/fieldline/syncbox/internal/store"
	"github.com/fieldline/syncbox/models"
)

type offlineManager struct {
	records store.RecordRepository
	cursors store.CursorRepository
	remote  remote.RowStore
	monitor netmon.Monitor
	cfg     config.ClientSync
	logger  *logger.Logger

	now Clock
}

var _ Manager = (*offlineManager)(nil)

// NewManager wires the lifecycle manager for first-run bootstrap and
// per-table refresh.
func NewManager(
	storages *store.Storages,
	rowStore remote.RowStore,
	monitor netmon.Monitor,
	cfg config.ClientSync,
	logger *logger.Logger,
) Manager {
	return &offlineManager{
		records: storages.Records,
		cursors: storages.Cursors,
		remote:  rowStore,
		monitor: monitor,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// InitialSyncNeeded reports whether the local store holds no records at
// all, i.e. a first run or a freshly reset store.
func (m *offlineManager) InitialSyncNeeded(ctx context.Context) (bool, error) {
	total, err := m.records.CountAll(ctx)
	if err != nil {
		return false, fmt.Errorf("count local records: %w", err)
	}
	return total == 0, nil
}

// FullSync downloads every configured table from scratch, in priority
// order. Each table is replaced wholesale and its cursor set; a failing
// table is recorded in the result and never aborts its siblings.
func (m *offlineManager) FullSync(ctx context.Context) (models.SyncResult, error) {
	var result models.SyncResult

	if !m.monitor.Online() {
		return result, ErrOffline
	}

	m.logger.Info().
		Str("func", "offlineManager.FullSync").
		Int("tables", len(m.cfg.Tables)).
		Msg("full sync started")

	for _, table := range m.cfg.Tables {
		pulled, err := m.downloadTable(ctx, table)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", table, err))
			continue
		}
		result.Pulled += pulled
		result.TablesPulled++
	}

	m.logger.Info().
		Str("func", "offlineManager.FullSync").
		Int("pulled", result.Pulled).
		Int("tables_pulled", result.TablesPulled).
		Int("errors", len(result.Errors)).
		Msg("full sync finished")

	return result, nil
}

// RefreshTable discards the local copy of one table and re-downloads it,
// regardless of cursor state.
func (m *offlineManager) RefreshTable(ctx context.Context, table string) error {
	if !m.monitor.Online() {
		return ErrOffline
	}

	pulled, err := m.downloadTable(ctx, table)
	if err != nil {
		return err
	}

	m.logger.Info().
		Str("func", "offlineManager.RefreshTable").
		Str("table", table).
		Int("pulled", pulled).
		Msg("table refreshed")

	return nil
}

// downloadTable fetches the table from the beginning of time and replaces
// the local copy. The fetch happens before the clear so a failed download
// never leaves the table empty.
func (m *offlineManager) downloadTable(ctx context.Context, table string) (int, error) {
	start := m.now().UTC()

	rows, err := m.remote.Select(ctx, table, time.Time{}, m.cfg.PageLimit)
	if err != nil {
		return 0, fmt.Errorf("fetch rows: %w", err)
	}

	if err = m.records.ClearTable(ctx, table); err != nil {
		return 0, fmt.Errorf("clear table: %w", err)
	}
	if err = m.records.PutAll(ctx, table, rows); err != nil {
		return 0, fmt.Errorf("apply rows: %w", err)
	}

	var cursor time.Time
	for _, row := range rows {
		cursor = laterOf(cursor, rowUpdatedAt(row))
	}
	if cursor.IsZero() {
		cursor = start
	}
	if err = m.cursors.Set(ctx, table, cursor); err != nil {
		return 0, fmt.Errorf("set cursor: %w", err)
	}

	return len(rows), nil
}
