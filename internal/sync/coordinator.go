package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fieldline/syncbox/internal/config"
	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/netmon"
	"github.com/fieldline/syncbox/internal/remote"
	"github.com/fieldline/syncbox/internal/store"
	"github.com/fieldline/syncbox/models"
)

type coordinator struct {
	records  store.RecordRepository
	queue    store.MutationQueueRepository
	cursors  store.CursorRepository
	remote   remote.RowStore
	monitor  netmon.Monitor
	resolver *Resolver
	cfg      config.ClientSync
	logger   *logger.Logger

	events   *notifier
	progress ProgressFunc
	now      Clock

	inFlight atomic.Bool

	mu        sync.RWMutex
	state     models.SyncState
	lastSync  time.Time
	lastError string
}

var _ Coordinator = (*coordinator)(nil)

// NewCoordinator wires a Coordinator from the storage repositories, the
// remote row-store and the network monitor. sink and progress may be nil.
func NewCoordinator(
	storages *store.Storages,
	rowStore remote.RowStore,
	monitor netmon.Monitor,
	resolver *Resolver,
	cfg config.ClientSync,
	sink EventSink,
	progress ProgressFunc,
	logger *logger.Logger,
) Coordinator {
	return &coordinator{
		records:  storages.Records,
		queue:    storages.Queue,
		cursors:  storages.Cursors,
		remote:   rowStore,
		monitor:  monitor,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
		events:   newNotifier(sink, logger),
		progress: progress,
		now:      time.Now,
		state:    models.StateIdle,
	}
}

// Sync runs one pull-then-push pass. Only one pass runs at a time; callers
// colliding with a running pass get [ErrSyncInProgress] and the running
// pass is left alone.
func (c *coordinator) Sync(ctx context.Context) (models.SyncResult, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return models.SyncResult{}, ErrSyncInProgress
	}
	defer c.inFlight.Store(false)

	start := c.now().UTC()
	c.logger.Info().
		Str("func", "coordinator.Sync").
		Int("tables", len(c.cfg.Tables)).
		Msg("sync pass started")

	var result models.SyncResult

	c.setState(models.StatePulling)
	for _, table := range c.cfg.Tables {
		c.pullTable(ctx, table, start, &result)
	}

	c.setState(models.StatePushing)
	c.push(ctx, &result)

	c.setState(models.StateIdle)

	if exhausted, err := c.queue.CountExhausted(ctx, c.cfg.MaxRetries); err == nil {
		result.Exhausted = exhausted
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("count exhausted mutations: %v", err))
	}

	c.finish(start, result)
	c.events.syncCompleted(ctx, result)

	return result, nil
}

// pullTable fetches rows changed since the table's cursor and applies them.
// Rows with a queued local mutation are routed through conflict resolution
// instead of being overwritten. Failures are recorded in result and never
// abort sibling tables.
func (c *coordinator) pullTable(ctx context.Context, table string, start time.Time, result *models.SyncResult) {
	log := c.logger.With().Str("func", "coordinator.pullTable").Str("table", table).Logger()

	since, err := c.cursors.Get(ctx, table)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: read cursor: %v", table, err))
		return
	}

	rows, err := c.remote.Select(ctx, table, since, c.cfg.PageLimit)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: fetch rows: %v", table, err))
		return
	}
	if len(rows) == 0 {
		result.TablesPulled++
		return
	}

	pending, err := c.queue.PendingIDs(ctx, table)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: read pending ids: %v", table, err))
		return
	}

	clean := make([]models.Record, 0, len(rows))
	var deferred []models.Record
	for _, row := range rows {
		if _, contested := pending[row.ID()]; contested {
			deferred = append(deferred, row)
			continue
		}
		clean = append(clean, row)
	}

	var maxApplied time.Time
	appliedCount := 0
	cleanFailed := false
	if err = c.records.PutAll(ctx, table, clean); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: apply rows: %v", table, err))
		cleanFailed = true
	} else {
		result.Pulled += len(clean)
		appliedCount += len(clean)
		for _, row := range clean {
			maxApplied = laterOf(maxApplied, rowUpdatedAt(row))
		}
	}

	for _, row := range deferred {
		if c.reconcileRow(ctx, table, row, result) {
			result.Pulled++
			appliedCount++
			maxApplied = laterOf(maxApplied, rowUpdatedAt(row))
		}
	}

	result.TablesPulled++

	// With the clean batch unapplied the cursor must stay put, even when a
	// deferred row was reconciled: advancing past the failed batch would
	// skip those rows until they change again remotely.
	if cleanFailed {
		return
	}

	// Cursor only ever moves forward, and only past rows that actually
	// landed: a deferred row left unapplied must be fetched again. Applied
	// rows without a usable timestamp fall back to the pass start time
	// observed before the fetch.
	if maxApplied.IsZero() && appliedCount > 0 {
		maxApplied = start
	}
	if maxApplied.After(since) {
		if err = c.cursors.Set(ctx, table, maxApplied); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: advance cursor: %v", table, err))
			return
		}
	}

	log.Debug().
		Int("fetched", len(rows)).
		Int("deferred", len(deferred)).
		Time("cursor", maxApplied).
		Msg("table pulled")
}

// reconcileRow handles one server row whose record also has a queued local
// mutation. Returns true when the row (or a resolved version of it) was
// applied locally.
func (c *coordinator) reconcileRow(ctx context.Context, table string, row models.Record, result *models.SyncResult) bool {
	local, err := c.records.GetByID(ctx, table, row.ID())
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			// A queued delete with no local copy left: the local intent
			// stands until the push settles it.
			c.logger.Debug().
				Str("func", "coordinator.reconcileRow").
				Str("table", table).
				Str("record_id", row.ID()).
				Msg("server row deferred behind a queued delete")
			return false
		}
		result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: read local version: %v", table, row.ID(), err))
		return false
	}

	conflicts := c.resolver.DetectConflicts(table, local, row)
	if len(conflicts) == 0 {
		// Same content on every compared field; take the server copy so
		// bookkeeping fields converge.
		if err = c.records.Put(ctx, table, row.ID(), row); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: apply row: %v", table, row.ID(), err))
			return false
		}
		return true
	}

	resolution, ok := c.resolver.ResolveRecord(conflicts)
	if !ok {
		// Needs a human. Report it, leave the local copy untouched.
		result.Conflicts = append(result.Conflicts, conflicts...)
		result.ManualConflicts++
		return false
	}

	applied, failed := c.resolver.ApplyResolutions(ctx, table, conflicts, []models.ConflictResolution{resolution})
	if failed > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: apply auto-resolution", table, row.ID()))
		return false
	}

	result.AutoResolved += applied
	return true
}

// push drains the mutation queue FIFO. Per-record-id ordering holds: after
// a failed delivery for an id, later mutations for that id are skipped this
// pass so they never arrive out of order. A transport-level failure ends
// the pass; everything still queued is retried next time.
func (c *coordinator) push(ctx context.Context, result *models.SyncResult) {
	if !c.monitor.Online() {
		result.Errors = append(result.Errors, ErrOffline.Error())
		return
	}

	pending, err := c.queue.ListPending(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("list pending mutations: %v", err))
		return
	}
	if len(pending) == 0 {
		return
	}

	total := len(pending)
	blocked := make(map[string]struct{})

	for i, m := range pending {
		key := m.Table + "/" + m.RecordID()
		if _, isBlocked := blocked[key]; isBlocked {
			c.logger.Debug().
				Str("func", "coordinator.push").
				Str("queue_id", m.QueueID).
				Str("record_id", m.RecordID()).
				Msg("mutation skipped behind an earlier failure for the same record")
			c.reportProgress(i+1, total)
			continue
		}

		deliveryErr := c.deliver(ctx, m)
		if deliveryErr == nil {
			if err = c.queue.Remove(ctx, m.QueueID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("remove delivered mutation %s: %v", m.QueueID, err))
			} else {
				result.Pushed++
			}
			c.reportProgress(i+1, total)
			continue
		}

		c.failMutation(ctx, m, deliveryErr, result)
		blocked[key] = struct{}{}
		c.reportProgress(i+1, total)

		if errors.Is(deliveryErr, remote.ErrNetwork) {
			c.logger.Info().
				Str("func", "coordinator.push").
				Int("remaining", total-i-1).
				Msg("connectivity lost mid-push, remaining mutations stay queued")
			return
		}
	}
}

func (c *coordinator) deliver(ctx context.Context, m models.QueuedMutation) error {
	switch m.Action {
	case models.ActionCreate:
		return c.remote.Insert(ctx, m.Table, m.Payload)
	case models.ActionUpdate:
		return c.remote.Update(ctx, m.Table, m.Payload)
	case models.ActionDelete:
		return c.remote.Delete(ctx, m.Table, m.RecordID())
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, m.Action)
	}
}

func (c *coordinator) failMutation(ctx context.Context, m models.QueuedMutation, cause error, result *models.SyncResult) {
	result.PushFailed++
	result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: deliver %s: %v", m.Table, m.RecordID(), m.Action, cause))

	if errors.Is(cause, remote.ErrValidation) {
		// Retrying an identical payload cannot succeed; flag it for the
		// operator instead of burning retries silently.
		c.logger.Warn().
			Str("func", "coordinator.push").
			Str("queue_id", m.QueueID).
			Str("record_id", m.RecordID()).
			Err(cause).
			Msg("mutation rejected by the remote store, needs a changed payload")
	}

	if err := c.queue.MarkFailed(ctx, m.QueueID, cause); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("mark mutation %s failed: %v", m.QueueID, err))
		return
	}

	m.RetryCount++
	m.LastError = cause.Error()
	if m.RetryCount >= c.cfg.MaxRetries {
		c.logger.Error().
			Str("func", "coordinator.push").
			Str("queue_id", m.QueueID).
			Str("record_id", m.RecordID()).
			Int("retry_count", m.RetryCount).
			Msg("mutation retry ceiling reached, manual intervention required")
		c.events.mutationExhausted(ctx, m)
	}
}

// Mutate applies a local write optimistically and queues it for delivery.
// No network I/O happens here; queueing succeeds regardless of
// connectivity.
func (c *coordinator) Mutate(ctx context.Context, table string, action models.MutationAction, payload models.Record) (string, error) {
	if !c.knownTable(table) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if !action.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	id := payload.ID()
	if id == "" {
		return "", ErrMissingRecordID
	}

	switch action {
	case models.ActionDelete:
		if err := c.records.Delete(ctx, table, id); err != nil {
			return "", fmt.Errorf("apply local delete: %w", err)
		}
	default:
		if err := c.records.Put(ctx, table, id, payload); err != nil {
			return "", fmt.Errorf("apply local write: %w", err)
		}
	}

	queueID, err := c.queue.Enqueue(ctx, table, action, payload)
	if err != nil {
		return "", fmt.Errorf("enqueue mutation: %w", err)
	}

	c.logger.Debug().
		Str("func", "coordinator.Mutate").
		Str("table", table).
		Str("record_id", id).
		Str("action", string(action)).
		Str("queue_id", queueID).
		Msg("local mutation queued")

	return queueID, nil
}

// Status reports sync health. It only reads local state and is answerable
// online or offline.
func (c *coordinator) Status(ctx context.Context) (models.SyncStatus, error) {
	pending, err := c.queue.CountPending(ctx)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("count pending mutations: %w", err)
	}
	exhausted, err := c.queue.CountExhausted(ctx, c.cfg.MaxRetries)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("count exhausted mutations: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.SyncStatus{
		PendingCount:   pending,
		ExhaustedCount: exhausted,
		State:          c.state,
		IsSyncing:      c.inFlight.Load(),
		LastSyncTime:   c.lastSync,
		LastError:      c.lastError,
	}, nil
}

func (c *coordinator) State() models.SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *coordinator) setState(state models.SyncState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *coordinator) finish(start time.Time, result models.SyncResult) {
	c.mu.Lock()
	c.lastSync = start
	c.lastError = ""
	if len(result.Errors) > 0 {
		c.lastError = result.Errors[len(result.Errors)-1]
	}
	c.mu.Unlock()

	c.logger.Info().
		Str("func", "coordinator.Sync").
		Int("pulled", result.Pulled).
		Int("pushed", result.Pushed).
		Int("push_failed", result.PushFailed).
		Int("auto_resolved", result.AutoResolved).
		Int("manual_conflicts", result.ManualConflicts).
		Int("errors", len(result.Errors)).
		Msg("sync pass finished")
}

func (c *coordinator) reportProgress(completed, total int) {
	if c.progress == nil {
		return
	}
	c.progress(models.SyncProgress{Completed: completed, Total: total})
}

func (c *coordinator) knownTable(table string) bool {
	for _, t := range c.cfg.Tables {
		if t == table {
			return true
		}
	}
	return false
}

func rowUpdatedAt(row models.Record) time.Time {
	ts, ok := asTime(row["updated_at"])
	if !ok {
		return time.Time{}
	}
	return ts
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
