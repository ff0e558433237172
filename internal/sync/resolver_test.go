package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/mock"
	"github.com/fieldline/syncbox/models"
)

func newTestResolver(t *testing.T, ctrl *gomock.Controller) (*Resolver, *mock.MockRecordRepository, *mock.MockMutationQueueRepository) {
	t.Helper()

	mockRecords := mock.NewMockRecordRepository(ctrl)
	mockQueue := mock.NewMockMutationQueueRepository(ctrl)

	r := NewResolver(mockRecords, mockQueue, logger.Nop())
	r.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	return r, mockRecords, mockQueue
}

// ── DetectConflicts ──────────────────────────────────────────────────────────

func TestDetectConflicts_EqualRecordsYieldNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "status": "active", "total": 10}
	server := models.Record{"id": "o1", "status": "active", "total": 10}

	assert.Empty(t, r.DetectConflicts("orders", local, server))
}

func TestDetectConflicts_OneItemPerDifferingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "status": "active", "total": 10, "notes": "call customer"}
	server := models.Record{"id": "o1", "status": "paid", "total": 12, "notes": "call customer"}

	conflicts := r.DetectConflicts("orders", local, server)

	require.Len(t, conflicts, 2)
	fields := map[string]bool{}
	for _, c := range conflicts {
		fields[c.Field] = true
		assert.Equal(t, "o1", c.ID)
		assert.Equal(t, "orders", c.Table)
	}
	assert.True(t, fields["status"])
	assert.True(t, fields["total"])
}

func TestDetectConflicts_IgnoredFieldsNeverCompared(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "updated_at": "2026-01-01T00:00:00Z", "synced_at": "x", "_sync_status": "dirty"}
	server := models.Record{"id": "o1", "updated_at": "2026-02-01T00:00:00Z", "synced_at": "y", "_sync_status": "clean"}

	assert.Empty(t, r.DetectConflicts("orders", local, server))
}

func TestDetectConflicts_FieldMissingOnOneSide(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "priority": 3}
	server := models.Record{"id": "o1"}

	conflicts := r.DetectConflicts("orders", local, server)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "priority", conflicts[0].Field)
	assert.Nil(t, conflicts[0].ServerValue)
}

func TestDetectConflicts_NumericTypesCompareByValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	// int 10 locally vs float64 10 from a JSON decode is not a conflict
	local := models.Record{"id": "o1", "total": 10}
	server := models.Record{"id": "o1", "total": float64(10)}

	assert.Empty(t, r.DetectConflicts("orders", local, server))
}

// ── AutoResolve ──────────────────────────────────────────────────────────────

func TestAutoResolve_DecisionMatrix(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		local      any
		server     any
		wantChoice models.ResolutionChoice
		wantOK     bool
	}{
		{
			name:       "present local beats nil server",
			field:      "notes",
			local:      "call customer",
			server:     nil,
			wantChoice: models.ResolutionLocal,
			wantOK:     true,
		},
		{
			name:       "present server beats nil local",
			field:      "notes",
			local:      nil,
			server:     "from HQ",
			wantChoice: models.ResolutionServer,
			wantOK:     true,
		},
		{
			name:       "larger number wins locally",
			field:      "quantity",
			local:      float64(12),
			server:     float64(7),
			wantChoice: models.ResolutionLocal,
			wantOK:     true,
		},
		{
			name:       "larger number wins remotely",
			field:      "quantity",
			local:      float64(3),
			server:     float64(9),
			wantChoice: models.ResolutionServer,
			wantOK:     true,
		},
		{
			name:       "later date wins",
			field:      "due_date",
			local:      "2026-03-05T00:00:00Z",
			server:     "2026-03-01T00:00:00Z",
			wantChoice: models.ResolutionLocal,
			wantOK:     true,
		},
		{
			name:       "later _at suffix wins remotely",
			field:      "shipped_at",
			local:      "2026-02-01T08:00:00Z",
			server:     "2026-02-02T08:00:00Z",
			wantChoice: models.ResolutionServer,
			wantOK:     true,
		},
		{
			name:       "date-like field with unparseable value is manual",
			field:      "due_date",
			local:      "next week",
			server:     "2026-03-01T00:00:00Z",
			wantChoice: "",
			wantOK:     false,
		},
		{
			name:       "higher status priority wins",
			field:      "status",
			local:      "completed",
			server:     "pending",
			wantChoice: models.ResolutionLocal,
			wantOK:     true,
		},
		{
			name:       "approved beats active",
			field:      "status",
			local:      "active",
			server:     "approved",
			wantChoice: models.ResolutionServer,
			wantOK:     true,
		},
		{
			name:       "unranked status is manual",
			field:      "status",
			local:      "cancelled",
			server:     "active",
			wantChoice: "",
			wantOK:     false,
		},
		{
			name:       "plain string disagreement is manual",
			field:      "customer_name",
			local:      "Acme GmbH",
			server:     "Acme Ltd",
			wantChoice: "",
			wantOK:     false,
		},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.ConflictItem{
				ID:          "o1",
				Table:       "orders",
				Field:       tt.field,
				LocalValue:  tt.local,
				ServerValue: tt.server,
			}

			choice, ok := r.AutoResolve(item)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantChoice, choice)

			// determinism: a pure function of its inputs
			again, okAgain := r.AutoResolve(item)
			assert.Equal(t, choice, again)
			assert.Equal(t, ok, okAgain)
		})
	}
}

func TestAutoResolve_NullVsPresentScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	// local o1 carries notes the server lost; both agree on status
	local := models.Record{"id": "o1", "notes": "call customer", "status": "paid"}
	server := models.Record{"id": "o1", "notes": nil, "status": "paid"}

	conflicts := r.DetectConflicts("orders", local, server)
	require.Len(t, conflicts, 1)
	require.Equal(t, "notes", conflicts[0].Field)

	choice, ok := r.AutoResolve(conflicts[0])
	require.True(t, ok)
	assert.Equal(t, models.ResolutionLocal, choice)
}

func TestAutoResolve_SuffixedStatusFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	// the rank rule keys on the field name containing "status", not on the
	// exact name
	tests := []struct {
		field string
	}{
		{field: "status"},
		{field: "order_status"},
		{field: "payment_status"},
		{field: "statusCode"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			choice, ok := r.AutoResolve(models.ConflictItem{
				Field:       tt.field,
				LocalValue:  "completed",
				ServerValue: "draft",
			})
			require.True(t, ok)
			assert.Equal(t, models.ResolutionLocal, choice)
		})
	}
}

// ── ResolveRecord ────────────────────────────────────────────────────────────

func TestResolveRecord_AllFieldsResolvableBuildsMerge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "status": "completed", "notes": nil}
	server := models.Record{"id": "o1", "status": "pending", "notes": "from HQ"}

	conflicts := r.DetectConflicts("orders", local, server)
	require.Len(t, conflicts, 2)

	resolution, ok := r.ResolveRecord(conflicts)

	require.True(t, ok)
	assert.Equal(t, "o1", resolution.ID)
	assert.Equal(t, models.ResolutionMerged, resolution.Resolution)
	assert.Equal(t, "completed", resolution.MergedData["status"])
	assert.Equal(t, "from HQ", resolution.MergedData["notes"])
}

func TestResolveRecord_AnyManualFieldFailsTheRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "status": "completed", "customer_name": "Acme GmbH"}
	server := models.Record{"id": "o1", "status": "pending", "customer_name": "Acme Ltd"}

	conflicts := r.DetectConflicts("orders", local, server)
	require.Len(t, conflicts, 2)

	_, ok := r.ResolveRecord(conflicts)

	assert.False(t, ok)
}

func TestResolveRecord_AllServerWinsIsServerResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{"id": "o1", "quantity": float64(3)}
	server := models.Record{"id": "o1", "quantity": float64(9)}

	conflicts := r.DetectConflicts("orders", local, server)
	require.Len(t, conflicts, 1)

	resolution, ok := r.ResolveRecord(conflicts)

	require.True(t, ok)
	assert.Equal(t, models.ResolutionServer, resolution.Resolution)
	assert.Nil(t, resolution.MergedData)
}

// ── MergeVersions ────────────────────────────────────────────────────────────

func TestMergeVersions_UserAuthoredOverlay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	local := models.Record{
		"id":     "o1",
		"status": "active",
		"notes":  "call customer",
		"total":  float64(10),
	}
	server := models.Record{
		"id":     "o1",
		"status": "paid",
		"notes":  "",
		"total":  float64(12),
	}

	merged := r.MergeVersions(local, server)

	// server base for everything outside the allow-list
	assert.Equal(t, "paid", merged["status"])
	assert.Equal(t, float64(12), merged["total"])
	// local user-authored content preserved
	assert.Equal(t, "call customer", merged["notes"])
	// fresh updated_at so the merge propagates as the newest write
	assert.Equal(t, "2026-03-01T12:00:00Z", merged["updated_at"])
	// inputs untouched
	assert.Equal(t, "", server["notes"])
}

// ── ApplyResolutions ─────────────────────────────────────────────────────────

func TestApplyResolutions_ServerWinnerDoesNotPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, mockRecords, mockQueue := newTestResolver(t, ctrl)
	ctx := context.Background()

	server := models.Record{"id": "o1", "status": "paid"}
	conflicts := []models.ConflictItem{{
		ID: "o1", Table: "orders", Field: "status",
		LocalVersion:  models.Record{"id": "o1", "status": "active"},
		ServerVersion: server,
	}}
	resolutions := []models.ConflictResolution{{ID: "o1", Resolution: models.ResolutionServer}}

	mockRecords.EXPECT().Put(ctx, "orders", "o1", gomock.Any()).Return(nil)
	// no Enqueue expected, the server already holds the winner; the queued
	// local writes that lost are dropped so they are never delivered
	mockQueue.EXPECT().RemoveForRecord(ctx, "orders", "o1").Return(1, nil)

	applied, failed := r.ApplyResolutions(ctx, "orders", conflicts, resolutions)

	assert.Equal(t, 1, applied)
	assert.Equal(t, 0, failed)
}

func TestApplyResolutions_LocalWinnerReenqueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, mockRecords, mockQueue := newTestResolver(t, ctrl)
	ctx := context.Background()

	conflicts := []models.ConflictItem{{
		ID: "o1", Table: "orders", Field: "notes",
		LocalVersion:  models.Record{"id": "o1", "notes": "call customer"},
		ServerVersion: models.Record{"id": "o1", "notes": nil},
	}}
	resolutions := []models.ConflictResolution{{ID: "o1", Resolution: models.ResolutionLocal}}

	mockRecords.EXPECT().Put(ctx, "orders", "o1", gomock.Any()).Return(nil)
	mockQueue.EXPECT().
		Enqueue(ctx, "orders", models.ActionUpdate, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.MutationAction, payload models.Record) (string, error) {
			assert.Equal(t, "call customer", payload["notes"])
			return "q1", nil
		})

	applied, failed := r.ApplyResolutions(ctx, "orders", conflicts, resolutions)

	assert.Equal(t, 1, applied)
	assert.Equal(t, 0, failed)
}

func TestApplyResolutions_FailureIsolatedPerRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, mockRecords, mockQueue := newTestResolver(t, ctrl)
	ctx := context.Background()

	conflicts := []models.ConflictItem{
		{
			ID: "o1", Table: "orders", Field: "status",
			LocalVersion:  models.Record{"id": "o1"},
			ServerVersion: models.Record{"id": "o1", "status": "paid"},
		},
		{
			ID: "o2", Table: "orders", Field: "status",
			LocalVersion:  models.Record{"id": "o2"},
			ServerVersion: models.Record{"id": "o2", "status": "paid"},
		},
	}
	resolutions := []models.ConflictResolution{
		{ID: "o1", Resolution: models.ResolutionServer},
		{ID: "o2", Resolution: models.ResolutionServer},
	}

	mockRecords.EXPECT().Put(ctx, "orders", "o1", gomock.Any()).Return(errors.New("disk full"))
	mockRecords.EXPECT().Put(ctx, "orders", "o2", gomock.Any()).Return(nil)
	mockQueue.EXPECT().RemoveForRecord(ctx, "orders", "o2").Return(0, nil)

	applied, failed := r.ApplyResolutions(ctx, "orders", conflicts, resolutions)

	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, failed)
}

func TestApplyResolutions_UnknownRecordCountsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	resolutions := []models.ConflictResolution{{ID: "ghost", Resolution: models.ResolutionServer}}

	applied, failed := r.ApplyResolutions(context.Background(), "orders", nil, resolutions)

	assert.Equal(t, 0, applied)
	assert.Equal(t, 1, failed)
}

// ── Summary ──────────────────────────────────────────────────────────────────

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	conflicts := []models.ConflictItem{
		{ID: "o1", Table: "orders", Field: "status", LocalValue: "completed", ServerValue: "pending"},
		{ID: "o2", Table: "orders", Field: "customer_name", LocalValue: "a", ServerValue: "b"},
		{ID: "i1", Table: "inventory", Field: "quantity", LocalValue: float64(5), ServerValue: float64(3)},
	}

	summary := r.Summary(conflicts)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByTable["orders"])
	assert.Equal(t, 1, summary.ByTable["inventory"])
	assert.Equal(t, 1, summary.ByField["status"])
	assert.Equal(t, 2, summary.AutoResolvable)
}

func TestSummary_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	r, _, _ := newTestResolver(t, ctrl)

	summary := r.Summary(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.AutoResolvable)
}
