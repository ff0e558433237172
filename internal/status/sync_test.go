package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/mock"
	syncer "github.com/fieldline/syncbox/internal/sync"
	"github.com/fieldline/syncbox/models"
)

type stubResetter struct {
	calls int
	err   error
}

func (s *stubResetter) Reset(context.Context) error {
	s.calls++
	return s.err
}

type handlerMocks struct {
	coordinator *mock.MockCoordinator
	queue       *mock.MockMutationQueueRepository
	cursors     *mock.MockCursorRepository
	local       *stubResetter
}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *handlerMocks) {
	t.Helper()

	m := &handlerMocks{
		coordinator: mock.NewMockCoordinator(ctrl),
		queue:       mock.NewMockMutationQueueRepository(ctrl),
		cursors:     mock.NewMockCursorRepository(ctrl),
		local:       &stubResetter{},
	}

	h := NewHandler(m.coordinator, m.queue, m.cursors, m.local, 3, logger.Nop())
	return h, m
}

func TestGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().
		Status(gomock.Any()).
		Return(models.SyncStatus{
			PendingCount:   4,
			ExhaustedCount: 1,
			State:          models.StateIdle,
			LastSyncTime:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var status models.SyncStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 4, status.PendingCount)
	assert.Equal(t, 1, status.ExhaustedCount)
	assert.Equal(t, models.StateIdle, status.State)
}

func TestGetStatus_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().
		Status(gomock.Any()).
		Return(models.SyncStatus{}, errors.New("database locked"))

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTriggerSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().
		Sync(gomock.Any()).
		Return(models.SyncResult{Pushed: 2, Pulled: 7, TablesPulled: 2}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sync", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var result models.SyncResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 7, result.Pulled)
}

func TestTriggerSync_AlreadyRunningIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().
		Sync(gomock.Any()).
		Return(models.SyncResult{}, syncer.ErrSyncInProgress)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/sync", nil))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.queue.EXPECT().
		ListPending(gomock.Any()).
		Return([]models.QueuedMutation{
			{QueueID: "q1", Table: "orders", Action: models.ActionUpdate, RetryCount: 2},
		}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/queue", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var pending []models.QueuedMutation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "q1", pending[0].QueueID)
}

func TestPurgeQueue_DefaultThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.queue.EXPECT().PurgeExhausted(gomock.Any(), 3).Return(2, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/queue/purge", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"purged": 2}`, rr.Body.String())
}

func TestPurgeQueue_ExplicitThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.queue.EXPECT().PurgeExhausted(gomock.Any(), 5).Return(0, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/queue/purge?max_retries=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"purged": 0}`, rr.Body.String())
}

func TestPurgeQueue_RejectsBadThreshold(t *testing.T) {
	tests := []string{"zero", "0", "-1"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			h, _ := newTestHandler(t, ctrl)

			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/queue/purge?max_retries="+raw, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetCursors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.cursors.EXPECT().
		List(gomock.Any()).
		Return([]models.SyncCursor{
			{Table: "inventory", Timestamp: time.Date(2026, 2, 14, 20, 30, 0, 0, time.UTC)},
			{Table: "orders", Timestamp: time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)},
		}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cursors", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var cursors []models.SyncCursor
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cursors))
	require.Len(t, cursors, 2)
	assert.Equal(t, "inventory", cursors[0].Table)
	assert.Equal(t, "orders", cursors[1].Table)
}

func TestGetCursors_EmptyIsAnEmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.cursors.EXPECT().List(gomock.Any()).Return(nil, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cursors", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestResetLocalState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().State().Return(models.StateIdle)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, m.local.calls)
}

func TestResetLocalState_RefusedWhileSyncing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().State().Return(models.StatePushing)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 0, m.local.calls)
}

func TestResetLocalState_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().State().Return(models.StateIdle)
	m.local.err = errors.New("database locked")

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 1, m.local.calls)
}
