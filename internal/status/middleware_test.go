package status

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldline/syncbox/models"
)

func TestWithTraceID_GeneratesHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().Status(gomock.Any()).Return(models.SyncStatus{}, nil)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestWithTraceID_EchoesIncomingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.coordinator.EXPECT().Status(gomock.Any()).Return(models.SyncStatus{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set(traceIDHeader, "trace-42")

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "trace-42", rr.Header().Get(traceIDHeader))
}
