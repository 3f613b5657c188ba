package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockAPIExecutor(ctrl)
	srv := New(Config{Port: 8080}, exec)
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	exec.EXPECT().GetSyncProgressReport(gomock.Any()).Return(&dto.SyncProgressReport{}, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/sync-progress", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// the requests above are recorded by route pattern
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `scanner_http_requests_total{method="GET",route="/health",status="200"}`)
	assert.Contains(t, w.Body.String(), `route="/api/v1/reports/sync-progress"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShutdownWithoutStart(t *testing.T) {
	srv := New(Config{}, nil)
	assert.NoError(t, srv.Shutdown(t.Context()))
}
