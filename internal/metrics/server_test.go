package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooltech/scheduler-core/internal/metrics"
	"github.com/schooltech/scheduler-core/pkg/storage"
)

func TestHealthReturnsOK(t *testing.T) {
	server := metrics.NewServer(metrics.NewCollector(), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPrometheusServesRegisteredMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	collector.SetScheduleScore(87.5)
	server := metrics.NewServer(collector, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "schedule_score")
}

func TestDownloadReportRejectsInvalidToken(t *testing.T) {
	store, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSigner("test-secret", time.Hour)
	server := metrics.NewServer(metrics.NewCollector(), store, signer, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/not-a-real-token", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDownloadReportServesSignedFile(t *testing.T) {
	store, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	_, err = store.Save("schedule.json", []byte(`{"ok":true}`))
	require.NoError(t, err)

	signer := storage.NewSigner("test-secret", time.Hour)
	token, _, err := signer.Sign("schedule.json")
	require.NoError(t, err)

	server := metrics.NewServer(metrics.NewCollector(), store, signer, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+token, nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
