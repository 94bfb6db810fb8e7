package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceRecordsRequestsAndQueries(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodDelete, "/api/addresses/:id", http.StatusBadRequest, 3*time.Millisecond)
	metrics.ObserveHTTPRequest(http.MethodDelete, "/api/addresses/:id", http.StatusBadRequest, 5*time.Millisecond)
	metrics.ObserveDBQuery("addresses.delete", 2*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requestTotal.WithLabelValues(http.MethodDelete, "/api/addresses/:id", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.dbQueryDuration))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `db_query_duration_seconds_count{query="addresses.delete"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	metrics.ObserveDBQuery("students.list", time.Millisecond)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
