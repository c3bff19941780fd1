package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ProposalsSubmitted.Inc()
	a.Notifications.WithLabelValues("failed").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ProposalsSubmitted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ProposalsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Notifications.WithLabelValues("failed")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `marketplace_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
