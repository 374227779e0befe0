package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordAuth(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAuth(OpLogin, ResultSuccess)
	c.RecordAuth(OpLogin, ResultSuccess)
	c.RecordAuth(OpLogin, ResultFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.authTotal.WithLabelValues(OpLogin, ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authTotal.WithLabelValues(OpLogin, ResultFailure)))
}

func TestCollector_SessionCacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSessionCacheFailure(OpRegister)
	c.RecordSessionCacheSkipped(OpLogout)
	c.RecordSessionCacheSkipped(OpLogout)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheFailuresTotal.WithLabelValues(OpRegister)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheSkippedTotal.WithLabelValues(OpLogout)))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHashDuration(30 * time.Millisecond)
	c.RecordAuth(OpRegister, ResultSuccess)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "studypath_password_hash_seconds_count 1")
	assert.Contains(t, body, `studypath_auth_requests_total{operation="register",result="success"} 1`)
}

func TestNoop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Noop{}

	assert.NotPanics(t, func() {
		r.RecordAuth(OpLogin, ResultSuccess)
		r.RecordSessionCacheFailure(OpLogin)
		r.RecordSessionCacheSkipped(OpLogout)
		r.RecordHashDuration(time.Millisecond)
	})
}
