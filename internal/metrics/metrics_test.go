package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFile(t *testing.T) {
	m := New()
	m.ObserveFile(ResultChanged, 10*time.Millisecond)
	m.ObserveFile(ResultChanged, 5*time.Millisecond)
	m.ObserveFile(ResultFailed, time.Millisecond)
	m.ObserveRun()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Files().WithLabelValues(ResultChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Files().WithLabelValues(ResultFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Files().WithLabelValues(ResultSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs()))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFile(ResultChanged, time.Millisecond)
		m.ObserveRun()
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveFile(ResultUnchanged, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `member_organizer_files_total{result="unchanged"} 1`)
	assert.Contains(t, string(body), "member_organizer_file_duration_seconds_count 1")
}
