package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.RecordCreated("APPROVED", 4)
	m.RecordCreated("APPROVED", 5)
	m.RecordCreated("REJECTED", 6)
	m.AnalysisSettled("done")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recordsCreated.WithLabelValues("APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recordsCreated.WithLabelValues("REJECTED")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.recordsStored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analysisResults.WithLabelValues("done")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCreated("APPROVED", 1)
		m.SetStored(1)
		m.AnalysisSettled("failed")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetStored(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "qclab_records_stored 3")
}
