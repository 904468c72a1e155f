package infra

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountersAndHandler(t *testing.T) {
	m := NewMetrics()
	m.SaveOutcome("success")
	m.SaveOutcome("persist")
	m.SaveOutcome("success")
	m.DraftOp("save", nil)
	m.DraftOp("save", errors.New("disk full"))
	m.SessionsActive().Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.saves.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.draftWrites.WithLabelValues("save", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsActive))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `jobeditor_save_total{outcome="success"} 2`)
}
