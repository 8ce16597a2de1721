package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePedigree_CountsIssuesByKind(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.ObservePedigree(3, []string{"dangling", "cycle", "dangling"})

	body := scrape(t, m)
	assert.Contains(t, body, `catreg_pedigree_issues_total{kind="dangling"} 2`)
	assert.Contains(t, body, `catreg_pedigree_issues_total{kind="cycle"} 1`)
	assert.Contains(t, body, "catreg_pedigree_lookups_count 1")
}

func TestNilMetrics_IsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/cats", 200, time.Millisecond)
		m.ObservePedigree(1, nil)
	})
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	assert.Contains(t, scrape(t, m), `catreg_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
