package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.SetValidationIssues(3)
	pr.AddLinksChecked(53)
	pr.AddLinksBroken(2)
	pr.AddLinksBroken(0)
	pr.ObserveLinkCheckDuration(150 * time.Millisecond)
	pr.IncEmit("js", ResultSuccess)
	pr.IncEmit("js", Result(errors.New("disk full")))

	assert.InDelta(t, 3, testutil.ToFloat64(pr.validationIssues), 0)
	assert.InDelta(t, 53, testutil.ToFloat64(pr.linksChecked), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.linksBroken), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.emits.WithLabelValues("js", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.emits.WithLabelValues("js", "failed")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(pr.linkCheckDuration))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP docsite_validation_issues Issues found by the last site configuration check
# TYPE docsite_validation_issues gauge
docsite_validation_issues 3
`), "docsite_validation_issues")
	require.NoError(t, err)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.SetValidationIssues(1)
		pr.AddLinksChecked(1)
		pr.AddLinksBroken(1)
		pr.ObserveLinkCheckDuration(time.Second)
		pr.IncEmit("yaml", ResultSuccess)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).AddLinksChecked(7)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docsite_links_checked_total 7")
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
