package metrics_test

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/metrics"
)

func TestRecorder(t *testing.T) {
	r := metrics.New()

	r.ObserveRender("categories", "svg", 3*time.Millisecond)
	r.ObserveRender("categories", "svg", time.Millisecond)
	r.CacheHit("png")
	r.CacheMiss("png")
	r.CacheMiss("png")
	r.Reload(nil)
	r.Reload(errors.New("truncated"))

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, `fbcharts_renders_total{chart="categories",format="svg"} 2`)
	assert.Contains(t, out, `fbcharts_render_cache_lookups_total{format="png",result="miss"} 2`)
	assert.Contains(t, out, `fbcharts_render_cache_lookups_total{format="png",result="hit"} 1`)
	assert.Contains(t, out, `fbcharts_payload_reloads_total{result="error"} 1`)
	assert.Contains(t, out, `fbcharts_render_duration_seconds_count{format="svg"} 2`)

	n, err := testutil.GatherAndCount(r.Registry(), "fbcharts_payload_reloads_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_Nil(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.ObserveRender("x", "svg", time.Second)
		r.CacheHit("svg")
		r.CacheMiss("svg")
		r.Reload(nil)
	})
}

func TestHandler(t *testing.T) {
	r := metrics.New()
	r.CacheHit("term")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `fbcharts_render_cache_lookups_total{format="term",result="hit"} 1`)
}
