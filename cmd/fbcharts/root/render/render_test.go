package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdrender "github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/render"
	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/metrics"
	"github.com/kedarrpandya/foodbridge/internal/render"
)

const payload = `{
  "summary": {"total_items": 12, "total_claimed": 8, "total_unclaimed": 4, "claim_rate": 0.67},
  "series": {"labels": ["d1", "d2", "d3"], "created": [4, 5, 3], "claimed": [2, 4, 2]},
  "categories": {"created": {"Produce": 7, "Bakery": 5}, "claimed": {"Produce": 5, "Bakery": 3}}
}`

func setup(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())

	dir := t.TempDir()
	path := filepath.Join(dir, "analytics.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	viper.Set(config.KeyData, path)
	return dir
}

func TestRenderCmd_WritesFiles(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "charts")

	cmd := cmdrender.NewRenderCmd()
	cmd.SetArgs([]string{"history", "categories", "--out", out})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"history-daily-items-vs-claims.svg", "categories-category-breakdown-created.svg"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(string(data), "<svg"), name)
	}
}

func TestRenderCmd_TerminalToStdout(t *testing.T) {
	setup(t)

	cmd := cmdrender.NewRenderCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"claims", "--format", "term"})
	require.NoError(t, cmd.Execute())

	assert.NotEmpty(t, strings.TrimSpace(stdout.String()))
}

func TestRenderCmd_FormatFromConfig(t *testing.T) {
	setup(t)
	viper.Set(config.KeyFormat, "term")

	cmd := cmdrender.NewRenderCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"kpis"})
	require.NoError(t, cmd.Execute())

	assert.NotEmpty(t, stdout.String())
}

func TestRenderCmd_UnknownChart(t *testing.T) {
	setup(t)

	cmd := cmdrender.NewRenderCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"pie"})
	assert.ErrorContains(t, cmd.Execute(), `unknown chart "pie"`)
}

func TestRenderer_SkipsUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := metrics.New()
	cache, err := render.NewCache(0, rec)
	require.NoError(t, err)

	bundle := &analytics.Bundle{Series: &analytics.TimeSeries{
		Labels:  []string{"a", "b"},
		Created: []float64{1, 2},
		Claimed: []float64{1, 1},
	}}
	board := charts.NewBoard(bundle)
	r := &cmdrender.Renderer{Fs: fs, Backend: render.SVG{}, Cache: cache, Metrics: rec, Out: "out", Clock: animation.Settled}
	ids := []charts.ChartID{charts.ChartHistory}

	written, err := r.RenderAll(board, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("out", "history-daily-items-vs-claims.svg")}, written)

	written, err = r.RenderAll(board, ids)
	require.NoError(t, err)
	assert.Empty(t, written)

	board.Crosshair().Set(1)
	written, err = r.RenderAll(board, ids)
	require.NoError(t, err)
	assert.Len(t, written, 1)

	var text bytes.Buffer
	require.NoError(t, rec.WriteText(&text))
	assert.Contains(t, text.String(), `result="hit"`)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "cohorts-donor-cohort-retention-weekly.png",
		cmdrender.FileName(charts.ChartCohorts, "Donor Cohort Retention (weekly)", render.PNG{}))
	assert.Equal(t, "kpis.txt", cmdrender.FileName(charts.ChartKPIs, "", render.Terminal{}))
}
