package risk_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/risk"
	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/config"
)

func ptr(v float64) *float64 { return &v }

func bundle() *analytics.Bundle {
	return &analytics.Bundle{Risk: &analytics.Risk{Items: []analytics.RiskItem{
		{ID: 1, Title: "Bread", Category: "Bakery", HoursLeft: ptr(20), RiskScore: 0.4},
		{ID: 2, Title: "Milk", Category: "Dairy", HoursLeft: ptr(5), RiskScore: 0.9},
		{ID: 3, Title: "Bagels", Category: "Bakery", HoursLeft: ptr(2), RiskScore: 0.7},
	}}}
}

func ids(items []analytics.RiskItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestItems(t *testing.T) {
	b := bundle()

	assert.Equal(t, []int{2, 3, 1}, ids(risk.Items(b, analytics.DefaultSort, "", 0)))
	assert.Equal(t, []int{3, 1}, ids(risk.Items(b, analytics.Sort{Key: analytics.SortHoursLeft}, "Bakery", 0)))
	assert.Equal(t, []int{2}, ids(risk.Items(b, analytics.DefaultSort, "", 1)))
	assert.Empty(t, risk.Items(b, analytics.DefaultSort, "Produce", 0))
	assert.NotNil(t, risk.Items(&analytics.Bundle{}, analytics.DefaultSort, "", 0))
}

func TestRiskCmd(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())

	path := filepath.Join(t.TempDir(), "analytics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"risk": {"items": [
		{"id": 1, "title": "Bread", "category": "Bakery", "risk_score": 0.4},
		{"id": 2, "title": "Milk", "category": "Dairy", "risk_score": 0.9}
	]}}`), 0o644))
	viper.Set(config.KeyData, path)

	cmd := risk.NewRiskCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--template", "{{range .}}{{.Title}};{{end}}"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Milk;Bread;\n", out.String())
}

func TestRiskCmd_BadSortKey(t *testing.T) {
	cmd := risk.NewRiskCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--sort", "colour"})
	assert.ErrorContains(t, cmd.Execute(), "colour")
}
