package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/legend"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	s, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "svg", s.Format)
	assert.Equal(t, 920.0, s.Width)
	assert.Equal(t, legend.DefaultTopN, s.TopN)
	assert.Equal(t, 7, s.TopN)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "analytics.json", s.Data)
	assert.Nil(t, s.Palette)
	assert.Empty(t, s.SentryDSN)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FBCHARTS_TOP_N", "4")
	t.Setenv("FBCHARTS_PALETTE", "#111111, #222")

	v := viper.New()
	config.SetDefaults(v)

	s, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 4, s.TopN)
	assert.Equal(t, []string{"#111111", "#222"}, s.Palette)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyFormat, "gif")

	_, err := config.Load(v)
	assert.ErrorContains(t, err, "format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		key, value string
		ok         bool
	}{
		{"format", "png", true},
		{"format", "Terminal", true},
		{"format", "pdf", false},
		{"width", "640", true},
		{"width", "-1", false},
		{"top-n", "many", false},
		{"log-level", "debug", true},
		{"log-level", "chatty", false},
		{"palette", "#fff,#16a34a", true},
		{"palette", "#fff,blue-ish", false},
		{"data", "anything.yaml", true},
		{"url", "x", false},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			err := config.Validate(tc.key, tc.value)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParsePalette(t *testing.T) {
	assert.Equal(t, []string{"#a", "#b"}, config.ParsePalette(" #a ,, #b "))
	assert.Nil(t, config.ParsePalette(""))
}

func TestSettings_BoardOptions(t *testing.T) {
	s := config.Settings{Palette: []string{"#111111"}, TopN: 3, Width: 600}
	b := charts.NewBoard(&analytics.Bundle{}, s.BoardOptions()...)

	p := b.CategoryProps()
	assert.Equal(t, 3, p.TopN)
	assert.Equal(t, []string{"#111111"}, p.Palette)
	assert.Equal(t, 600.0, b.HistoryProps().Width)
}

func TestSettings_BoardOptionsKeepDefaults(t *testing.T) {
	b := charts.NewBoard(&analytics.Bundle{}, config.Settings{}.BoardOptions()...)

	p := b.CategoryProps()
	assert.Equal(t, charts.CategoryPalette, p.Palette)
	assert.Positive(t, p.TopN)
}
