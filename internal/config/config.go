// Package config defines the persisted settings of fbcharts and reads them
// from viper.
package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/legend"
	"github.com/kedarrpandya/foodbridge/internal/observability"
	"github.com/kedarrpandya/foodbridge/internal/render"
)

// Setting keys.
const (
	KeyPalette     = "palette"
	KeyFormat      = "format"
	KeyWidth       = "width"
	KeyTopN        = "top-n"
	KeyLogLevel    = "log-level"
	KeySentryDSN   = "sentry-dsn"
	KeyData        = "data"
	KeyMetricsAddr = "metrics-addr"
)

// EnvPrefix prefixes the environment variables that override settings,
// e.g. FBCHARTS_TOP_N.
const EnvPrefix = "FBCHARTS"

// ValidConfigKeys defines the allowed configuration keys
var ValidConfigKeys = []string{
	KeyPalette,
	KeyFormat,
	KeyWidth,
	KeyTopN,
	KeyLogLevel,
	KeySentryDSN,
	KeyData,
	KeyMetricsAddr,
}

// Settings are the resolved settings.
type Settings struct {
	Palette     []string
	Format      string
	Width       float64
	TopN        int
	LogLevel    string
	SentryDSN   string
	Data        string
	MetricsAddr string
}

// SetDefaults registers defaults and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFormat, "svg")
	v.SetDefault(KeyWidth, 920)
	v.SetDefault(KeyTopN, legend.DefaultTopN)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyData, "analytics.json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load resolves and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Format:      v.GetString(KeyFormat),
		Width:       v.GetFloat64(KeyWidth),
		TopN:        v.GetInt(KeyTopN),
		LogLevel:    v.GetString(KeyLogLevel),
		SentryDSN:   v.GetString(KeySentryDSN),
		Data:        v.GetString(KeyData),
		MetricsAddr: v.GetString(KeyMetricsAddr),
	}
	for _, key := range ValidConfigKeys {
		if err := Validate(key, v.GetString(key)); err != nil {
			return Settings{}, err
		}
	}
	s.Palette = ParsePalette(v.GetString(KeyPalette))
	return s, nil
}

// BoardOptions returns the board options the settings ask for.
func (s Settings) BoardOptions() []charts.BoardOption {
	return []charts.BoardOption{
		charts.WithPalette(s.Palette),
		charts.WithTopN(s.TopN),
		charts.WithWidth(s.Width),
	}
}

// Validate checks that value is acceptable for key.
func Validate(key, value string) error {
	if !slices.Contains(ValidConfigKeys, key) {
		return fmt.Errorf("invalid config key: %s. Valid keys are: %v", key, ValidConfigKeys)
	}

	switch key {
	case KeyPalette:
		for _, c := range ParsePalette(value) {
			if _, ok := geometry.ParseColor(c); !ok {
				return fmt.Errorf("config: %s: invalid color %q", key, c)
			}
		}
	case KeyFormat:
		if _, err := render.ByName(value); err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
	case KeyWidth, KeyTopN:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: %s must be a positive number, got %q", key, value)
		}
	case KeyLogLevel:
		if _, err := observability.ParseLevel(value); err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
	}
	return nil
}

// ParsePalette splits a comma separated color list. An empty list means the
// built-in palette.
func ParsePalette(s string) []string {
	var colors []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}
