package cliutil

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/config"
)

// LoadSettings resolves the settings, letting the --width and --top-n flags
// of cmd override the configured values.
func LoadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, err
	}
	if cmd.Flags().Lookup(config.KeyWidth) != nil {
		if w := GetInt(cmd, config.KeyWidth); w > 0 {
			s.Width = float64(w)
		}
	}
	if cmd.Flags().Lookup(config.KeyTopN) != nil {
		if n := GetInt(cmd, config.KeyTopN); n > 0 {
			s.TopN = n
		}
	}
	return s, nil
}

// OpenBoard reads the payload named by the data setting and builds a board
// over it.
func OpenBoard(fs afero.Fs, s config.Settings) (*charts.Board, error) {
	bundle, err := analytics.Load(fs, s.Data)
	if err != nil {
		return nil, err
	}
	return charts.NewBoard(bundle, s.BoardOptions()...), nil
}
