package cliutil_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedarrpandya/foodbridge/internal/cliutil"
	"github.com/kedarrpandya/foodbridge/internal/config"
)

func boardCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int(config.KeyWidth, 0, "")
	cmd.Flags().Int(config.KeyTopN, 0, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := cliutil.LoadSettings(boardCmd(t))
	require.NoError(t, err)
	assert.Equal(t, 7, s.TopN)
	assert.Equal(t, 920.0, s.Width)
}

func TestLoadSettings_FlagsOverride(t *testing.T) {
	s, err := cliutil.LoadSettings(boardCmd(t, "--top-n", "3", "--width", "600"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.TopN)
	assert.Equal(t, 600.0, s.Width)
}

func TestLoadSettings_InvalidConfig(t *testing.T) {
	cmd := boardCmd(t)
	viper.Set(config.KeyFormat, "gif")

	_, err := cliutil.LoadSettings(cmd)
	assert.Error(t, err)
}

func TestOpenBoard(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data.yaml", []byte("categories:\n  created: {A: 3, B: 1}\n"), 0o644))

	b, err := cliutil.OpenBoard(fs, config.Settings{Data: "data.yaml", TopN: 1})
	require.NoError(t, err)

	l := b.CategoryProps().Legend()
	require.Len(t, l.Entries, 1)
	assert.Equal(t, "A", l.Entries[0].Label)
	assert.Equal(t, 4.0, l.Total)
}

func TestOpenBoard_Missing(t *testing.T) {
	_, err := cliutil.OpenBoard(afero.NewMemMapFs(), config.Settings{Data: "nope.json"})
	assert.ErrorContains(t, err, "nope.json")
}
