package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/config"
	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/dashboard"
	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/export"
	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/legend"
	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/render"
	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/risk"
	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/version"
	settings "github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/observability"
)

// NewRootCmd creates the fbcharts command and its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbcharts <command> [flags]",
		Short: "Food donation analytics charts",
		Long: heredoc.Doc(`
			Render the charts of the food donation analytics dashboard from a
			payload file, or explore them in an interactive terminal dashboard.
		`),
		Example: heredoc.Doc(`
			$ fbcharts render all --format svg --out charts/
			$ fbcharts legend categories --format yaml
			$ fbcharts dashboard --data analytics.json
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := observability.ParseLevel(viper.GetString(settings.KeyLogLevel))
			if err != nil {
				return err
			}
			log.SetLevel(log.Level(level))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String(settings.KeyData, "", "Analytics payload file, JSON or YAML")
	cmd.PersistentFlags().String(settings.KeyLogLevel, "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(settings.KeyPalette, "", "Comma separated category colors")
	for _, key := range []string{settings.KeyData, settings.KeyLogLevel, settings.KeyPalette} {
		viper.BindPFlag(key, cmd.PersistentFlags().Lookup(key))
	}

	cmd.AddCommand(render.NewRenderCmd())
	cmd.AddCommand(legend.NewLegendCmd())
	cmd.AddCommand(risk.NewRiskCmd())
	cmd.AddCommand(export.NewExportCmd())
	cmd.AddCommand(dashboard.NewDashboardCmd())
	cmd.AddCommand(config.NewConfigCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
