package dashboard

import (
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/version"
	"github.com/kedarrpandya/foodbridge/internal/cliutil"
	"github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/dashboard"
	"github.com/kedarrpandya/foodbridge/internal/metrics"
	"github.com/kedarrpandya/foodbridge/internal/observability"
	"github.com/kedarrpandya/foodbridge/internal/store"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Explore the charts in an interactive terminal dashboard",
		Long: heredoc.Doc(`
			Show the charts in a full screen terminal dashboard. Hover a time
			chart to move the shared crosshair, click a category to lock it
			across the linked charts, and edit the payload file to reload it.

			Logs are written as JSON to the fbcharts log directory, since the
			terminal belongs to the dashboard.
		`),
		Example: heredoc.Doc(`
			$ fbcharts dashboard --data analytics.json
			$ fbcharts dashboard --top-n 5 --no-watch
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliutil.LoadSettings(cmd)
			if err != nil {
				return err
			}
			fs := afero.NewOsFs()
			board, err := cliutil.OpenBoard(fs, s)
			if err != nil {
				return err
			}

			dir, err := observability.LogDir()
			if err != nil {
				return err
			}
			logFile, err := observability.OpenLogFile(fs, dir, time.Now())
			if err != nil {
				return err
			}
			defer logFile.Close()

			level, err := observability.ParseLevel(s.LogLevel)
			if err != nil {
				return err
			}
			logger, flush, err := cliutil.NewLogger(s, observability.NewJSONHandler(logFile, level), version.Version)
			if err != nil {
				return err
			}
			defer flush()
			log.Debug("Logging to", "path", logFile.Name())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			rec := metrics.New()
			if s.MetricsAddr != "" {
				go func() {
					if err := rec.Serve(ctx, s.MetricsAddr); err != nil {
						logger.CaptureError(err)
					}
				}()
			}

			st := store.New()
			defer st.Close()

			watchPath := s.Data
			if noWatch {
				watchPath = ""
			}
			logger.Info("dashboard: starting", "data", s.Data, "watch", watchPath != "")
			return dashboard.Run(ctx, dashboard.Params{
				Board:   board,
				Store:   st,
				Loader:  dashboard.NewLoader(fs, s.Data),
				Logger:  logger,
				Metrics: rec,
			}, watchPath)
		},
	}

	cmd.Flags().Int(config.KeyWidth, 0, "Width of the time series charts")
	cmd.Flags().Int(config.KeyTopN, 0, "Number of categories drawn by categorical charts")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the payload when it changes")

	return cmd
}
