package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/version"
	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/cliutil"
	"github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/dashboard"
	"github.com/kedarrpandya/foodbridge/internal/debounce"
	"github.com/kedarrpandya/foodbridge/internal/geometry"
	"github.com/kedarrpandya/foodbridge/internal/metrics"
	"github.com/kedarrpandya/foodbridge/internal/render"
	"github.com/kedarrpandya/foodbridge/internal/watcher"
)

// Stdout as an --out value writes to standard output.
const Stdout = "-"

// NewRenderCmd creates the render command
func NewRenderCmd() *cobra.Command {
	var (
		out       string
		lock      string
		crosshair int
		at        time.Duration
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "render [chart...|all]",
		Short: "Render charts to SVG, PNG or the terminal",
		Long: heredoc.Docf(`
			Render charts of the dashboard from the payload file.

			Charts: %s
		`, strings.Join(chartNames(), ", ")),
		Example: heredoc.Doc(`
			# Render every chart as SVG into charts/
			$ fbcharts render all --out charts/

			# Draw the category donut in the terminal with Produce locked
			$ fbcharts render categories --format term --lock Produce

			# Rasterize the history chart half way through its entrance
			$ fbcharts render history --format png --at 600ms

			# Re-render whenever the payload changes
			$ fbcharts render all --out charts/ --watch
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseCharts(args)
			if err != nil {
				return err
			}
			s, err := cliutil.LoadSettings(cmd)
			if err != nil {
				return err
			}
			backend, err := render.ByName(cliutil.GetString(cmd, config.KeyFormat))
			if err != nil {
				return err
			}

			rec := metrics.New()
			cache, err := render.NewCache(0, rec)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			board, err := cliutil.OpenBoard(fs, s)
			if err != nil {
				return err
			}

			r := &Renderer{
				Fs:      fs,
				Backend: backend,
				Cache:   cache,
				Metrics: rec,
				Out:     out,
				Stdout:  cmd.OutOrStdout(),
				Clock:   animation.Settled,
			}
			if cmd.Flags().Changed("at") {
				r.Clock = animation.Clock(at)
			}
			applyState(board, lock, crosshair)

			if _, err := r.RenderAll(board, ids); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return runWatch(cmd.Context(), r, board, ids, s)
		},
	}

	cmd.Flags().String(config.KeyFormat, "svg", "Output format (svg, png, term)")
	cmd.Flags().Int(config.KeyWidth, 0, "Width of the time series charts")
	cmd.Flags().Int(config.KeyTopN, 0, "Number of categories drawn by categorical charts")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory, or - for standard output")
	cmd.Flags().StringVar(&lock, "lock", "", "Category to lock in the linked category charts")
	cmd.Flags().IntVar(&crosshair, "crosshair", -1, "Sample index to show the shared crosshair at")
	cmd.Flags().DurationVar(&at, "at", 0, "Draw the entrance animation at this time instead of settled")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when the payload file changes")

	return cmd
}

func chartNames() []string {
	names := make([]string, len(charts.ChartIDs))
	for i, id := range charts.ChartIDs {
		names[i] = string(id)
	}
	return names
}

func parseCharts(args []string) ([]charts.ChartID, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "all") {
		return charts.ChartIDs, nil
	}
	ids := make([]charts.ChartID, 0, len(args))
	for _, arg := range args {
		id, err := charts.ParseChartID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func applyState(board *charts.Board, lock string, crosshair int) {
	if lock != "" {
		board.Toggle(charts.ChartCategories, lock)
	}
	if crosshair >= 0 {
		board.Crosshair().Set(crosshair)
	}
}

// Renderer draws charts of a board to files or standard output.
type Renderer struct {
	Fs      afero.Fs
	Backend render.Backend
	Cache   *render.Cache
	Metrics *metrics.Recorder

	// Out is the output directory, or Stdout.
	Out    string
	Stdout io.Writer

	Clock animation.Clock

	mu sync.Mutex
}

// RenderAll renders ids and returns the files written. Charts whose output
// did not change since the last call are not written again.
func (r *Renderer) RenderAll(board *charts.Board, ids []charts.ChartID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	toStdout := r.Out == Stdout || r.Backend.Name() == "term"
	if !toStdout {
		if err := r.Fs.MkdirAll(r.Out, 0o755); err != nil {
			return nil, fmt.Errorf("render: create %s: %w", r.Out, err)
		}
	}

	var written []string
	for _, id := range ids {
		frame, err := board.Frame(id, r.Clock)
		if err != nil {
			return written, err
		}
		cache := r.Cache
		payload, err := json.Marshal(frame)
		if err != nil {
			// Frames holding values JSON cannot encode are drawn every time.
			log.Debug("Not caching", "chart", id, "err", err)
			cache = nil
		}
		key := render.Key(string(id), r.Backend.Name(), payload)

		_, cached := cache.Get(key)
		start := time.Now()
		output, err := cache.Render(key, r.Backend, func() (geometry.Frame, error) { return frame, nil })
		if err != nil {
			return written, fmt.Errorf("render: %s: %w", id, err)
		}
		if !cached {
			r.Metrics.ObserveRender(string(id), r.Backend.Name(), time.Since(start))
		}

		if toStdout {
			if _, err := r.Stdout.Write(output); err != nil {
				return written, fmt.Errorf("render: write %s: %w", id, err)
			}
			continue
		}
		if cached {
			log.Debug("Unchanged", "chart", id)
			continue
		}

		path := filepath.Join(r.Out, FileName(id, frame.Title, r.Backend))
		if err := afero.WriteFile(r.Fs, path, output, 0o644); err != nil {
			return written, fmt.Errorf("render: write %s: %w", path, err)
		}
		log.Info("Rendered", "chart", id, "path", path)
		written = append(written, path)
	}
	return written, nil
}

// FileName names the output file of chart id, e.g.
// "history-daily-items-vs-claims.svg".
func FileName(id charts.ChartID, title string, b render.Backend) string {
	return slug.Make(string(id)+" "+title) + render.Extension(b)
}

func runWatch(ctx context.Context, r *Renderer, board *charts.Board, ids []charts.ChartID, s config.Settings) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger, flush, err := cliutil.NewLogger(s, log.Default(), version.Version)
	if err != nil {
		return err
	}
	defer flush()

	if s.MetricsAddr != "" {
		go func() {
			if err := r.Metrics.Serve(ctx, s.MetricsAddr); err != nil {
				logger.CaptureError(err)
			}
		}()
	}

	loader := dashboard.NewLoader(r.Fs, s.Data)
	task := debounce.NewTask(dashboard.ReloadQuiet)
	go task.Run(ctx)

	reload := func() {
		bundle, err := loader.Load(ctx)
		r.Metrics.Reload(err)
		if err != nil {
			logger.CaptureError(err)
			return
		}
		board.SetBundle(bundle)
		if _, err := r.RenderAll(board, ids); err != nil {
			logger.CaptureError(err, "where", "render.watch")
		}
	}

	w := watcher.New(watcher.WithLogger(logger))
	if err := w.Watch(s.Data, func() { task.Schedule(reload) }); err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Close()

	log.Info("Watching for changes", "path", s.Data)
	<-ctx.Done()
	return nil
}
