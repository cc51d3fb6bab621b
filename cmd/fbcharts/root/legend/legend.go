package legend

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kedarrpandya/foodbridge/internal/animation"
	"github.com/kedarrpandya/foodbridge/internal/charts"
	"github.com/kedarrpandya/foodbridge/internal/cliutil"
	"github.com/kedarrpandya/foodbridge/internal/config"
	"github.com/kedarrpandya/foodbridge/internal/legend"
)

// Description is the legend and tooltip content of one chart. Only the
// fields that apply to the chart are set.
type Description struct {
	Chart   charts.ChartID      `json:"chart" yaml:"chart"`
	Title   string              `json:"title,omitempty" yaml:"title,omitempty"`
	Legend  *legend.Legend      `json:"legend,omitempty" yaml:"legend,omitempty"`
	Rows    []charts.CompareRow `json:"rows,omitempty" yaml:"rows,omitempty"`
	KPIs    []KPI               `json:"kpis,omitempty" yaml:"kpis,omitempty"`
	Ranks   []charts.Rank       `json:"ranks,omitempty" yaml:"ranks,omitempty"`
	Buckets []charts.Bucket     `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Tooltip []string            `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Caption string              `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// KPI is a headline number as printed, with its trend delta.
type KPI struct {
	charts.KPI `yaml:",inline"`
	Display    string `json:"display" yaml:"display"`
	Delta      string `json:"delta,omitempty" yaml:"delta,omitempty"`
}

// NewLegendCmd creates the legend command
func NewLegendCmd() *cobra.Command {
	var (
		index int
		label string
	)

	cmd := &cobra.Command{
		Use:   "legend <chart>",
		Short: "Print the legend and tooltip of a chart",
		Long: heredoc.Doc(`
			Print the legend rows of a chart as JSON or YAML. With --index the
			tooltip shown at that sample, cell or bar is included, and with
			--label the tooltip or caption of that category or bar.
		`),
		Example: heredoc.Doc(`
			# Legend of the category donut
			$ fbcharts legend categories

			# Crosshair tooltip of the third day
			$ fbcharts legend history --index 2 --format yaml

			# Caption of a selected hourly bar
			$ fbcharts legend hourly --label 18h --template '{{.Caption}}'
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := charts.ParseChartID(args[0])
			if err != nil {
				return err
			}
			s, err := cliutil.LoadSettings(cmd)
			if err != nil {
				return err
			}
			board, err := cliutil.OpenBoard(afero.NewOsFs(), s)
			if err != nil {
				return err
			}
			d, err := Describe(board, id, index, label)
			if err != nil {
				return err
			}
			return cliutil.HandleOutput(cmd, d)
		},
	}

	cliutil.AddOutputFlags(cmd)
	cmd.Flags().Int(config.KeyTopN, 0, "Number of categories listed by categorical charts")
	cmd.Flags().IntVar(&index, "index", -1, "Include the tooltip at this sample, cell or bar")
	cmd.Flags().StringVar(&label, "label", "", "Include the tooltip or caption of this category or bar")

	return cmd
}

// Describe collects the legend of chart id. A negative index and an empty
// label leave the tooltip out.
func Describe(board *charts.Board, id charts.ChartID, index int, label string) (Description, error) {
	d := Description{Chart: id}

	switch id {
	case charts.ChartKPIs:
		for _, k := range board.KPIs() {
			d.KPIs = append(d.KPIs, KPI{KPI: k, Display: k.Display(animation.Settled), Delta: k.Delta()})
		}

	case charts.ChartHistory, charts.ChartForecast:
		p := board.HistoryProps()
		if id == charts.ChartForecast {
			p = board.ForecastProps()
		}
		d.Title = p.Title
		if index >= 0 && p.Indexable() > 0 {
			d.Tooltip = p.Tooltip(index).Lines()
		}

	case charts.ChartCategories, charts.ChartClaims:
		p := board.CategoryProps()
		if id == charts.ChartClaims {
			p = board.ClaimProps()
		}
		d.Title = p.Title
		l := p.Legend()
		d.Legend = &l
		d.Tooltip = categoryTooltip(l, index, label)

	case charts.ChartClaimedBar:
		p := board.ClaimedBarProps()
		d.Title = p.Title
		l := legend.Compose(p.Pairs, []string{p.Color}, p.TopN)
		d.Legend = &l
		d.Tooltip = categoryTooltip(l, index, label)

	case charts.ChartCompare:
		p := board.CompareProps()
		d.Title = p.Title
		d.Rows = p.Rows()
		for i, r := range d.Rows {
			if i == index || r.Label == label {
				d.Tooltip = append(d.Tooltip, r.Label+": "+legend.CompareRow(r.Created, r.Claimed))
			}
		}

	case charts.ChartCohorts:
		p := board.HeatmapProps()
		d.Title = p.Title
		if p.Has(index) {
			d.Tooltip = []string{p.Tooltip(index)}
		}

	case charts.ChartHourly, charts.ChartDaily:
		p := charts.HourlyPrediction(board.Bundle().Predictions)
		if id == charts.ChartDaily {
			p = charts.DailyPrediction(board.Bundle().Predictions)
		}
		d.Title = p.Title
		d.Buckets = p.Buckets
		for i, b := range p.Buckets {
			if i == index || b.Label == label || b.Name == label {
				d.Tooltip = append(d.Tooltip, legend.PredictionTooltip(b.Count))
			}
		}
		d.Caption = charts.PredictionCaption(p, label)

	case charts.ChartDonationLocations, charts.ChartClaimLocations, charts.ChartDonors, charts.ChartRecipients:
		d.Ranks = board.Ranks(id)

	default:
		return Description{}, fmt.Errorf("legend: unknown chart %q", id)
	}
	return d, nil
}

func categoryTooltip(l legend.Legend, index int, label string) []string {
	var lines []string
	for i, e := range l.Entries {
		if i == index || e.Label == label {
			lines = append(lines, legend.CategoryTooltip(e.Label, e.Value, l.Total))
		}
	}
	return lines
}
