package risk

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/cliutil"
)

// NewRiskCmd creates the risk command
func NewRiskCmd() *cobra.Command {
	var (
		sortBy   string
		asc      bool
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "List the items most likely to expire unclaimed",
		Long:  `List the items of the risk payload, sorted by a column and optionally narrowed to one category.`,
		Example: heredoc.Doc(`
			# Riskiest items first
			$ fbcharts risk

			# Bakery items with the fewest hours left
			$ fbcharts risk --category Bakery --sort hours_left --asc

			# Titles only
			$ fbcharts risk --limit 5 --template '{{range .}}{{.Title}}{{"\n"}}{{end}}'
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := analytics.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			s, err := cliutil.LoadSettings(cmd)
			if err != nil {
				return err
			}
			bundle, err := analytics.Load(afero.NewOsFs(), s.Data)
			if err != nil {
				return err
			}
			return cliutil.HandleOutput(cmd, Items(bundle, analytics.Sort{Key: key, Desc: !asc}, category, limit))
		},
	}

	cliutil.AddOutputFlags(cmd)
	cmd.Flags().StringVar(&sortBy, "sort", string(analytics.SortRiskScore), "Column to sort by (item, category, quantity, hours_left, risk_score)")
	cmd.Flags().BoolVar(&asc, "asc", false, "Sort ascending")
	cmd.Flags().StringVar(&category, "category", "", "Only list items of this category")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of items, 0 for all")

	return cmd
}

// Items returns the risk items of bundle in order, narrowed to category
// when it is set and cut to limit when it is positive.
func Items(bundle *analytics.Bundle, order analytics.Sort, category string, limit int) []analytics.RiskItem {
	var items []analytics.RiskItem
	if bundle.Risk != nil {
		items = bundle.Risk.Items
	}
	items = order.Apply(analytics.FilterByCategory(items, category))
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []analytics.RiskItem{}
	}
	return items
}
