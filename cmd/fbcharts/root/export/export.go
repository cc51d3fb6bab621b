package export

import (
	"bytes"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kedarrpandya/foodbridge/internal/analytics"
	"github.com/kedarrpandya/foodbridge/internal/cliutil"
	"github.com/kedarrpandya/foodbridge/internal/export"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the chart data to an Excel workbook",
		Long:  `Write the data behind every chart to an .xlsx workbook, one sheet per chart.`,
		Example: heredoc.Doc(`
			$ fbcharts export --out analytics.xlsx
			$ fbcharts export --data analytics.yaml -o report.xlsx
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cliutil.LoadSettings(cmd)
			if err != nil {
				return err
			}
			fs := afero.NewOsFs()
			bundle, err := analytics.Load(fs, s.Data)
			if err != nil {
				return err
			}
			return Run(fs, bundle, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "analytics.xlsx", "Path of the workbook to write")

	return cmd
}

// Run writes the workbook of bundle to path.
func Run(fs afero.Fs, bundle *analytics.Bundle, path string) error {
	tables := export.Tables(bundle)

	var buf bytes.Buffer
	if err := export.Write(&buf, tables); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	log.Info("Exported", "path", path, "sheets", len(tables))
	return nil
}
