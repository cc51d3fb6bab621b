package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Write writes tables to w as an xlsx workbook, one sheet per table with a
// bold, frozen header row.
func Write(w io.Writer, tables []Table) error {
	if len(tables) == 0 {
		return ErrEmpty
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, t.Sheet)
		} else {
			_, err = f.NewSheet(t.Sheet)
		}
		if err != nil {
			return fmt.Errorf("export: sheet %s: %w", t.Sheet, err)
		}
		if err := writeTable(f, t, header); err != nil {
			return fmt.Errorf("export: sheet %s: %w", t.Sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, t Table, style int) error {
	if err := f.SetSheetRow(t.Sheet, "A1", &t.Header); err != nil {
		return err
	}
	if err := f.SetRowStyle(t.Sheet, 1, 1, style); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetPanes(t.Sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
