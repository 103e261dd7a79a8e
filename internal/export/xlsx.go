package export

import (
	"fmt"
	"math"

	"awardeda/internal/stats"
	"awardeda/internal/table"

	"github.com/xuri/excelize/v2"
)

const (
	CleanedSheet = "cleaned"
	SummarySheet = "summary"
)

// WriteXLSX writes t to a "cleaned" sheet with typed cells and, when p is not
// nil, the numeric statistics to a "summary" sheet.
func WriteXLSX(path string, t *table.Table, p *stats.Profile) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CleanedSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := t.Columns()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(CleanedSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := t.Row(i)
		vals := make([]any, len(r))
		for j, v := range r {
			vals[j] = typed(cols[j].Kind, v)
		}
		if err := f.SetSheetRow(CleanedSheet, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if p != nil {
		if err := writeSummarySheet(f, p); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, p *stats.Profile) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	header := []any{"column", "count", "nulls", "mean", "median", "std", "min", "25%", "75%", "max"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	for i, n := range p.Numeric {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{n.Name, n.Count, n.Nulls, cellFloat(n.Mean), cellFloat(n.Median), cellFloat(n.Std),
			cellFloat(n.Min), cellFloat(n.Q1), cellFloat(n.Q3), cellFloat(n.Max)}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellFloat maps NaN to an empty cell; excelize cannot store NaN.
func cellFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
