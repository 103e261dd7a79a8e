package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"awardeda/internal/clean"
	"awardeda/internal/stats"
	"awardeda/internal/table"

	"github.com/olekukonko/tablewriter"
)

// newTable returns a tablewriter table. Markdown tables use pipe borders
// without the top and bottom rules.
func newTable(w io.Writer, header []string, markdown bool) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	if markdown {
		tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tw.SetCenterSeparator("|")
	}
	return tw
}

func cell(s string, markdown bool) string {
	if markdown {
		return strings.ReplaceAll(s, "|", `\|`)
	}
	return s
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeNullTable(w io.Writer, nulls []table.ColumnNulls, markdown bool) {
	tw := newTable(w, []string{"Column", "Non-Null", "Null", "Dtype"}, markdown)
	for _, n := range nulls {
		tw.Append([]string{cell(n.Name, markdown), strconv.Itoa(n.NonNull), strconv.Itoa(n.Null), n.Kind})
	}
	tw.Render()
}

func writeStepTable(w io.Writer, steps []clean.StepResult, markdown bool) {
	tw := newTable(w, []string{"Step", "Rows In", "Rows Out", "Dropped", "Cells Changed"}, markdown)
	for _, r := range steps {
		tw.Append([]string{
			r.StepID,
			strconv.Itoa(r.RowsIn),
			strconv.Itoa(r.RowsOut),
			strconv.Itoa(r.RowsDropped()),
			strconv.Itoa(r.CellsChanged),
		})
	}
	tw.Render()
}

func writeNumericTable(w io.Writer, nums []stats.NumericSummary, markdown bool) {
	tw := newTable(w, []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}, markdown)
	for _, n := range nums {
		tw.Append([]string{
			cell(n.Name, markdown),
			strconv.Itoa(n.Count),
			formatFloat(n.Mean),
			formatFloat(n.Std),
			formatFloat(n.Min),
			formatFloat(n.Q1),
			formatFloat(n.Median),
			formatFloat(n.Q3),
			formatFloat(n.Max),
		})
	}
	tw.Render()
}

func writeUniqueTable(w io.Writer, cats []stats.CategoricalSummary, markdown bool) {
	tw := newTable(w, []string{"Column", "Non-Null", "Null", "Unique"}, markdown)
	for _, c := range cats {
		tw.Append([]string{cell(c.Name, markdown), strconv.Itoa(c.Count), strconv.Itoa(c.Nulls), strconv.Itoa(c.Unique)})
	}
	tw.Render()
}

func writeFrequencyTable(w io.Writer, top []stats.Frequency, markdown bool) {
	tw := newTable(w, []string{"Value", "Count"}, markdown)
	for _, f := range top {
		tw.Append([]string{cell(f.Value, markdown), strconv.Itoa(f.Count)})
	}
	tw.Render()
}

func centralTendency(n stats.NumericSummary) string {
	return fmt.Sprintf("%s: mean=%s, median=%s, std=%s", n.Name, formatFloat(n.Mean), formatFloat(n.Median), formatFloat(n.Std))
}

func shape(rows, cols int) string {
	return fmt.Sprintf("(%d, %d)", rows, cols)
}
