package output

import (
	"math"

	"awardeda/internal/clean"
	"awardeda/internal/stats"
	"awardeda/internal/table"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

// runEvents is a complete successful run as the engine emits it.
func runEvents(chartPath string) []Event {
	nulls := func(film int) []table.ColumnNulls {
		return []table.ColumnNulls{
			{Name: "year_film", Kind: "int64", NonNull: 4},
			{Name: "film", Kind: "object", NonNull: 4 - film, Null: film},
		}
	}
	sum := &clean.Summary{
		Before: clean.Snapshot{Rows: 4, Columns: 2, Nulls: nulls(1)},
		After:  clean.Snapshot{Rows: 2, Columns: 2, Nulls: nulls(0)},
		Steps: []clean.StepResult{
			{StepID: "drop-missing-required", RowsIn: 4, RowsOut: 3},
			{StepID: "trim-whitespace", RowsIn: 3, RowsOut: 3, CellsChanged: 1},
			{StepID: "drop-duplicates", RowsIn: 3, RowsOut: 2},
		},
	}
	prof := &stats.Profile{
		Rows:    2,
		Columns: 2,
		Numeric: []stats.NumericSummary{
			{Name: "year_film", Count: 2, Mean: 1927.5, Median: 1927.5, Std: 0.71, Min: 1927, Q1: 1927, Q3: 1928, Max: 1928},
		},
		Categorical: []stats.CategoricalSummary{
			{Name: "film", Count: 2, Unique: 2, Top: []stats.Frequency{{Value: "Wings", Count: 1}, {Value: "7th Heaven", Count: 1}}},
		},
	}
	return []Event{
		{Type: EventRunStarted, Input: "data/awards.csv"},
		{Type: EventLoadFinished, Load: &LoadInfo{Path: "data/awards.csv", Rows: 4, Columns: 2}},
		{Type: EventCleanFinished, Clean: sum},
		{Type: EventProfileReady, Profile: prof},
		{Type: EventArtifactWritten, Artifact: &Artifact{Kind: ArtifactChart, Path: chartPath}},
		{Type: EventArtifactFailed, Artifact: &Artifact{Kind: ArtifactCSV, Path: "out/cleaned.csv", Error: "permission denied"}},
		{Type: EventRunFinished, ExitCode: 2},
	}
}

func noDataEvents() []Event {
	return []Event{
		{Type: EventRunStarted, Input: "missing.csv"},
		{Type: EventLoadFailed, Error: "open missing.csv: no such file or directory"},
		{Type: EventRunFinished},
	}
}

// emptyNumeric has NaN statistics, which the json formats must still encode.
func emptyNumeric() Event {
	nan := math.NaN()
	return Event{Type: EventProfileReady, Profile: &stats.Profile{
		Numeric: []stats.NumericSummary{{Name: "year_film", Mean: nan, Median: nan, Std: nan, Min: nan, Q1: nan, Q3: nan, Max: nan}},
	}}
}
