// Package chart renders the fixed set of PNG charts for a cleaned award table.
package chart

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"awardeda/internal/stats"
	"awardeda/internal/table"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	YearHistogramFile = "award_count_by_year.png"
	TopFilmsFile      = "top10_films.png"
	TopCategoriesFile = "top10_categories.png"
)

var ErrNoData = errors.New("no values to plot")

type Options struct {
	// TopN bounds the bar charts. Zero means 10.
	TopN   int
	Width  vg.Length
	Height vg.Length
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = 10
	}
	if o.Width == 0 {
		o.Width = 12 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 6 * vg.Inch
	}
	return o
}

// Spec describes one chart image. Render runs a Spec against a table.
type Spec struct {
	File   string
	Render func(path string, t *table.Table, opts Options) error
}

// Specs lists the charts produced for the award dataset, in output order.
func Specs() []Spec {
	return []Spec{
		{File: YearHistogramFile, Render: func(path string, t *table.Table, o Options) error {
			return YearHistogram(path, t, "year_film", o)
		}},
		{File: TopFilmsFile, Render: func(path string, t *table.Table, o Options) error {
			return TopBarChart(path, t, "film", fmt.Sprintf("Top %d films by nominations", o.withDefaults().TopN), o)
		}},
		{File: TopCategoriesFile, Render: func(path string, t *table.Table, o Options) error {
			return TopBarChart(path, t, "category", fmt.Sprintf("Top %d categories by nominations", o.withDefaults().TopN), o)
		}},
	}
}

// Render writes every chart of Specs into dir, creating it if needed, and
// returns the paths written. It stops at the first failure.
func Render(dir string, t *table.Table, opts Options) ([]string, error) {
	var written []string
	for _, s := range Specs() {
		path, err := Write(dir, s, t, opts)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Write renders one chart into dir, creating it if needed, and returns its path.
func Write(dir string, s Spec, t *table.Table, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}
	path := filepath.Join(dir, s.File)
	if err := s.Render(path, t, opts); err != nil {
		return path, fmt.Errorf("%s: %w", s.File, err)
	}
	return path, nil
}

// YearHistogram plots how many rows fall in each year of column, one bin per year.
func YearHistogram(path string, t *table.Table, column string, opts Options) error {
	opts = opts.withDefaults()
	if _, ok := t.Column(column); !ok {
		return fmt.Errorf("column %q not found", column)
	}
	vals := stats.NumericValues(t, column)
	if len(vals) == 0 {
		return ErrNoData
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	bins := int(math.Floor(hi)-math.Floor(lo)) + 1

	p := plot.New()
	p.Title.Text = "Award count by year"
	p.X.Label.Text = column
	p.Y.Label.Text = "records"

	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	p.Add(h)
	return p.Save(opts.Width, opts.Height, path)
}

// TopBarChart plots the most frequent values of column as horizontal bars,
// most frequent at the top.
func TopBarChart(path string, t *table.Table, column, title string, opts Options) error {
	opts = opts.withDefaults()
	if _, ok := t.Column(column); !ok {
		return fmt.Errorf("column %q not found", column)
	}
	top := stats.TopValues(t, column, opts.TopN)
	if len(top) == 0 {
		return ErrNoData
	}

	// NominalY places the first label at the bottom.
	counts := make(plotter.Values, len(top))
	labels := make([]string, len(top))
	for i, f := range top {
		j := len(top) - 1 - i
		counts[j] = float64(f.Count)
		labels[j] = f.Value
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "records"

	bars, err := plotter.NewBarChart(counts, vg.Points(18))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.Horizontal = true
	p.Add(bars)
	p.NominalY(labels...)
	return p.Save(opts.Width, opts.Height, path)
}
