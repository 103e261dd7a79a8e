// Package stats computes per-column descriptive statistics for a cleaned table.
//
// Numeric columns are summarized over their non-null values with gota series;
// string and boolean columns get unique counts and top-N frequency tables.
package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"awardeda/internal/table"

	"github.com/go-gota/gota/series"
)

const DefaultTopN = 10

type NumericSummary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Nulls  int     `json:"nulls"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type CategoricalSummary struct {
	Name   string      `json:"name"`
	Count  int         `json:"count"`
	Nulls  int         `json:"nulls"`
	Unique int         `json:"unique"`
	Top    []Frequency `json:"top"`
}

type Profile struct {
	Rows        int                  `json:"rows"`
	Columns     int                  `json:"columns"`
	Numeric     []NumericSummary     `json:"numeric"`
	Categorical []CategoricalSummary `json:"categorical"`
}

// Describe summarizes every column of t. topN <= 0 means DefaultTopN.
func Describe(t *table.Table, topN int) Profile {
	if topN <= 0 {
		topN = DefaultTopN
	}
	rows, cols := t.Shape()
	p := Profile{Rows: rows, Columns: cols}
	for _, c := range t.Columns() {
		if c.Kind.Numeric() {
			p.Numeric = append(p.Numeric, describeNumeric(t, c.Name))
			continue
		}
		p.Categorical = append(p.Categorical, describeCategorical(t, c.Name, topN))
	}
	return p
}

func describeNumeric(t *table.Table, name string) NumericSummary {
	vals := NumericValues(t, name)
	s := NumericSummary{Name: name, Count: len(vals), Nulls: t.Len() - len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Median, s.Std, s.Min, s.Q1, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	ser := series.New(vals, series.Float, name)
	s.Mean = ser.Mean()
	s.Median = ser.Median()
	s.Std = ser.StdDev()
	s.Min = ser.Min()
	s.Max = ser.Max()
	s.Q1 = quantile(vals, 0.25)
	s.Q3 = quantile(vals, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks at (n-1)*q,
// (Hyndman-Fan type 7, the usual default for "25%" and "75%" summaries).
func quantile(vals []float64, q float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

func describeCategorical(t *table.Table, name string, topN int) CategoricalSummary {
	all := Frequencies(t, name)
	s := CategoricalSummary{Name: name, Unique: len(all)}
	for _, f := range all {
		s.Count += f.Count
	}
	s.Nulls = t.Len() - s.Count
	if len(all) > topN {
		all = all[:topN]
	}
	s.Top = all
	return s
}

// NumericValues parses the non-null cells of a column as float64. Cells that
// do not parse are skipped.
func NumericValues(t *table.Table, name string) []float64 {
	var out []float64
	for _, v := range t.Values(name) {
		if !v.Valid {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Frequencies counts the non-null values of a column, most frequent first.
// Ties keep the order in which values first appear.
func Frequencies(t *table.Table, name string) []Frequency {
	counts := make(map[string]int)
	var order []string
	for _, v := range t.Values(name) {
		if !v.Valid {
			continue
		}
		if _, ok := counts[v.Text]; !ok {
			order = append(order, v.Text)
		}
		counts[v.Text]++
	}
	out := make([]Frequency, len(order))
	for i, k := range order {
		out[i] = Frequency{Value: k, Count: counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopValues returns at most n entries of Frequencies.
func TopValues(t *table.Table, name string, n int) []Frequency {
	all := Frequencies(t, name)
	if n > 0 && len(all) > n {
		return all[:n]
	}
	return all
}
