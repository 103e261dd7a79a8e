package stats

import (
	"encoding/json"
	"math"
)

// MarshalJSON writes NaN statistics (empty columns) as null, which
// encoding/json cannot represent otherwise.
func (s NumericSummary) MarshalJSON() ([]byte, error) {
	f := func(v float64) *float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		Name   string   `json:"name"`
		Count  int      `json:"count"`
		Nulls  int      `json:"nulls"`
		Mean   *float64 `json:"mean"`
		Median *float64 `json:"median"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		Q1     *float64 `json:"q1"`
		Q3     *float64 `json:"q3"`
		Max    *float64 `json:"max"`
	}{s.Name, s.Count, s.Nulls, f(s.Mean), f(s.Median), f(s.Std), f(s.Min), f(s.Q1), f(s.Q3), f(s.Max)})
}
