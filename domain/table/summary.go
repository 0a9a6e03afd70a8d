package table

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// CostSummary aggregates the parseable cost values of a view for the
// search-result panel.
type CostSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// SummarizeCost computes a CostSummary over the table's standardized cost
// column. Missing and unparseable values are skipped; the second return is
// false when no value parses at all (including the column being absent).
func SummarizeCost(t Table) (CostSummary, bool) {
	values := make(stats.Float64Data, 0, len(t.Rows))
	for _, row := range t.Rows {
		raw := strings.TrimSpace(row.Get(CostColumn))
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return CostSummary{}, false
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return CostSummary{}, false
	}
	min, err := stats.Min(values)
	if err != nil {
		return CostSummary{}, false
	}
	max, err := stats.Max(values)
	if err != nil {
		return CostSummary{}, false
	}

	return CostSummary{
		Count: len(values),
		Mean:  mean,
		Min:   min,
		Max:   max,
	}, true
}
