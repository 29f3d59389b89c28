package provider

import (
	"context"
	"fmt"
	"math"

	"datasight/domain/analysis"
	"datasight/domain/dataset"
	"datasight/ports"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Fallback is the offline provider. It runs a small deterministic analysis over
// the rows and always succeeds.
type Fallback struct{}

// NewFallback creates the offline provider
func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Name() string { return analysis.FallbackProviderName }

// numericColumn is a column whose non-empty cells all parse as numbers
type numericColumn struct {
	index  int
	header string
	values []float64
}

// Analyze ignores ctx: the computation is bounded by the dataset size
func (f *Fallback) Analyze(_ context.Context, ds dataset.Dataset) analysis.ProviderResult {
	rows, cols := ds.RowCount(), ds.ColumnCount()
	numeric := detectNumeric(ds)
	missing := missingPerColumn(ds)

	totalMissing := 0
	for _, n := range missing {
		totalMissing += n
	}

	p := analysis.Payload{
		Summary: fmt.Sprintf("Dataset contains %d rows and %d columns, %d of which are numeric.",
			rows, cols, len(numeric)),
	}

	p.Insights = append(p.Insights, fmt.Sprintf("%d numeric and %d non-numeric columns detected.",
		len(numeric), cols-len(numeric)))
	for _, col := range numeric {
		summary, ok := describeColumn(col)
		if !ok {
			continue
		}
		p.Statistics = append(p.Statistics, summary)
		if summary["mean"] == nil {
			p.Insights = append(p.Insights, fmt.Sprintf("%s holds values too large to summarise.", col.header))
			continue
		}
		p.Insights = append(p.Insights, fmt.Sprintf("%s averages %v (median %v, range %v to %v).",
			col.header, summary["mean"], summary["median"], summary["min"], summary["max"]))
	}

	p.Trends = trends(ds, numeric)

	if rows == 0 {
		p.QualityIssues = append(p.QualityIssues, "Dataset has no data rows.")
	}
	for i, n := range missing {
		if n > 0 {
			p.QualityIssues = append(p.QualityIssues, fmt.Sprintf("Column %s has %d missing values.", ds.Headers[i], n))
		}
	}

	p.Recommendations = []string{
		"Review the column types before building charts.",
		"Connect an AI provider for a narrative analysis of this dataset.",
	}
	if totalMissing > 0 {
		p.Recommendations = append(p.Recommendations, "Fill or drop missing values before computing aggregates.")
	}
	if len(numeric) > 0 {
		p.Recommendations = append(p.Recommendations, "Check numeric columns for outliers.")
	}

	p.BusinessApplications = []string{
		"Operational reporting dashboards",
		"Baseline metrics for period-over-period comparison",
	}
	if len(numeric) >= 2 {
		p.BusinessApplications = append(p.BusinessApplications, "Driver analysis between related metrics")
	}

	return analysis.Success(f.Name(), p)
}

func detectNumeric(ds dataset.Dataset) []numericColumn {
	var out []numericColumn
	for i, h := range ds.Headers {
		var values []float64
		numeric := true
		for _, cell := range ds.Column(i) {
			if dataset.IsEmpty(cell) {
				continue
			}
			v, ok := dataset.ToFloat(cell)
			if !ok {
				numeric = false
				break
			}
			values = append(values, v)
		}
		if numeric && len(values) > 0 {
			out = append(out, numericColumn{index: i, header: h, values: values})
		}
	}
	return out
}

func missingPerColumn(ds dataset.Dataset) []int {
	missing := make([]int, ds.ColumnCount())
	for _, row := range ds.Rows {
		for i := range missing {
			if i >= len(row) || dataset.IsEmpty(row[i]) {
				missing[i]++
			}
		}
	}
	return missing
}

// describeColumn summarises one numeric column. Figures that overflow float64
// are reported as nil so the payload stays JSON-encodable.
func describeColumn(col numericColumn) (analysis.Statistic, bool) {
	data := stats.Float64Data(col.values)
	mean, err := data.Mean()
	if err != nil {
		return nil, false
	}
	median, _ := data.Median()
	minV, _ := data.Min()
	maxV, _ := data.Max()
	stdDev, _ := data.StandardDeviation()

	return analysis.Statistic{
		"column": col.header,
		"count":  len(col.values),
		"mean":   round(mean),
		"median": round(median),
		"min":    round(minV),
		"max":    round(maxV),
		"stdDev": round(stdDev),
	}, true
}

// maxRoundable keeps v*10^4 inside float64 range
const maxRoundable = 1e300

// round returns v to 4 decimal places, or nil when v is not finite
func round(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if math.Abs(v) > maxRoundable {
		return v
	}
	r, err := stats.Round(v, 4)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return v
	}
	return r
}

func trends(ds dataset.Dataset, numeric []numericColumn) []string {
	var out []string

	if col, ok := firstWithValues(numeric, 4); ok {
		half := len(col.values) / 2
		first, _ := stats.Mean(col.values[:half])
		second, _ := stats.Mean(col.values[half:])
		switch {
		case second > first:
			out = append(out, fmt.Sprintf("%s is higher in the second half of the rows.", col.header))
		case second < first:
			out = append(out, fmt.Sprintf("%s is lower in the second half of the rows.", col.header))
		}
	}

	if len(numeric) >= 2 {
		x, y := numeric[0], numeric[1]
		if r, ok := correlation(ds, x.index, y.index); ok {
			out = append(out, fmt.Sprintf("%s and %s are %s (r = %.2f).", x.header, y.header, strength(r), r))
		}
	}
	return out
}

// firstWithValues returns the first column holding at least n values
func firstWithValues(numeric []numericColumn, n int) (numericColumn, bool) {
	for _, col := range numeric {
		if len(col.values) >= n {
			return col, true
		}
	}
	return numericColumn{}, false
}

// correlation uses only rows where both columns hold a number
func correlation(ds dataset.Dataset, xi, yi int) (float64, bool) {
	var x, y []float64
	for _, row := range ds.Rows {
		if xi >= len(row) || yi >= len(row) {
			continue
		}
		xv, okX := dataset.ToFloat(row[xi])
		yv, okY := dataset.ToFloat(row[yi])
		if okX && okY {
			x = append(x, xv)
			y = append(y, yv)
		}
	}
	if len(x) < 3 {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func strength(r float64) string {
	dir := "positively"
	if r < 0 {
		dir = "negatively"
	}
	switch a := math.Abs(r); {
	case a >= 0.7:
		return "strongly " + dir + " correlated"
	case a >= 0.3:
		return "moderately " + dir + " correlated"
	default:
		return "weakly correlated"
	}
}

var _ ports.ProviderClient = (*Fallback)(nil)
