package recommend

import (
	"fmt"
	"sort"
	"strings"

	"datasight/domain/chart"
	"datasight/domain/profile"
)

// fallbackConfidence is used for the bar chart suggested when no rule fires
const fallbackConfidence = 0.5

// facts are the profile-derived values every rule condition reads
type facts struct {
	profile        *profile.DataProfile
	numericColumns []string
	dateColumns    []string
}

// rule appends at most one recommendation when its condition holds
type rule struct {
	chartType   chart.Type
	confidence  float64
	title       string
	description string
	applies     func(f facts) bool
	reasoning   func(f facts) string
}

// rules are evaluated in order; the order is also the tie-break for equal confidence
var rules = []rule{
	{
		chartType:  chart.Line,
		confidence: 0.95,
		applies:    timeSeriesWithNumbers,
		reasoning: func(f facts) string {
			return fmt.Sprintf("%s is tracked over %s, so a line chart shows the trend over time.",
				describe(f.numericColumns), describe(f.dateColumns))
		},
	},
	{
		chartType:  chart.Area,
		confidence: 0.85,
		applies:    timeSeriesWithNumbers,
		reasoning: func(f facts) string {
			return fmt.Sprintf("Filling under %s over time emphasises cumulative volume.", describe(f.numericColumns))
		},
	},
	{
		chartType:  chart.Bar,
		confidence: 0.90,
		applies:    categoriesWithNumbers,
		reasoning: func(f facts) string {
			return "Categorical columns with numeric measures are best compared side by side as bars."
		},
	},
	{
		chartType:  chart.Pie,
		confidence: 0.80,
		applies:    categoriesWithNumbers,
		reasoning: func(f facts) string {
			return "A small set of categories with a numeric measure can be shown as proportions of the whole."
		},
	},
	{
		chartType:  chart.Doughnut,
		confidence: 0.75,
		applies:    categoriesWithNumbers,
		reasoning: func(f facts) string {
			return "Proportions of the whole, leaving the center free for a total or label."
		},
	},
	{
		chartType:  chart.PolarArea,
		confidence: 0.70,
		applies:    categoriesWithNumbers,
		reasoning: func(f facts) string {
			return "Combines category membership with magnitude in a single radial view."
		},
	},
	{
		chartType:  chart.Radar,
		confidence: 0.80,
		applies: func(f facts) bool {
			return f.profile.HasCategories && f.profile.ColumnCount() >= 3
		},
		reasoning: func(f facts) string {
			return fmt.Sprintf("%d columns per category allow a multi-metric comparison.", f.profile.ColumnCount())
		},
	},
	{
		chartType:  chart.Scatter,
		confidence: 0.90,
		applies:    multipleNumbers,
		reasoning: func(f facts) string {
			return fmt.Sprintf("Plotting %s against each other reveals correlation.", describe(f.numericColumns))
		},
	},
	{
		chartType:  chart.Bubble,
		confidence: 0.80,
		applies:    multipleNumbers,
		reasoning: func(f facts) string {
			return "Several numeric columns support a three-dimensional comparison using bubble size."
		},
	},
	{
		chartType:   chart.Bar,
		confidence:  0.85,
		title:       "Geographic Distribution",
		description: "Compares values across regions with one bar per location.",
		applies: func(f facts) bool {
			return f.profile.HasGeographic
		},
		reasoning: func(f facts) string {
			return "Location columns were detected; a bar per region compares them without requiring a map renderer."
		},
	},
	{
		chartType:   chart.Bar,
		confidence:  0.80,
		title:       "Value Distribution",
		description: "Buckets numeric values into ranges to show how they are distributed.",
		applies:     largeNumericSample,
		reasoning: func(f facts) string {
			return fmt.Sprintf("%d rows are enough to show the distribution of %s.", f.profile.SampleSize, describe(f.numericColumns))
		},
	},
	{
		chartType:   chart.Scatter,
		confidence:  0.75,
		title:       "Statistical Scatter",
		description: "Plots every observation to surface outliers and spread.",
		applies:     largeNumericSample,
		reasoning: func(f facts) string {
			return fmt.Sprintf("With %d observations a point cloud makes outliers easy to spot.", f.profile.SampleSize)
		},
	},
	{
		chartType:  chart.Funnel,
		confidence: 0.70,
		applies:    categoriesWithNumbers,
		reasoning: func(f facts) string {
			return "If the categories are sequential stages, a funnel shows drop-off between them."
		},
	},
	{
		chartType:  chart.Waterfall,
		confidence: 0.70,
		applies:    categoriesWithNumbers,
		reasoning: func(f facts) string {
			return "If the categories are sequential steps, a waterfall shows how each one builds the total."
		},
	},
	{
		chartType:  chart.Heatmap,
		confidence: 0.80,
		applies: func(f facts) bool {
			return f.profile.SampleSize > 100 && f.profile.HasCategories && f.profile.HasNumeric
		},
		reasoning: func(f facts) string {
			return fmt.Sprintf("%d rows across categories are dense enough for a heatmap to reveal patterns.", f.profile.SampleSize)
		},
	},
}

func timeSeriesWithNumbers(f facts) bool {
	return f.profile.HasTimeSeries && f.profile.HasNumeric
}

func categoriesWithNumbers(f facts) bool {
	return f.profile.HasCategories && f.profile.HasNumeric
}

func multipleNumbers(f facts) bool {
	return len(f.numericColumns) >= 2
}

func largeNumericSample(f facts) bool {
	return f.profile.HasNumeric && f.profile.SampleSize > 50
}

// Engine turns a DataProfile into ranked chart recommendations. It performs no
// I/O and holds no state.
type Engine struct{}

// NewEngine creates a new recommendation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend evaluates every rule against the profile and returns the matches
// sorted by confidence, highest first. Equal confidences keep rule order. When
// nothing matches a single general-purpose bar chart is returned.
func (e *Engine) Recommend(p *profile.DataProfile) []chart.Recommendation {
	if p == nil {
		return []chart.Recommendation{fallbackRecommendation()}
	}

	f := facts{
		profile:        p,
		numericColumns: p.NumericColumns(),
		dateColumns:    p.DateColumns(),
	}

	var recs []chart.Recommendation
	for _, r := range rules {
		if r.applies(f) {
			recs = append(recs, r.build(f))
		}
	}

	if len(recs) == 0 {
		return []chart.Recommendation{fallbackRecommendation()}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

func (r rule) build(f facts) chart.Recommendation {
	tpl := templates[r.chartType]
	title := tpl.title
	if r.title != "" {
		title = r.title
	}
	description := tpl.description
	if r.description != "" {
		description = r.description
	}
	return chart.Recommendation{
		ChartType:        r.chartType,
		Title:            title,
		Description:      description,
		Confidence:       r.confidence,
		Reasoning:        r.reasoning(f),
		BestFor:          append([]string(nil), tpl.bestFor...),
		DataRequirements: append([]string(nil), tpl.dataRequirements...),
		Example:          tpl.example,
	}
}

func fallbackRecommendation() chart.Recommendation {
	tpl := templates[chart.Bar]
	return chart.Recommendation{
		ChartType:        chart.Bar,
		Title:            tpl.title,
		Description:      tpl.description,
		Confidence:       fallbackConfidence,
		Reasoning:        "No specific data pattern was detected, so a general-purpose bar chart is suggested.",
		BestFor:          append([]string(nil), tpl.bestFor...),
		DataRequirements: append([]string(nil), tpl.dataRequirements...),
		Example:          tpl.example,
	}
}

// describe renders a short column list for reasoning text
func describe(columns []string) string {
	switch len(columns) {
	case 0:
		return "the data"
	case 1:
		return columns[0]
	case 2:
		return columns[0] + " and " + columns[1]
	default:
		return strings.Join(columns[:2], ", ") + fmt.Sprintf(" and %d more", len(columns)-2)
	}
}
