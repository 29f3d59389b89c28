package app

import (
	"fmt"
	"strings"

	"datasight/domain/analysis"
	"datasight/domain/core"
)

// Merge combines successful results, in the order given, into one analysis.
// Summaries are joined with a space, list fields are deduplicated by exact
// value and capped, statistics are deduplicated by their canonical JSON.
func Merge(results []analysis.ProviderResult) analysis.CombinedAnalysis {
	combined := analysis.CombinedAnalysis{Providers: []string{}}

	var summaries []string
	insights := newStringSet(analysis.MaxInsights)
	trends := newStringSet(analysis.MaxTrends)
	quality := newStringSet(analysis.MaxQualityIssues)
	recs := newStringSet(analysis.MaxRecommendations)
	apps := newStringSet(analysis.MaxBusinessApplications)
	seenStats := make(map[string]bool)

	for _, r := range results {
		if !r.OK() {
			continue
		}
		combined.Providers = append(combined.Providers, r.ProviderName)
		p := r.Payload

		if s := strings.TrimSpace(p.Summary); s != "" {
			summaries = append(summaries, s)
		}
		insights.addAll(p.Insights)
		trends.addAll(p.Trends)
		quality.addAll(p.QualityIssues)
		recs.addAll(p.Recommendations)
		apps.addAll(p.BusinessApplications)

		for _, st := range p.Statistics {
			key := statisticKey(st)
			if seenStats[key] {
				continue
			}
			seenStats[key] = true
			combined.Statistics = append(combined.Statistics, st)
		}
	}

	combined.Summary = strings.Join(summaries, " ")
	combined.Insights = insights.items
	combined.Trends = trends.items
	combined.QualityIssues = quality.items
	combined.Recommendations = recs.items
	combined.BusinessApplications = apps.items
	return combined
}

func statisticKey(st analysis.Statistic) string {
	h, err := core.HashJSON(st)
	if err != nil {
		return fmt.Sprintf("%v", st)
	}
	return h.String()
}

// stringSet keeps first-seen order up to a cap
type stringSet struct {
	limit int
	seen  map[string]bool
	items []string
}

func newStringSet(limit int) *stringSet {
	return &stringSet{limit: limit, seen: make(map[string]bool)}
}

func (s *stringSet) addAll(values []string) {
	for _, v := range values {
		if len(s.items) >= s.limit {
			return
		}
		if s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
