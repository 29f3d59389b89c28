package ports

import (
	"datasight/domain/chart"
	"datasight/domain/profile"
)

// RecommenderPort turns a profile into ranked chart suggestions
type RecommenderPort interface {
	Recommend(p *profile.DataProfile) []chart.Recommendation
}
