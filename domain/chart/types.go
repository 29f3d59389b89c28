package chart

// Type is the closed set of chart kinds the recommender can suggest. Adding a
// kind means adding a variant here and a template in the recommender.
type Type string

const (
	Bar       Type = "bar"
	Line      Type = "line"
	Pie       Type = "pie"
	Doughnut  Type = "doughnut"
	PolarArea Type = "polarArea"
	Radar     Type = "radar"
	Scatter   Type = "scatter"
	Bubble    Type = "bubble"
	Area      Type = "area"
	Funnel    Type = "funnel"
	Waterfall Type = "waterfall"
	Heatmap   Type = "heatmap"
)

// AllTypes lists every chart kind in declaration order
var AllTypes = []Type{Bar, Line, Pie, Doughnut, PolarArea, Radar, Scatter, Bubble, Area, Funnel, Waterfall, Heatmap}

// Valid reports whether t belongs to the closed set
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Recommendation is one ranked chart suggestion
type Recommendation struct {
	ChartType        Type     `json:"chartType"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	BestFor          []string `json:"bestFor"`
	DataRequirements []string `json:"dataRequirements"`
	Example          string   `json:"example"`
}
