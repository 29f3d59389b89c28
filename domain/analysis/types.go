package analysis

// Caps on merged list fields
const (
	MaxInsights             = 10
	MaxTrends               = 8
	MaxQualityIssues        = 6
	MaxRecommendations      = 10
	MaxBusinessApplications = 8
)

// FallbackProviderName is the display name of the offline provider
const FallbackProviderName = "Fallback AI"

// Statistic is one loosely structured statistics object reported by a provider
type Statistic map[string]any

// Payload is the loosely structured body of a successful provider answer.
// Every field is optional.
type Payload struct {
	Summary              string      `json:"summary,omitempty"`
	Insights             []string    `json:"insights,omitempty"`
	Trends               []string    `json:"trends,omitempty"`
	QualityIssues        []string    `json:"qualityIssues,omitempty"`
	Recommendations      []string    `json:"recommendations,omitempty"`
	Statistics           []Statistic `json:"statistics,omitempty"`
	BusinessApplications []string    `json:"businessApplications,omitempty"`
}

// Status tags a ProviderResult
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// ProviderResult is the outcome of one provider call: either a success with a
// payload or a failure with an error message.
type ProviderResult struct {
	ProviderName string   `json:"providerName"`
	Status       Status   `json:"status"`
	Payload      *Payload `json:"payload,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Success builds a successful result
func Success(provider string, payload Payload) ProviderResult {
	return ProviderResult{ProviderName: provider, Status: StatusSuccess, Payload: &payload}
}

// Failure builds a failed result
func Failure(provider, message string) ProviderResult {
	return ProviderResult{ProviderName: provider, Status: StatusFailure, Error: message}
}

// OK reports whether the result is a success carrying a payload
func (r ProviderResult) OK() bool {
	return r.Status == StatusSuccess && r.Payload != nil
}

// CombinedAnalysis is the deduplicated, capped union of every successful payload
type CombinedAnalysis struct {
	Payload
	Providers []string `json:"providers"`
}

// SuperAnalysis is what the orchestrator hands back for one request
type SuperAnalysis struct {
	Primary   ProviderResult   `json:"primary"`
	Secondary []ProviderResult `json:"secondary"`
	Combined  CombinedAnalysis `json:"combined"`
	Failures  []ProviderResult `json:"failures,omitempty"`
}
