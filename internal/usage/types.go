package usage

import "time"

// ProviderUsage aggregates token counts for one provider
type ProviderUsage struct {
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	Calls            int       `json:"calls"`
	PromptTokens     int       `json:"promptTokens"`
	CompletionTokens int       `json:"completionTokens"`
	TotalTokens      int       `json:"totalTokens"`
	LastCallAt       time.Time `json:"lastCallAt"`
}

// Summary is a point-in-time view of all recorded usage
type Summary struct {
	Providers   []ProviderUsage `json:"providers"`
	Calls       int             `json:"calls"`
	TotalTokens int             `json:"totalTokens"`
}
