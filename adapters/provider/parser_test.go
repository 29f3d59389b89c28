package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_Strict(t *testing.T) {
	raw := "Here is the analysis:\n```json\n" + `{
		"summary": "Sales grow steadily.",
		"insights": ["Q4 is strongest", {"insight": "North leads"}],
		"trends": "Upward",
		"qualityIssues": [],
		"statistics": [{"column": "Sales", "mean": 12.5}, "not an object"],
		"business_applications": ["Forecasting"]
	}` + "\n```\nLet me know if you need more."

	p, structured := ParsePayload(raw)
	require.True(t, structured)

	assert.Equal(t, "Sales grow steadily.", p.Summary)
	assert.Equal(t, []string{"Q4 is strongest", "North leads"}, p.Insights)
	assert.Equal(t, []string{"Upward"}, p.Trends)
	assert.Empty(t, p.QualityIssues)
	require.Len(t, p.Statistics, 1)
	assert.Equal(t, "Sales", p.Statistics[0]["column"])
	assert.Equal(t, 12.5, p.Statistics[0]["mean"])
	assert.Equal(t, []string{"Forecasting"}, p.BusinessApplications)
}

func TestParsePayload_BracesInsideStrings(t *testing.T) {
	raw := `{"summary": "uses {curly} braces and \"quotes\"", "insights": ["a}b"]} trailing {junk`

	p, structured := ParsePayload(raw)
	require.True(t, structured)
	assert.Equal(t, `uses {curly} braces and "quotes"`, p.Summary)
	assert.Equal(t, []string{"a}b"}, p.Insights)
}

func TestParsePayload_Lenient(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "The data looks fine overall."},
		{"unbalanced", `{"summary": "cut off`},
		{"invalid json", `{summary: nope}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, structured := ParsePayload(tt.raw)
			assert.False(t, structured)
			assert.Equal(t, tt.raw, p.Summary)
			assert.Equal(t, []string{tt.raw}, p.Insights)
		})
	}
}

func TestParsePayload_LenientTruncatesSummary(t *testing.T) {
	raw := strings.Repeat("é", 250)

	p, structured := ParsePayload(raw)
	require.False(t, structured)
	assert.Equal(t, strings.Repeat("é", SummaryPrefixRunes)+"...", p.Summary)
	assert.Equal(t, []string{raw}, p.Insights)
}
