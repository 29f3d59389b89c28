package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"datasight/domain/analysis"
	"datasight/domain/dataset"
	"datasight/internal"
	apperrors "datasight/internal/errors"
	"datasight/ports"
)

// SampleRows is how many leading rows are embedded in the prompt
const SampleRows = 10

// LLMProvider analyses a dataset through one text-generation backend
type LLMProvider struct {
	name      string
	client    ports.LLMClient
	model     string
	maxTokens int
	logger    *internal.Logger
	usage     ports.UsageRecorder
}

// NewLLMProvider wraps a transport as a ProviderClient
func NewLLMProvider(name string, client ports.LLMClient, model string, maxTokens int, logger *internal.Logger) *LLMProvider {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &LLMProvider{
		name:      name,
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// WithUsageRecorder reports token usage of every successful call to r
func (p *LLMProvider) WithUsageRecorder(r ports.UsageRecorder) *LLMProvider {
	p.usage = r
	return p
}

func (p *LLMProvider) Name() string { return p.name }

// Analyze never returns an error; every failure is folded into the result
func (p *LLMProvider) Analyze(ctx context.Context, ds dataset.Dataset) analysis.ProviderResult {
	if p.client == nil {
		return analysis.Failure(p.name, "no client configured")
	}

	prompt, err := BuildPrompt(ds)
	if err != nil {
		return analysis.Failure(p.name, err.Error())
	}

	p.logger.Debug("[LLMProvider] %s: sending %d sampled rows to %s", p.name, len(ds.Head(SampleRows)), p.model)
	resp, err := p.client.ChatCompletionWithUsage(ctx, p.model, prompt, p.maxTokens)
	if err != nil {
		p.logger.Warn("[LLMProvider] %s failed: %v", p.name, err)
		return analysis.Failure(p.name, apperrors.ProviderFailed(p.name, err).Error())
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return analysis.Failure(p.name, "empty reply")
	}
	if resp.Usage != nil {
		p.logger.Debug("[LLMProvider] %s usage: prompt=%d completion=%d total=%d",
			p.name, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
		if p.usage != nil {
			p.usage.RecordUsage(ctx, p.name, resp.Usage)
		}
	}

	payload, structured := ParsePayload(resp.Content)
	if !structured {
		p.logger.Info("[LLMProvider] %s reply was not JSON, wrapping raw text", p.name)
	}
	return analysis.Success(p.name, payload)
}

// BuildPrompt renders the analysis request for a dataset: headers, the total
// row count and the first SampleRows rows keyed by header.
func BuildPrompt(ds dataset.Dataset) (string, error) {
	sample := make([]map[string]any, 0, SampleRows)
	for _, row := range ds.Head(SampleRows) {
		rec := make(map[string]any, len(ds.Headers))
		for i, h := range ds.Headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		sample = append(sample, rec)
	}

	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sample rows: %w", err)
	}
	headersJSON, err := json.Marshal(ds.Headers)
	if err != nil {
		return "", fmt.Errorf("encode headers: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze the following dataset and describe what it contains.\n\n")
	fmt.Fprintf(&b, "Columns: %s\n", headersJSON)
	fmt.Fprintf(&b, "Total rows: %d\n", ds.RowCount())
	fmt.Fprintf(&b, "Sample of the first %d rows:\n%s\n\n", len(sample), sampleJSON)
	b.WriteString(`Respond with a single JSON object and nothing else, using these keys:
{
  "summary": "two or three sentence overview",
  "insights": ["..."],
  "trends": ["..."],
  "qualityIssues": ["..."],
  "recommendations": ["..."],
  "statistics": [{"column": "...", "metric": "...", "value": 0}],
  "businessApplications": ["..."]
}`)
	return b.String(), nil
}

var _ ports.ProviderClient = (*LLMProvider)(nil)
