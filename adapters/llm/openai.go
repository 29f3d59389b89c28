package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"datasight/domain/core"
	"datasight/ports"

	"github.com/tidwall/gjson"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	groqBaseURL   = "https://api.groq.com/openai/v1"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint. The
// same client serves OpenAI itself and Groq, which differ only in base URL.
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Temperature float64
	Provider    string
	httpClient  *http.Client
}

// NewOpenAIClient creates a client for api.openai.com unless cfg.BaseURL says otherwise
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	return newOpenAICompatible(cfg, openAIBaseURL, "openai")
}

// NewGroqClient creates a client for Groq's OpenAI-compatible endpoint
func NewGroqClient(cfg Config) (*OpenAIClient, error) {
	return newOpenAICompatible(cfg, groqBaseURL, "groq")
}

func newOpenAICompatible(cfg Config, defaultBase, provider string) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing %s API key", provider)
	}
	return &OpenAIClient{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.baseURL(defaultBase),
		Temperature: cfg.Temperature,
		Provider:    provider,
		httpClient:  &http.Client{Timeout: cfg.timeout()},
	}, nil
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	resp, err := c.ChatCompletionWithUsage(ctx, model, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *OpenAIClient) ChatCompletionWithUsage(ctx context.Context, model string, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("missing model")
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	// one system + one user message
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature,omitempty"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
	}
	body := reqBody{
		Model: model,
		Messages: []msg{
			{Role: "system", Content: "You are a careful data analyst. Output exactly what the user asks for."},
			{Role: "user", Content: prompt},
		},
		Temperature: c.Temperature,
		MaxTokens:   maxTokens,
	}

	raw, err := postJSON(ctx, c.httpClient, c.BaseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + c.APIKey,
	}, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Provider, err)
	}

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%s: response is not JSON", c.Provider)
	}
	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("%s: response missing choices", c.Provider)
	}
	if strings.TrimSpace(content.String()) == "" {
		return nil, core.ErrEmptyReply
	}

	return &ports.LLMResponse{
		Content: content.String(),
		Usage: &ports.UsageData{
			PromptTokens:     int(gjson.GetBytes(raw, "usage.prompt_tokens").Int()),
			CompletionTokens: int(gjson.GetBytes(raw, "usage.completion_tokens").Int()),
			TotalTokens:      int(gjson.GetBytes(raw, "usage.total_tokens").Int()),
			Model:            model,
			Provider:         c.Provider,
		},
	}, nil
}

var _ ports.LLMClient = (*OpenAIClient)(nil)
