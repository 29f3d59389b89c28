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
	anthropicBaseURL = "https://api.anthropic.com/v1"
	// AnthropicAPIVersion is sent in the anthropic-version header
	AnthropicAPIVersion = "2023-06-01"
)

// AnthropicClient calls the Anthropic Messages API
type AnthropicClient struct {
	APIKey      string
	BaseURL     string
	Temperature float64
	httpClient  *http.Client
}

// NewAnthropicClient creates an Anthropic client
func NewAnthropicClient(cfg Config) (*AnthropicClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing anthropic API key")
	}
	return &AnthropicClient{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.baseURL(anthropicBaseURL),
		Temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.timeout()},
	}, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

func (c *AnthropicClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	resp, err := c.ChatCompletionWithUsage(ctx, model, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *AnthropicClient) ChatCompletionWithUsage(ctx context.Context, model string, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("missing model")
	}
	if maxTokens <= 0 {
		// max_tokens is mandatory for the Messages API
		maxTokens = 1024
	}

	body := anthropicRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      "You are a careful data analyst. Output exactly what the user asks for.",
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: c.Temperature,
	}

	raw, err := postJSON(ctx, c.httpClient, c.BaseURL+"/messages", map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": AnthropicAPIVersion,
	}, body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var text strings.Builder
	gjson.GetBytes(raw, "content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			text.WriteString(block.Get("text").String())
		}
		return true
	})
	if strings.TrimSpace(text.String()) == "" {
		return nil, core.ErrEmptyReply
	}

	input := int(gjson.GetBytes(raw, "usage.input_tokens").Int())
	output := int(gjson.GetBytes(raw, "usage.output_tokens").Int())
	return &ports.LLMResponse{
		Content: strings.TrimSpace(text.String()),
		Usage: &ports.UsageData{
			PromptTokens:     input,
			CompletionTokens: output,
			TotalTokens:      input + output,
			Model:            model,
			Provider:         "anthropic",
		},
	}, nil
}

var _ ports.LLMClient = (*AnthropicClient)(nil)
