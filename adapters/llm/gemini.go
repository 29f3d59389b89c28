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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient calls Google's generateContent endpoint
type GeminiClient struct {
	APIKey      string
	BaseURL     string
	Temperature float64
	httpClient  *http.Client
}

// NewGeminiClient creates a Gemini client
func NewGeminiClient(cfg Config) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing gemini API key")
	}
	return &GeminiClient{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.baseURL(geminiBaseURL),
		Temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.timeout()},
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

func (c *GeminiClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	resp, err := c.ChatCompletionWithUsage(ctx, model, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *GeminiClient) ChatCompletionWithUsage(ctx context.Context, model string, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("missing model")
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.Temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.BaseURL, model)
	raw, err := postJSON(ctx, c.httpClient, url, map[string]string{
		"x-goog-api-key": c.APIKey,
	}, body)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	if msg := gjson.GetBytes(raw, "error.message"); msg.Exists() {
		return nil, fmt.Errorf("gemini: %s", msg.String())
	}

	var text strings.Builder
	gjson.GetBytes(raw, "candidates.0.content.parts").ForEach(func(_, part gjson.Result) bool {
		text.WriteString(part.Get("text").String())
		return true
	})
	if strings.TrimSpace(text.String()) == "" {
		return nil, core.ErrEmptyReply
	}

	return &ports.LLMResponse{
		Content: text.String(),
		Usage: &ports.UsageData{
			PromptTokens:     int(gjson.GetBytes(raw, "usageMetadata.promptTokenCount").Int()),
			CompletionTokens: int(gjson.GetBytes(raw, "usageMetadata.candidatesTokenCount").Int()),
			TotalTokens:      int(gjson.GetBytes(raw, "usageMetadata.totalTokenCount").Int()),
			Model:            model,
			Provider:         "gemini",
		},
	}, nil
}

var _ ports.LLMClient = (*GeminiClient)(nil)
