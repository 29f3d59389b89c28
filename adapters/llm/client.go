package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"datasight/ports"
)

const defaultTimeout = 60 * time.Second

// Config holds the settings shared by every transport
type Config struct {
	Model       string        // e.g. "gpt-4o-mini"
	APIKey      string        // backend API key
	BaseURL     string        // optional override of the backend default
	Temperature float64       // 0.0-1.0, lower = more deterministic
	MaxTokens   int           // max tokens in response
	Timeout     time.Duration // request timeout
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) baseURL(fallback string) string {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = fallback
	}
	return strings.TrimRight(base, "/")
}

// Backend names accepted by NewClient
const (
	BackendGroq      = "groq"
	BackendGemini    = "gemini"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
)

// NewClient builds the transport for a named backend
func NewClient(backend string, cfg Config) (ports.LLMClient, error) {
	switch strings.ToLower(backend) {
	case BackendGroq:
		return NewGroqClient(cfg)
	case BackendGemini:
		return NewGeminiClient(cfg)
	case BackendOpenAI:
		return NewOpenAIClient(cfg)
	case BackendAnthropic:
		return NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", backend)
	}
}

// postJSON sends body as JSON and returns the raw response on a 2xx status
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, truncate(string(respRaw), 300))
	}
	return respRaw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// MockLLMClient is a mock LLM client for testing
type MockLLMClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors
	Delay    time.Duration
}

func (m *MockLLMClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	resp, err := m.ChatCompletionWithUsage(ctx, model, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (m *MockLLMClient) ChatCompletionWithUsage(ctx context.Context, model string, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Error != nil {
		return nil, m.Error
	}
	content := m.Response
	if content == "" {
		content = `{"summary": "Mock analysis of the dataset.", "insights": ["Mock insight"]}`
	}
	return &ports.LLMResponse{
		Content: content,
		Usage:   &ports.UsageData{Model: model, Provider: "mock"},
	}, nil
}

var _ ports.LLMClient = (*MockLLMClient)(nil)
