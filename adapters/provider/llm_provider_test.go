package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"datasight/domain/analysis"
	"datasight/domain/dataset"
	"datasight/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, model, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

func (m *mockLLMClient) ChatCompletionWithUsage(ctx context.Context, model string, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	args := m.Called(ctx, model, prompt, maxTokens)
	resp, _ := args.Get(0).(*ports.LLMResponse)
	return resp, args.Error(1)
}

func salesDataset(rows int) dataset.Dataset {
	data := make([][]any, rows)
	for i := range data {
		data[i] = []any{fmt.Sprintf("2024-01-%02d", i%28+1), float64(100 + i), "North"}
	}
	return dataset.New([]string{"Date", "Sales", "Region"}, data)
}

func TestLLMProvider_Success(t *testing.T) {
	client := &mockLLMClient{}
	client.On("ChatCompletionWithUsage", mock.Anything, "llama", mock.AnythingOfType("string"), 500).
		Return(&ports.LLMResponse{
			Content: `{"summary": "Sales data", "insights": ["steady"]}`,
			Usage:   &ports.UsageData{TotalTokens: 42},
		}, nil)

	p := NewLLMProvider("Groq", client, "llama", 500, nil)
	result := p.Analyze(context.Background(), salesDataset(3))

	require.True(t, result.OK())
	assert.Equal(t, "Groq", result.ProviderName)
	assert.Equal(t, "Sales data", result.Payload.Summary)
	assert.Equal(t, []string{"steady"}, result.Payload.Insights)
	client.AssertExpectations(t)
}

type usageSpy struct {
	provider string
	usage    *ports.UsageData
}

func (u *usageSpy) RecordUsage(_ context.Context, provider string, usage *ports.UsageData) {
	u.provider, u.usage = provider, usage
}

func TestLLMProvider_RecordsUsage(t *testing.T) {
	client := &mockLLMClient{}
	client.On("ChatCompletionWithUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&ports.LLMResponse{Content: `{"summary": "x"}`, Usage: &ports.UsageData{TotalTokens: 9}}, nil)

	spy := &usageSpy{}
	p := NewLLMProvider("Gemini", client, "g", 100, nil).WithUsageRecorder(spy)
	require.True(t, p.Analyze(context.Background(), salesDataset(1)).OK())

	assert.Equal(t, "Gemini", spy.provider)
	assert.Equal(t, 9, spy.usage.TotalTokens)
}

func TestLLMProvider_TransportErrorBecomesFailure(t *testing.T) {
	client := &mockLLMClient{}
	client.On("ChatCompletionWithUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("http 401: invalid key"))

	result := NewLLMProvider("OpenAI", client, "gpt", 100, nil).Analyze(context.Background(), salesDataset(2))

	assert.Equal(t, analysis.StatusFailure, result.Status)
	assert.Equal(t, "OpenAI", result.ProviderName)
	assert.Contains(t, result.Error, "invalid key")
	assert.Nil(t, result.Payload)
}

func TestLLMProvider_EmptyReplyIsFailure(t *testing.T) {
	client := &mockLLMClient{}
	client.On("ChatCompletionWithUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&ports.LLMResponse{Content: "   "}, nil)

	result := NewLLMProvider("Gemini", client, "g", 100, nil).Analyze(context.Background(), salesDataset(2))
	assert.False(t, result.OK())
}

func TestLLMProvider_ProseReplyIsLenientSuccess(t *testing.T) {
	client := &mockLLMClient{}
	client.On("ChatCompletionWithUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&ports.LLMResponse{Content: "Sales are growing."}, nil)

	result := NewLLMProvider("Anthropic", client, "c", 100, nil).Analyze(context.Background(), salesDataset(2))

	require.True(t, result.OK())
	assert.Equal(t, "Sales are growing.", result.Payload.Summary)
	assert.Equal(t, []string{"Sales are growing."}, result.Payload.Insights)
}

func TestLLMProvider_NilClient(t *testing.T) {
	result := NewLLMProvider("Broken", nil, "m", 1, nil).Analyze(context.Background(), salesDataset(1))
	assert.False(t, result.OK())
}

func TestBuildPrompt_SamplesFirstRows(t *testing.T) {
	ds := salesDataset(25)

	prompt, err := BuildPrompt(ds)
	require.NoError(t, err)

	assert.Contains(t, prompt, `Columns: ["Date","Sales","Region"]`)
	assert.Contains(t, prompt, "Total rows: 25")
	assert.Contains(t, prompt, "first 10 rows")
	assert.Contains(t, prompt, `"Sales": 109`)
	assert.NotContains(t, prompt, `"Sales": 110`)
}
