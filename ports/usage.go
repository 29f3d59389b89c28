package ports

import "context"

// UsageRecorder receives token usage after every successful LLM call.
// Implementations must not block the caller.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, provider string, usage *UsageData)
}
