package usage

import (
	"context"
	"sort"
	"sync"
	"time"

	"datasight/internal"
	"datasight/ports"
)

// Service keeps per-provider LLM token counts in memory for the lifetime of
// the process
type Service struct {
	mu         sync.Mutex
	byProvider map[string]*ProviderUsage
	logger     *internal.Logger
	now        func() time.Time
}

// NewService creates a new usage service
func NewService(logger *internal.Logger) *Service {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Service{
		byProvider: make(map[string]*ProviderUsage),
		logger:     logger,
		now:        time.Now,
	}
}

// RecordUsage adds one call's token counts to the provider's running totals
func (s *Service) RecordUsage(_ context.Context, provider string, usage *ports.UsageData) {
	if usage == nil {
		s.logger.Warn("[UsageService] nil usage data from %s", provider)
		return
	}
	if usage.PromptTokens < 0 || usage.CompletionTokens < 0 || usage.TotalTokens < 0 {
		s.logger.Warn("[UsageService] invalid token counts from %s: %+v", provider, *usage)
		return
	}

	total := usage.TotalTokens
	if total == 0 {
		total = usage.PromptTokens + usage.CompletionTokens
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pu, ok := s.byProvider[provider]
	if !ok {
		pu = &ProviderUsage{Provider: provider}
		s.byProvider[provider] = pu
	}
	pu.Calls++
	pu.PromptTokens += usage.PromptTokens
	pu.CompletionTokens += usage.CompletionTokens
	pu.TotalTokens += total
	if usage.Model != "" {
		pu.Model = usage.Model
	}
	pu.LastCallAt = s.now()
}

// Summary returns a copy of the totals, providers sorted by name
func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Providers: make([]ProviderUsage, 0, len(s.byProvider))}
	for _, pu := range s.byProvider {
		sum.Providers = append(sum.Providers, *pu)
		sum.Calls += pu.Calls
		sum.TotalTokens += pu.TotalTokens
	}
	sort.Slice(sum.Providers, func(i, j int) bool {
		return sum.Providers[i].Provider < sum.Providers[j].Provider
	})
	return sum
}

var _ ports.UsageRecorder = (*Service)(nil)
