package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"datasight/domain/analysis"
	"datasight/domain/dataset"
	"datasight/internal"
	"datasight/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultProviderTimeout bounds a single provider call
const DefaultProviderTimeout = 30 * time.Second

// AnalysisOrchestrator fans one dataset out to every provider and merges what
// comes back
type AnalysisOrchestrator struct {
	fallback ports.ProviderClient
	timeout  time.Duration
	sem      *semaphore.Weighted // nil = unlimited
	logger   *internal.Logger
}

// OrchestratorOption configures an AnalysisOrchestrator
type OrchestratorOption func(*AnalysisOrchestrator)

// WithProviderTimeout sets the per-provider deadline
func WithProviderTimeout(d time.Duration) OrchestratorOption {
	return func(o *AnalysisOrchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxConcurrentProviders caps how many non-fallback providers run at once.
// Zero or less means no cap.
func WithMaxConcurrentProviders(n int) OrchestratorOption {
	return func(o *AnalysisOrchestrator) {
		if n > 0 {
			o.sem = semaphore.NewWeighted(int64(n))
		} else {
			o.sem = nil
		}
	}
}

// WithLogger sets the orchestrator's logger
func WithLogger(logger *internal.Logger) OrchestratorOption {
	return func(o *AnalysisOrchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAnalysisOrchestrator creates an orchestrator whose fallback is always
// queried last. Pass provider.NewFallback() in production. With a nil fallback
// the orchestrator degrades: Combined may be empty, and when every provider
// fails Primary holds the first failure instead of a success.
func NewAnalysisOrchestrator(fallback ports.ProviderClient, opts ...OrchestratorOption) *AnalysisOrchestrator {
	o := &AnalysisOrchestrator{
		fallback: fallback,
		timeout:  DefaultProviderTimeout,
		logger:   internal.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Fallback returns the provider that is always appended last
func (o *AnalysisOrchestrator) Fallback() ports.ProviderClient {
	return o.fallback
}

// SuperAnalyze queries every provider concurrently, waits for all of them and
// partitions the results in priority order. It never returns an error: provider
// failures are listed in Failures, and the fallback keeps Combined non-empty.
func (o *AnalysisOrchestrator) SuperAnalyze(ctx context.Context, ds dataset.Dataset, providers []ports.ProviderClient) *analysis.SuperAnalysis {
	ordered := o.prioritize(providers)
	start := time.Now()

	o.logger.Info("[Orchestrator] querying %d providers (%d rows, %d columns)",
		len(ordered), ds.RowCount(), ds.ColumnCount())

	results := make([]analysis.ProviderResult, len(ordered))

	// tasks never return an error so one failure cannot cancel the others
	last := len(ordered) - 1
	hasFallback := o.fallback != nil

	var g errgroup.Group
	for i, p := range ordered {
		i, p := i, p
		g.Go(func() error {
			results[i] = o.call(ctx, ds, p, hasFallback && i == last)
			return nil
		})
	}
	_ = g.Wait()

	sa := partition(results)

	o.logger.Info("[Orchestrator] %d/%d providers succeeded in %v, primary=%s",
		len(results)-len(sa.Failures), len(results), time.Since(start).Round(time.Millisecond), sa.Primary.ProviderName)
	for _, f := range sa.Failures {
		o.logger.Warn("[Orchestrator] %s failed: %s", f.ProviderName, f.Error)
	}
	return sa
}

// prioritize drops nil entries and makes sure the fallback runs exactly once,
// in last position
func (o *AnalysisOrchestrator) prioritize(providers []ports.ProviderClient) []ports.ProviderClient {
	ordered := make([]ports.ProviderClient, 0, len(providers)+1)
	for _, p := range providers {
		if p == nil {
			continue
		}
		if o.isFallback(p) {
			continue
		}
		ordered = append(ordered, p)
	}
	if o.fallback != nil {
		ordered = append(ordered, o.fallback)
	}
	return ordered
}

func (o *AnalysisOrchestrator) isFallback(p ports.ProviderClient) bool {
	return o.fallback != nil && p.Name() == o.fallback.Name()
}

// call runs one provider. The fallback bypasses the concurrency cap and the
// deadline; every other provider is bounded by both.
func (o *AnalysisOrchestrator) call(ctx context.Context, ds dataset.Dataset, p ports.ProviderClient, fallback bool) analysis.ProviderResult {
	name := p.Name()

	if fallback {
		return normalize(name, safeAnalyze(ctx, ds, p, name))
	}

	if o.sem != nil {
		if err := o.sem.Acquire(ctx, 1); err != nil {
			return analysis.Failure(name, fmt.Sprintf("not started: %v", err))
		}
		defer o.sem.Release(1)
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	// buffered so a provider that ignores its context can still finish and exit
	done := make(chan analysis.ProviderResult, 1)
	go func() {
		done <- safeAnalyze(callCtx, ds, p, name)
	}()

	select {
	case res := <-done:
		return normalize(name, res)
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return analysis.Failure(name, fmt.Sprintf("timed out after %v", o.timeout))
		}
		return analysis.Failure(name, fmt.Sprintf("cancelled: %v", callCtx.Err()))
	}
}

// safeAnalyze turns a provider panic into a failure
func safeAnalyze(ctx context.Context, ds dataset.Dataset, p ports.ProviderClient, name string) (res analysis.ProviderResult) {
	defer func() {
		if r := recover(); r != nil {
			res = analysis.Failure(name, fmt.Sprintf("panic: %v", r))
		}
	}()
	return p.Analyze(ctx, ds)
}

func normalize(name string, res analysis.ProviderResult) analysis.ProviderResult {
	if res.ProviderName == "" {
		res.ProviderName = name
	}
	if res.Status == analysis.StatusSuccess && res.Payload == nil {
		return analysis.Failure(res.ProviderName, "success without payload")
	}
	if res.Status != analysis.StatusSuccess && res.Status != analysis.StatusFailure {
		return analysis.Failure(res.ProviderName, fmt.Sprintf("unknown status %q", res.Status))
	}
	if res.Status == analysis.StatusFailure && res.Error == "" {
		res.Error = "unknown error"
	}
	return res
}

// partition splits results, already in priority order, into primary,
// secondary and failures, and merges the successes
func partition(results []analysis.ProviderResult) *analysis.SuperAnalysis {
	sa := &analysis.SuperAnalysis{Secondary: []analysis.ProviderResult{}}

	var successes []analysis.ProviderResult
	for _, r := range results {
		if r.OK() {
			successes = append(successes, r)
		} else {
			sa.Failures = append(sa.Failures, r)
		}
	}

	switch {
	case len(successes) > 0:
		sa.Primary = successes[0]
		sa.Secondary = append(sa.Secondary, successes[1:]...)
	case len(sa.Failures) > 0:
		// only reachable without a fallback
		sa.Primary = sa.Failures[0]
	}

	sa.Combined = Merge(successes)
	return sa
}
