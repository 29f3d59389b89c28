package app

import (
	"context"
	"time"

	"datasight/domain/analysis"
	"datasight/domain/chart"
	"datasight/domain/core"
	"datasight/domain/dataset"
	"datasight/domain/profile"
	"datasight/internal"
	apperrors "datasight/internal/errors"
	"datasight/ports"

	"golang.org/x/sync/errgroup"
)

// Report is the full output of one pipeline run
type Report struct {
	ID              core.ReportID           `json:"id"`
	CreatedAt       time.Time               `json:"createdAt"`
	Rows            int                     `json:"rows"`
	Columns         int                     `json:"columns"`
	Profile         *profile.DataProfile    `json:"profile"`
	Recommendations []chart.Recommendation  `json:"recommendations"`
	Analysis        *analysis.SuperAnalysis `json:"analysis"`
}

// Pipeline runs profiling, chart recommendation and provider analysis over one
// dataset
type Pipeline struct {
	profiler     ports.ProfilerPort
	recommender  ports.RecommenderPort
	orchestrator *AnalysisOrchestrator
	providers    []ports.ProviderClient
	logger       *internal.Logger
}

// NewPipeline wires the three stages. providers are in priority order; the
// orchestrator's fallback is appended when missing.
func NewPipeline(
	profiler ports.ProfilerPort,
	recommender ports.RecommenderPort,
	orchestrator *AnalysisOrchestrator,
	providers []ports.ProviderClient,
	logger *internal.Logger,
) *Pipeline {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Pipeline{
		profiler:     profiler,
		recommender:  recommender,
		orchestrator: orchestrator,
		providers:    providers,
		logger:       logger,
	}
}

// Providers returns the configured provider names in priority order, fallback
// included
func (p *Pipeline) Providers() []string {
	ordered := p.orchestrator.prioritize(p.providers)
	names := make([]string, len(ordered))
	for i, c := range ordered {
		names[i] = c.Name()
	}
	return names
}

// Profile validates the dataset and builds its profile
func (p *Pipeline) Profile(ds dataset.Dataset) (*profile.DataProfile, error) {
	if err := validate(ds); err != nil {
		return nil, err
	}
	return p.profiler.Profile(ds), nil
}

// Recommend profiles the dataset and ranks chart suggestions for it
func (p *Pipeline) Recommend(ds dataset.Dataset) (*profile.DataProfile, []chart.Recommendation, error) {
	prof, err := p.Profile(ds)
	if err != nil {
		return nil, nil, err
	}
	return prof, p.recommender.Recommend(prof), nil
}

// Run executes the whole pipeline. The only error is an invalid dataset;
// provider trouble is reported inside Report.Analysis.
func (p *Pipeline) Run(ctx context.Context, ds dataset.Dataset) (*Report, error) {
	start := time.Now()

	prof, err := p.Profile(ds)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:        core.NewReportID(),
		CreatedAt: start.UTC(),
		Rows:      ds.RowCount(),
		Columns:   ds.ColumnCount(),
		Profile:   prof,
	}

	// recommendation is pure and analysis only needs the raw rows, so they
	// run side by side
	var g errgroup.Group
	g.Go(func() error {
		report.Recommendations = p.recommender.Recommend(prof)
		return nil
	})
	g.Go(func() error {
		report.Analysis = p.orchestrator.SuperAnalyze(ctx, ds, p.providers)
		return nil
	})
	_ = g.Wait()

	p.logger.Info("[Pipeline] report %s: %d rows, %d recommendations, primary=%s, took %v",
		report.ID, report.Rows, len(report.Recommendations), report.Analysis.Primary.ProviderName,
		time.Since(start).Round(time.Millisecond))
	return report, nil
}

func validate(ds dataset.Dataset) error {
	if len(ds.Headers) == 0 {
		return &apperrors.AppError{
			Code:    apperrors.CodeInvalidInput,
			Message: "invalid dataset",
			Cause:   core.ErrEmptyHeaders,
		}
	}
	return nil
}
