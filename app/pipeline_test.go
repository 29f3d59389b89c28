package app

import (
	"context"
	"errors"
	"testing"

	"datasight/adapters/profiler"
	"datasight/adapters/provider"
	"datasight/adapters/recommend"
	"datasight/domain/analysis"
	"datasight/domain/chart"
	"datasight/domain/core"
	"datasight/domain/dataset"
	apperrors "datasight/internal/errors"
	"datasight/internal/testkit"
	"datasight/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(providers ...ports.ProviderClient) *Pipeline {
	return NewPipeline(
		profiler.NewProfiler(),
		recommend.NewEngine(),
		NewAnalysisOrchestrator(provider.NewFallback()),
		providers,
		nil,
	)
}

func TestPipeline_Run(t *testing.T) {
	ds := dataset.New(
		[]string{"Date", "Sales", "Region"},
		[][]any{
			{"2024-01-01", 100, "North"},
			{"2024-01-02", 150, "South"},
			{"2024-01-03", 120, "North"},
			{"2024-01-04", 180, "South"},
		},
	)

	report, err := newTestPipeline(failing("Groq"), succeeding("Gemini", "Gemini says hi")).Run(context.Background(), ds)
	require.NoError(t, err)

	_, parseErr := core.ParseReportID(report.ID.String())
	assert.NoError(t, parseErr)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 3, report.Columns)
	assert.True(t, report.Profile.HasTimeSeries)
	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, chart.Line, report.Recommendations[0].ChartType)

	assert.Equal(t, "Gemini", report.Analysis.Primary.ProviderName)
	assert.Equal(t, []string{"Gemini", analysis.FallbackProviderName}, report.Analysis.Combined.Providers)
	require.Len(t, report.Analysis.Failures, 1)
}

func TestPipeline_RunOnGeneratedOrders(t *testing.T) {
	cfg := testkit.DefaultShoppingConfig()
	cfg.MissingRate = 0.05
	ds := testkit.NewShoppingDataGenerator(cfg).Generate()

	report, err := newTestPipeline().Run(context.Background(), ds)
	require.NoError(t, err)

	prof := report.Profile
	assert.True(t, prof.HasTimeSeries)
	assert.True(t, prof.HasCategories)
	assert.True(t, prof.HasGeographic)
	assert.True(t, prof.HasNumeric)
	assert.True(t, prof.HasText)
	assert.Less(t, prof.DataQuality.Completeness, 1.0)

	assert.Equal(t, chart.Line, report.Recommendations[0].ChartType)
	assert.NotEmpty(t, report.Analysis.Combined.Statistics)
	assert.NotEmpty(t, report.Analysis.Combined.QualityIssues)
}

func TestPipeline_EmptyHeadersIsInvalidInput(t *testing.T) {
	_, err := newTestPipeline().Run(context.Background(), dataset.New(nil, nil))

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
	assert.True(t, errors.Is(err, core.ErrEmptyHeaders))
}

func TestPipeline_EmptyRows(t *testing.T) {
	ds := dataset.New([]string{"a", "b", "c"}, nil)

	report, err := newTestPipeline().Run(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Profile.SampleSize)
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, chart.Bar, report.Recommendations[0].ChartType)
	assert.Equal(t, analysis.FallbackProviderName, report.Analysis.Primary.ProviderName)
	assert.NotEmpty(t, report.Analysis.Combined.Summary)
}

func TestPipeline_ProvidersIncludeFallbackLast(t *testing.T) {
	p := newTestPipeline(succeeding("Groq", "g"), provider.NewFallback(), succeeding("OpenAI", "o"))

	assert.Equal(t, []string{"Groq", "OpenAI", analysis.FallbackProviderName}, p.Providers())
}

func TestPipeline_Recommend(t *testing.T) {
	ds := dataset.New([]string{"Category", "Count"}, [][]any{{"a", 1}, {"b", 2}, {"a", 3}, {"b", 4}, {"a", 5}})

	prof, recs, err := newTestPipeline().Recommend(ds)
	require.NoError(t, err)
	assert.True(t, prof.HasNumeric)
	assert.NotEmpty(t, recs)
}
