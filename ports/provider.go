package ports

import (
	"context"

	"datasight/domain/analysis"
	"datasight/domain/dataset"
)

// ProviderClient is one analysis backend. Analyze is total: transport, auth and
// parse failures come back as an analysis.Failure result, never as an error or
// a panic.
type ProviderClient interface {
	Name() string
	Analyze(ctx context.Context, ds dataset.Dataset) analysis.ProviderResult
}
