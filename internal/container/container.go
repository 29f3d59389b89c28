package container

import (
	"fmt"

	"datasight/adapters/excel"
	"datasight/adapters/llm"
	"datasight/adapters/profiler"
	"datasight/adapters/provider"
	"datasight/adapters/recommend"
	"datasight/app"
	"datasight/internal"
	"datasight/internal/config"
	"datasight/internal/usage"
	"datasight/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Stages
	Profiler     ports.ProfilerPort
	Recommender  ports.RecommenderPort
	Orchestrator *app.AnalysisOrchestrator
	Providers    []ports.ProviderClient
	Pipeline     *app.Pipeline

	// Input
	Reader *excel.DataReader

	// Token accounting for LLM backends
	Usage *usage.Service
}

// backend pairs a display name with the transport key and its settings
type backend struct {
	name string
	kind string
	cfg  config.BackendConfig
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Profiler:    profiler.NewProfiler(),
		Recommender: recommend.NewEngine(),
		Reader:      excel.NewDataReader(excel.DefaultReaderConfig(), logger),
		Usage:       usage.NewService(logger),
	}

	providers, err := c.buildProviders()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}
	c.Providers = providers

	c.Orchestrator = app.NewAnalysisOrchestrator(
		provider.NewFallback(),
		app.WithProviderTimeout(cfg.Analysis.ProviderTimeout),
		app.WithMaxConcurrentProviders(cfg.Analysis.MaxConcurrentProviders),
		app.WithLogger(logger),
	)
	c.Pipeline = app.NewPipeline(c.Profiler, c.Recommender, c.Orchestrator, c.Providers, logger)

	logger.Info("[Container] initialized with providers %v", c.Pipeline.Providers())
	return c, nil
}

// buildProviders returns one LLMProvider per configured backend, free and fast
// ones first. The fallback is added by the orchestrator.
func (c *Container) buildProviders() ([]ports.ProviderClient, error) {
	ai := c.Config.AI
	backends := []backend{
		{name: "Groq", kind: llm.BackendGroq, cfg: ai.Groq},
		{name: "Gemini", kind: llm.BackendGemini, cfg: ai.Gemini},
		{name: "OpenAI", kind: llm.BackendOpenAI, cfg: ai.OpenAI},
		{name: "Anthropic", kind: llm.BackendAnthropic, cfg: ai.Anthropic},
	}

	var providers []ports.ProviderClient
	for _, b := range backends {
		if !b.cfg.Enabled() {
			c.Logger.Debug("[Container] %s disabled: no API key", b.name)
			continue
		}
		client, err := llm.NewClient(b.kind, llm.Config{
			Model:       b.cfg.Model,
			APIKey:      b.cfg.APIKey,
			BaseURL:     b.cfg.BaseURL,
			Temperature: ai.Temperature,
			MaxTokens:   ai.MaxTokens,
			Timeout:     c.Config.Analysis.ProviderTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		p := provider.NewLLMProvider(b.name, client, b.cfg.Model, ai.MaxTokens, c.Logger).WithUsageRecorder(c.Usage)
		providers = append(providers, p)
	}
	return providers, nil
}
