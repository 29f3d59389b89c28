package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"datasight/adapters/excel"
	"datasight/domain/dataset"
	"datasight/internal"
	"datasight/internal/config"
	"datasight/internal/container"
	"datasight/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options shared by every subcommand
type options struct {
	sheet   string
	pretty  bool
	timeout time.Duration
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "datasight",
		Short: "Profile tabular data, recommend charts and run multi-provider analysis",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "Excel sheet to read (default: first sheet)")
	rootCmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Per-provider timeout (default: PROVIDER_TIMEOUT or 30s)")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newProfileCmd(opts),
		newRecommendCmd(opts),
		newProvidersCmd(opts),
		newSampleCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the full pipeline: profile, chart recommendations and provider analysis",
		Long: `Run the full pipeline over a CSV or XLSX file.

Every LLM backend with an API key is queried concurrently (GROQ_API_KEY,
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY); the offline fallback
always runs, so the command succeeds without any key.

Example: datasight analyze sales.xlsx --sheet Q4 --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ds, err := setup(opts, args[0])
			if err != nil {
				return err
			}
			defer c.Logger.Sync()

			report, err := c.Pipeline.Run(cmd.Context(), *ds)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report, opts.pretty)
		},
	}
}

func newProfileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file]",
		Short: "Print the structural profile of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ds, err := setup(opts, args[0])
			if err != nil {
				return err
			}

			prof, err := c.Pipeline.Profile(*ds)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), prof, opts.pretty)
		},
	}
}

func newRecommendCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend [file]",
		Short: "Print ranked chart recommendations for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ds, err := setup(opts, args[0])
			if err != nil {
				return err
			}

			_, recs, err := c.Pipeline.Recommend(*ds)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recs, opts.pretty)
		},
	}
}

func newProvidersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the analysis providers in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(opts)
			if err != nil {
				return err
			}
			for i, name := range c.Pipeline.Providers() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

func newSampleCmd() *cobra.Command {
	cfg := testkit.DefaultShoppingConfig()

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic e-commerce orders CSV to stdout",
		Long: `Write a deterministic synthetic orders table, useful for trying the pipeline
without real data.

Example: datasight sample --orders 500 > orders.csv && datasight analyze orders.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := testkit.NewShoppingDataGenerator(cfg).Generate()
			return testkit.WriteCSV(cmd.OutOrStdout(), ds)
		},
	}

	cmd.Flags().IntVar(&cfg.Orders, "orders", cfg.Orders, "Number of order rows")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&cfg.MissingRate, "missing-rate", 0, "Share of numeric cells left blank")

	return cmd
}

func newContainer(opts *options) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.timeout > 0 {
		cfg.Analysis.ProviderTimeout = opts.timeout
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	if cfg.Log.JSON {
		logger = internal.NewJSONLogger(internal.ParseLogLevel(cfg.Log.Level))
	}
	return container.New(cfg, logger)
}

// setup builds the container and reads the input file
func setup(opts *options, path string) (*container.Container, *dataset.Dataset, error) {
	c, err := newContainer(opts)
	if err != nil {
		return nil, nil, err
	}

	readerCfg := excel.DefaultReaderConfig()
	readerCfg.Sheet = opts.sheet
	ds, err := excel.NewDataReader(readerCfg, c.Logger).ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return c, ds, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
