package main

import (
	"fmt"
	"os"
	"time"

	"bayesrt/adapters/csvdata"
	"bayesrt/adapters/dist"
	"bayesrt/adapters/rng"
	"bayesrt/adapters/sampler"
	"bayesrt/app"
	"bayesrt/domain/trial"
	"bayesrt/internal"
	"bayesrt/internal/config"
	"bayesrt/internal/testkit"
	"bayesrt/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "chapter",
		Short: "Bayesian response-time models: load trials, sample posteriors, render reports",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newFamiliesCmd(),
		newFixtureCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		family string
		file   string
		url    string
		outDir string
		title  string
		chains int
		draws  int
		burnIn int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one chapter: fit the configured family to a dataset and write report artifacts",
		Long: `Run a full chapter analysis. Configuration comes from the environment
(DATASET_URL, MODEL_FAMILY, CHAINS, ...); flags override individual settings.

Example: chapter run --family exgaussian --file trials.csv --out ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(family, file, url)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Report.OutDir = outDir
			}
			if title != "" {
				cfg.Report.Title = title
			}
			if cmd.Flags().Changed("chains") {
				cfg.Sampler.Chains = chains
			}
			if cmd.Flags().Changed("draws") {
				cfg.Sampler.Draws = draws
			}
			if cmd.Flags().Changed("burn-in") {
				cfg.Sampler.BurnIn = burnIn
			}
			if cmd.Flags().Changed("seed") {
				cfg.Sampler.Seed = seed
			}
			return runChapter(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Distribution family (overrides MODEL_FAMILY)")
	cmd.Flags().StringVar(&file, "file", "", "Local CSV path (overrides DATASET_FILE)")
	cmd.Flags().StringVar(&url, "url", "", "Remote CSV URL (overrides DATASET_URL)")
	cmd.Flags().StringVar(&outDir, "out", "", "Artifact output directory (overrides OUT_DIR)")
	cmd.Flags().StringVar(&title, "title", "", "Report title (overrides REPORT_TITLE)")
	cmd.Flags().IntVar(&chains, "chains", 4, "Number of chains")
	cmd.Flags().IntVar(&draws, "draws", 2000, "Retained draws per chain")
	cmd.Flags().IntVar(&burnIn, "burn-in", 1000, "Warmup draws per chain")
	cmd.Flags().Int64Var(&seed, "seed", 1234, "Base RNG seed")

	return cmd
}

// loadConfig applies flag overrides that must land before validation,
// since a --file flag can satisfy the dataset-source requirement.
func loadConfig(family, file, url string) (*config.Config, error) {
	if family != "" {
		os.Setenv("MODEL_FAMILY", family)
	}
	if file != "" {
		os.Setenv("DATASET_FILE", file)
	}
	if url != "" {
		os.Setenv("DATASET_URL", url)
	}
	return config.Load()
}

func runChapter(cmd *cobra.Command, cfg *config.Config) error {
	logger := internal.NewDefaultLogger()

	registry := dist.NewRegistry()
	distribution, err := registry.Lookup(cfg.Model.Family)
	if err != nil {
		return err
	}
	priors, err := app.DefaultPriors(cfg.Model.Family)
	if err != nil {
		return err
	}

	source := csvdata.NewReader(csvdata.Config{
		URL:      cfg.Data.URL,
		FilePath: cfg.Data.FilePath,
		Columns: csvdata.Columns{
			RT:          cfg.Data.RTColumn,
			Condition:   cfg.Data.CondColumn,
			Error:       cfg.Data.ErrColumn,
			Participant: cfg.Data.PartColumn,
		},
		RTUnit: cfg.Data.RTUnit,
	})

	rngPort := rng.New()
	svc := app.NewChapterService(source, sampler.NewMetropolis(rngPort), registry, rngPort, logger)

	spec := app.ChapterSpec{
		Title: cfg.Report.Title,
		Model: app.DefaultModelSpec(distribution, priors),
		Filter: trial.Filter{
			DropErrors: cfg.Data.DropErrors,
			MinRT:      cfg.Data.MinRT,
			MaxRT:      cfg.Data.MaxRT,
		},
		Settings: ports.SamplerSettings{
			Chains: cfg.Sampler.Chains,
			Draws:  cfg.Sampler.Draws,
			BurnIn: cfg.Sampler.BurnIn,
			Seed:   cfg.Sampler.Seed,
		},
		OutDir: cfg.Report.OutDir,
	}

	started := time.Now()
	result, err := svc.Run(cmd.Context(), spec)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished in %s\n", result.RunID, time.Since(started).Round(time.Millisecond))
	fmt.Printf("  trials: %d kept, %d rejected\n", result.Dataset.Len(), result.Dataset.RejectedCount())
	fmt.Printf("  draws:  %d across %d chains\n", result.Samples.Len(), len(result.Samples.Chains))
	for _, path := range result.Artifacts {
		fmt.Printf("  wrote:  %s\n", path)
	}
	return nil
}

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the available distribution families",
		Run: func(cmd *cobra.Command, args []string) {
			registry := dist.NewRegistry()
			for _, family := range registry.Families() {
				d, _ := registry.Lookup(family)
				fmt.Printf("%-20s", family)
				for _, p := range d.Params() {
					fmt.Printf(" %s", p.Name)
				}
				fmt.Println()
			}
		},
	}
}

func newFixtureCmd() *cobra.Command {
	var (
		out    string
		trials int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Write a synthetic CSV dataset with known ground truth",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := testkit.GaussianScenario(dist.NewGaussian())
			scenario.Trials = trials
			scenario.Seed = seed
			if err := scenario.WriteCSV(out); err != nil {
				return err
			}
			fmt.Printf("wrote %d trials to %s\n", trials, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "trials.csv", "Output CSV path")
	cmd.Flags().IntVar(&trials, "trials", 400, "Number of trials to generate")
	cmd.Flags().Int64Var(&seed, "seed", 2024, "Generator seed")

	return cmd
}
