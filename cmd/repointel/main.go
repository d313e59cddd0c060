package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kss2002/techgiterview-pipeline/internal/composer"
	"github.com/kss2002/techgiterview-pipeline/internal/config"
	"github.com/kss2002/techgiterview-pipeline/internal/pipeline"
	"github.com/kss2002/techgiterview-pipeline/internal/selector"
	"github.com/kss2002/techgiterview-pipeline/internal/wiring"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("repointel failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "repointel",
		Short: "Turns a repository into generated interview questions",
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	cfg := config.Defaults()
	var (
		questionCount int
		difficulty    string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a repository and write generated questions to --output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			cfg = config.WithDefaults(cfg)
			return runAnalyze(cmd.Context(), cfg, questionCount, difficulty)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&cfg.RepoOwner, "owner", "", "Repository owner or organization")
	flags.StringVar(&cfg.RepoName, "repo", "", "Repository name")
	flags.StringVar(&cfg.RepoRef, "ref", "", "Branch, tag, or commit SHA (default branch if empty)")
	flags.StringVar(&cfg.HostBaseURL, "host.base", cfg.HostBaseURL, "Repository host API base URL")
	flags.StringVar(&cfg.HostToken, "host.token", os.Getenv("REPOINTEL_HOST_TOKEN"), "Repository host API token")
	flags.StringVar(&cfg.LLMProvider, "llm.provider", cfg.LLMProvider, "openai or genai")
	flags.StringVar(&cfg.LLMBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flags.StringVar(&cfg.LLMModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flags.StringVar(&cfg.LLMAPIKey, "llm.key", os.Getenv("LLM_API_KEY"), "LLM API key")
	flags.IntVar(&questionCount, "questions", 9, "Number of questions to generate")
	flags.StringVar(&difficulty, "difficulty", "medium", "easy, medium, or hard")
	flags.IntVar(&cfg.TargetSelection, "select.target", cfg.TargetSelection, "Target number of files to select")
	flags.IntVar(&cfg.ReservedSlots, "select.reserved", cfg.ReservedSlots, "Reserved manifest slots within the selection")
	flags.Float64Var(&cfg.MMRLambda, "select.mmrLambda", cfg.MMRLambda, "MMR relevance/diversity tradeoff")
	flags.IntVar(&cfg.FetchConcurrency, "fetch.concurrency", cfg.FetchConcurrency, "Concurrent content fetches")
	flags.StringVar(&cfg.CacheDir, "cache.dir", cfg.CacheDir, "Content cache directory")
	flags.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", cfg.CacheMaxAge, "Content cache TTL")
	flags.DurationVar(&cfg.LockTTL, "lock.ttl", cfg.LockTTL, "Analysis lock TTL")
	flags.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Path to write the generated question set (JSON)")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "Select and plan without calling the model")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	pflag.CommandLine.AddFlagSet(flags)

	return cmd
}

func runAnalyze(ctx context.Context, cfg config.Config, questionCount int, difficulty string) error {
	if cfg.RepoOwner == "" || cfg.RepoName == "" {
		return errors.New("--owner and --repo are required")
	}

	built, err := wiring.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("wire coordinator: %w", err)
	}
	defer built.Close()

	bar := progressbar.NewOptions(4,
		progressbar.OptionSetDescription(color.CyanString("analyzing %s/%s", cfg.RepoOwner, cfg.RepoName)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	req := pipeline.Request{
		Owner:         cfg.RepoOwner,
		Repo:          cfg.RepoName,
		Ref:           cfg.RepoRef,
		QuestionCount: questionCount,
		Difficulty:    composer.Difficulty(difficulty),
	}

	_ = bar.Add(1) // repository descriptor + lock
	result, err := built.Coordinator.Run(ctx, req)
	_ = bar.Add(3) // selection, composition, generation folded into one Run call
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		color.Yellow("analysis finished with errors: %v", err)
	}

	if err := writeResult(cfg.OutputPath, result); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	color.Green("wrote %d questions over %d files to %s", len(result.Questions), len(result.Files), cfg.OutputPath)
	for _, w := range result.Warnings {
		color.Yellow("warning: %s", w)
	}
	if errors.Is(err, selector.ErrNoFilesSelected) {
		return err
	}
	return nil
}

func writeResult(path string, result *pipeline.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
