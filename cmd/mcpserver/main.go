package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/kss2002/techgiterview-pipeline/internal/config"
	"github.com/kss2002/techgiterview-pipeline/internal/mcpserver"
	"github.com/kss2002/techgiterview-pipeline/internal/wiring"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	// MCP's stdio transport owns stdout; all logging goes to stderr so it
	// never corrupts the protocol stream, matching standardbeagle-lci's
	// file-based-logging rule for its MCP server.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Defaults()
	pflag.StringVar(&cfg.HostBaseURL, "host.base", cfg.HostBaseURL, "Repository host API base URL")
	pflag.StringVar(&cfg.HostToken, "host.token", os.Getenv("REPOINTEL_HOST_TOKEN"), "Repository host API token")
	pflag.StringVar(&cfg.LLMProvider, "llm.provider", cfg.LLMProvider, "openai or genai")
	pflag.StringVar(&cfg.LLMBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	pflag.StringVar(&cfg.LLMModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	pflag.StringVar(&cfg.LLMAPIKey, "llm.key", os.Getenv("LLM_API_KEY"), "LLM API key")
	pflag.StringVar(&cfg.CacheDir, "cache.dir", cfg.CacheDir, "Content cache directory")
	pflag.Parse()
	cfg = config.WithDefaults(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	built, err := wiring.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("wire coordinator")
	}
	defer built.Close()

	server := mcpserver.New(built.Coordinator)
	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("mcp server exited")
	}
}
