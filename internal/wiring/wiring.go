// Package wiring assembles a pipeline.Coordinator from a config.Config,
// the one object-graph construction step cmd/repointel and
// cmd/mcpserver both need, grounded on the teacher's internal/app.New
// (transport + cache + downstream-client construction ahead of a single
// Run call).
package wiring

import (
	"context"
	"fmt"

	"github.com/kss2002/techgiterview-pipeline/internal/cache"
	"github.com/kss2002/techgiterview-pipeline/internal/composer"
	"github.com/kss2002/techgiterview-pipeline/internal/config"
	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/depgraph"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/llm"
	"github.com/kss2002/techgiterview-pipeline/internal/lock"
	"github.com/kss2002/techgiterview-pipeline/internal/metrics"
	"github.com/kss2002/techgiterview-pipeline/internal/pipeline"
	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

// Built bundles the constructed Coordinator alongside resources the
// caller must close.
type Built struct {
	Coordinator *pipeline.Coordinator
	cacheStore  cache.Store
}

// Close releases the durable cache handle.
func (b *Built) Close() error {
	if b.cacheStore != nil {
		return b.cacheStore.Close()
	}
	return nil
}

// New builds a pipeline.Coordinator wired per cfg: a host client talking
// to cfg.HostBaseURL, a sqlite-backed content cache, an LLM provider
// selected by cfg.LLMProvider (none when cfg.DryRun is set, so every slot
// gets a template question), and default selector/composer tuning.
func New(ctx context.Context, cfg config.Config) (*Built, error) {
	host := hostclient.New(cfg.HostBaseURL, cfg.HostToken, int64(cfg.FetchConcurrency))

	store, err := cache.OpenSQLiteStore(cfg.CacheDir + "/content.db")
	if err != nil {
		return nil, fmt.Errorf("open content cache: %w", err)
	}

	extractor := &content.Extractor{
		Source:  host,
		Cache:   store,
		Metrics: metrics.NewContentExtractorMetrics(),
		TTL:     cfg.CacheMaxAge,
		Owner:   cfg.RepoOwner,
		Repo:    cfg.RepoName,
		Ref:     cfg.RepoRef,
	}

	sel := &selector.Selector{
		Tree:             host,
		Commits:          host,
		Content:          extractor,
		Graph:            &depgraph.Builder{},
		Owner:            cfg.RepoOwner,
		Repo:             cfg.RepoName,
		Ref:              cfg.RepoRef,
		TargetCount:      cfg.TargetSelection,
		ReservedSlots:    cfg.ReservedSlots,
		MMRLambda:        cfg.MMRLambda,
		FetchConcurrency: int64(cfg.FetchConcurrency),
	}

	var model llm.Client
	if !cfg.DryRun {
		model, err = newLLMProvider(ctx, cfg)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	coord := &pipeline.Coordinator{
		Repository: host,
		Selector:   sel,
		Composer:   &composer.Composer{},
		LLM:        model,
		Lock:       lock.NewInMemoryLocker(),
		LockTTL:    cfg.LockTTL,
		Model:      cfg.LLMModel,
	}

	return &Built{Coordinator: coord, cacheStore: store}, nil
}

func newLLMProvider(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "genai":
		return llm.NewGenAIProvider(ctx, cfg.LLMAPIKey)
	case "openai", "":
		return llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey), nil
	default:
		return nil, fmt.Errorf("wiring: unknown LLM provider %q", cfg.LLMProvider)
	}
}
