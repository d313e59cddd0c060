package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kss2002/techgiterview-pipeline/internal/cache"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/metrics"
)

// SourceGetter is the subset of hostclient.Client the Extractor depends
// on, narrowed for testability the way the teacher's app.sourceGetter
// narrows fetch.Client.
type SourceGetter interface {
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (hostclient.FileContent, error)
}

// Extractor implements the Content Extractor (spec.md §4.2).
type Extractor struct {
	Source  SourceGetter
	Cache   cache.Store
	Metrics *metrics.ContentExtractorMetrics
	TTL     time.Duration

	Owner string
	Repo  string
	Ref   string

	// stats are the Extractor's own running counters, read back directly
	// for cache_hit_rate/average_response_time rather than through
	// Prometheus (see internal/metrics).
	stats stats
}

// Extract produces a Content Record for path, consulting the cache first
// and falling through to the Source Fetcher, per the six-step algorithm
// of spec.md §4.2.
func (e *Extractor) Extract(ctx context.Context, path string) Record {
	start := time.Now()
	e.stats.addRequest()
	if e.Metrics != nil {
		e.Metrics.Requests.Inc()
	}
	rec := e.extract(ctx, path)
	elapsed := time.Since(start)
	e.stats.addResponseTime(elapsed)
	if e.Metrics != nil {
		e.Metrics.ObserveDuration(elapsed)
		if !rec.Success() {
			e.Metrics.Errors.Inc()
		}
	}
	return rec
}

func (e *Extractor) extract(ctx context.Context, path string) Record {
	repoID := e.Owner + "/" + e.Repo

	// Step 1: extension filter.
	if isBinaryExtension(path) {
		return Record{Path: path, RepoID: repoID, Failure: ReasonBinaryExtension}
	}

	// Step 2: cache lookup.
	key := cache.FileContentKey(repoID, path)
	if e.Cache != nil {
		if cached, ok, err := e.Cache.Get(ctx, key); err == nil && ok {
			var rec Record
			if jerr := json.Unmarshal(cached, &rec); jerr == nil {
				rec.CacheMeta.HitCache = true
				e.stats.addCacheHit()
				if e.Metrics != nil {
					e.Metrics.CacheHits.Inc()
				}
				return rec
			}
		}
	}
	e.stats.addCacheMiss()
	if e.Metrics != nil {
		e.Metrics.CacheMisses.Inc()
	}

	// Step 3: fetch via Source Fetcher.
	fc, err := e.Source.GetFileContent(ctx, e.Owner, e.Repo, path, e.Ref)
	if err != nil {
		if errors.Is(err, hostclient.ErrNotFound) {
			return Record{Path: path, RepoID: repoID, Failure: ReasonNotFound}
		}
		if errors.Is(err, hostclient.ErrBinary) {
			return Record{Path: path, RepoID: repoID, Failure: ReasonBinaryContent}
		}
		return Record{Path: path, RepoID: repoID, Failure: ReasonFetchError}
	}
	if fc.Size > SizeCapBytes || len(fc.Body) > SizeCapBytes {
		return Record{Path: path, RepoID: repoID, Size: fc.Size, Failure: ReasonSizeExceeded}
	}

	// Step 4: binary/encoding detection cascade.
	if looksBinary(fc.Body) {
		return Record{Path: path, RepoID: repoID, Size: fc.Size, Failure: ReasonBinaryContent}
	}
	text, strategy := decode(fc.Body)

	// Step 5: truncate if needed.
	text, truncated := Truncate(text, MaxLines)

	rec := Record{
		Path:      path,
		RepoID:    repoID,
		Bytes:     fc.Body,
		Text:      text,
		Encoding:  strategy,
		Truncated: truncated,
		Size:      fc.Size,
		Failure:   ReasonNone,
		CacheMeta: CacheMeta{CachedAt: time.Now(), TTL: e.ttl()},
	}

	// Step 6: write to cache.
	if e.Cache != nil {
		if b, err := json.Marshal(rec); err == nil {
			_ = e.Cache.Set(ctx, key, b, e.ttl())
		}
	}
	return rec
}

func (e *Extractor) ttl() time.Duration {
	if e.TTL > 0 {
		return e.TTL
	}
	return DefaultTTL
}

// ExtractMany fetches paths concurrently under a shared semaphore
// (spec.md §4.1's concurrency policy, reused here since content fetches
// are the only requests the Content Extractor issues), preserving
// ordering and never failing the whole batch on a partial failure.
func (e *Extractor) ExtractMany(ctx context.Context, paths []string, concurrency int64) []Record {
	if concurrency <= 0 {
		concurrency = 10
	}
	records := make([]Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(concurrency))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			records[i] = e.Extract(gctx, p)
			return nil
		})
	}
	_ = g.Wait() // Extract never returns an error through this path; failures live in Record.Failure.
	return records
}

// ValidationError is returned by configuration helpers that catch an
// obviously misconfigured Extractor before the first request.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks the Extractor has the minimum wiring to run.
func (e *Extractor) Validate() error {
	if e.Source == nil {
		return &ValidationError{Msg: "content: Source is required"}
	}
	if strings.TrimSpace(e.Owner) == "" || strings.TrimSpace(e.Repo) == "" {
		return &ValidationError{Msg: "content: Owner and Repo are required"}
	}
	return nil
}
