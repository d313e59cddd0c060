package selector

import (
	"context"

	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/depgraph"
)

// phase4GhostLazyLoad implements spec.md §4.7 Phase 4: identify ghosts
// ranked in the top ghostPromotionPoolSize by PageRank that are also
// present in the original file tree, fetch their bodies, and promote
// them in-place without rebuilding the graph or re-running PageRank.
func phase4GhostLazyLoad(
	ctx context.Context,
	extractor *content.Extractor,
	builder *depgraph.Builder,
	g *depgraph.Graph,
	pr *depgraph.PageRank,
	treePaths map[string]bool,
	concurrency int64,
) []content.Record {
	top := pr.Top(ghostPromotionPoolSize)

	var toFetch []string
	for _, p := range top {
		if g.IsGhost(p) && treePaths[p] {
			toFetch = append(toFetch, p)
		}
	}
	if len(toFetch) == 0 {
		return nil
	}

	records := extractor.ExtractMany(ctx, toFetch, concurrency)
	for _, r := range records {
		if r.Success() {
			g.LazyLoadGhost(builder, r.Path, r.Text)
		}
	}
	return records
}
