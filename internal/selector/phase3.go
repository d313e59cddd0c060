package selector

import (
	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/depgraph"
)

// phase3Graph implements spec.md §4.7 Phase 3: build the Dependency
// Graph over the fetched candidates and compute PageRank over it
// (including ghost nodes).
func phase3Graph(builder *depgraph.Builder, records []content.Record) (*depgraph.Graph, *depgraph.PageRank) {
	inputs := make([]depgraph.FileInput, 0, len(records))
	for _, r := range records {
		if !r.Success() {
			continue
		}
		inputs = append(inputs, depgraph.FileInput{Path: r.Path, Content: r.Text})
	}
	g := builder.Build(inputs)
	pr := depgraph.Compute(g)
	return g, pr
}
