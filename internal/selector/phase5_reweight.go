package selector

import (
	"path"
	"strings"

	"github.com/kss2002/techgiterview-pipeline/internal/depgraph"
)

// phase5bReweight implements spec.md §4.7 Phase 5b: copy each candidate's
// PageRank score into weighted_score, then apply the architectural
// bonus/penalty cascade. reservedPaths are scored -1.0 so they never win
// an MMR slot (they are already selected).
func phase5bReweight(cands []candidate, pr *depgraph.PageRank, reservedPaths map[string]bool) {
	for i := range cands {
		c := &cands[i]
		c.weightedScore = pr.Score(c.path)

		if reservedPaths[c.path] {
			c.weightedScore = -1.0
			c.reserved = true
			continue
		}
		if isTestPath(c.path) {
			c.weightedScore = 0.0
			continue
		}
		if isLogicDir(c.path) {
			c.weightedScore *= 3.0
			continue
		}
		ext := strings.ToLower(path.Ext(c.path))
		if docExtensions[ext] {
			c.weightedScore *= 0.1
		} else if configExtensions[ext] {
			c.weightedScore *= 0.2
		}
	}
}
