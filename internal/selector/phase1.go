package selector

import (
	"sort"

	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/metascore"
)

// phase1Candidates implements spec.md §4.7 Phase 1: score every file by
// the Metadata Scorer (content text unavailable at this stage, so
// ContentComplexitySignal falls back to its neutral default), apply
// candidate boosting/flooring, and take the top candidatePoolSize paths.
func phase1Candidates(entries []hostclient.TreeEntry) []candidate {
	cands := make([]candidate, 0, len(entries))
	for _, e := range entries {
		if e.Type != hostclient.EntryFile {
			continue
		}
		score := metascore.Score(e.Path, e.Size, "")
		switch {
		case isExcludedDir(e.Path):
			score = 0.01
		case isLogicDir(e.Path):
			score = minFloat(1.0, score+0.5)
		}
		cands = append(cands, candidate{path: e.Path, size: e.Size, metadataScore: score})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].metadataScore > cands[j].metadataScore
	})
	if len(cands) > candidatePoolSize {
		cands = cands[:candidatePoolSize]
	}
	return cands
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
