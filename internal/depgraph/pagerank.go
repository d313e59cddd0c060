package depgraph

import "sort"

// No generic graph/PageRank library appears anywhere in the reference
// pack (networkx is Python-only; none of the four Go example repos
// import a graph-theory package), so PageRank is hand-rolled here,
// following the damping/iteration/floor constants spec.md §4.3
// specifies directly rather than any one library's defaults. This is
// recorded as a standard-library-only exception in DESIGN.md.

const (
	// Damping is the PageRank damping factor.
	Damping = 0.85
	// MaxIterations bounds the power-iteration loop.
	MaxIterations = 100
	// FloorScore is assigned to nodes the PageRank computation does not
	// otherwise reach, and to unknown paths queried via Score.
	FloorScore = 0.05
	// convergenceEpsilon stops iteration early once scores stabilize,
	// an optimization the spec's "max 100 iterations" phrasing allows
	// for (a cap, not a mandate to always run the full count).
	convergenceEpsilon = 1e-6
)

// PageRank computes centrality scores over every node in g (including
// ghosts), per spec.md §4.3's "Centrality computation" paragraph.
type PageRank struct {
	scores map[string]float64
}

// Compute runs power-iteration PageRank over g.
func Compute(g *Graph) *PageRank {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return &PageRank{scores: map[string]float64{}}
	}

	scores := make(map[string]float64, n)
	for _, node := range nodes {
		scores[node] = 1.0 / float64(n)
	}

	base := (1.0 - Damping) / float64(n)
	for iter := 0; iter < MaxIterations; iter++ {
		next := make(map[string]float64, n)
		// Redistribute dangling-node mass (no out-edges) across all nodes,
		// matching the standard PageRank treatment of sinks.
		var danglingMass float64
		for _, node := range nodes {
			if g.OutDegree(node) == 0 {
				danglingMass += scores[node]
			}
		}
		danglingShare := Damping * danglingMass / float64(n)

		for _, node := range nodes {
			sum := 0.0
			for _, from := range g.InEdges(node) {
				outDeg := g.OutDegree(from)
				if outDeg == 0 {
					continue
				}
				sum += scores[from] / float64(outDeg)
			}
			next[node] = base + Damping*sum + danglingShare
		}

		delta := 0.0
		for _, node := range nodes {
			d := next[node] - scores[node]
			if d < 0 {
				d = -d
			}
			delta += d
		}
		scores = next
		if delta < convergenceEpsilon {
			break
		}
	}

	// A node with no edges at all is never reached through the link
	// structure, so it is left out and Score gives it FloorScore.
	for _, node := range nodes {
		if g.OutDegree(node) == 0 && len(g.InEdges(node)) == 0 {
			delete(scores, node)
		}
	}

	return &PageRank{scores: scores}
}

// Score returns node's PageRank score, falling back to FloorScore for
// nodes the computation did not reach or that aren't in the graph at
// all (spec.md §4.3: "falling back to 0.05 for unknown paths").
func (pr *PageRank) Score(path string) float64 {
	if pr == nil {
		return FloorScore
	}
	if s, ok := pr.scores[path]; ok && s > 0 {
		return s
	}
	return FloorScore
}

// Top returns the n highest-scoring paths, descending.
func (pr *PageRank) Top(n int) []string {
	type pair struct {
		path  string
		score float64
	}
	pairs := make([]pair, 0, len(pr.scores))
	for p, s := range pr.scores {
		pairs = append(pairs, pair{p, s})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })
	if n > len(pairs) {
		n = len(pairs)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pairs[i].path
	}
	return out
}
