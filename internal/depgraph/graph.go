package depgraph

// Graph is the directed Dependency Graph of spec.md §3: vertices are
// every fetched file path plus every ghost node (an unresolved import
// target); an edge u->v means "u imports from v". Multiple edges
// between the same pair collapse to one.
type Graph struct {
	nodes map[string]bool
	ghost map[string]bool
	edges map[string]map[string]bool // u -> set of v
	in    map[string]map[string]bool // v -> set of u, kept for PageRank's incoming-edge walk
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		ghost: make(map[string]bool),
		edges: make(map[string]map[string]bool),
		in:    make(map[string]map[string]bool),
	}
}

// AddNode registers path as a vertex if not already present.
func (g *Graph) AddNode(path string) {
	if !g.nodes[path] {
		g.nodes[path] = true
		g.edges[path] = make(map[string]bool)
		g.in[path] = make(map[string]bool)
	}
}

// AddGhost registers path as a ghost node: an import target with no
// fetched content.
func (g *Graph) AddGhost(path string) {
	g.AddNode(path)
	g.ghost[path] = true
}

// AddEdge records "from imports target", adding either endpoint as a
// node first if needed. Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	if !g.nodes[to] {
		g.AddGhost(to)
	}
	g.edges[from][to] = true
	g.in[to][from] = true
}

// PromoteGhost clears a node's ghost flag once its content has been
// lazy-loaded (spec.md §4.7 Phase 4), without rebuilding the graph.
func (g *Graph) PromoteGhost(path string) {
	delete(g.ghost, path)
}

// IsGhost reports whether path currently has no fetched content.
func (g *Graph) IsGhost(path string) bool {
	return g.ghost[path]
}

// Nodes returns every vertex path, in no particular order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// OutEdges returns the set of paths from directly imports.
func (g *Graph) OutEdges(from string) []string {
	m := g.edges[from]
	out := make([]string, 0, len(m))
	for to := range m {
		out = append(out, to)
	}
	return out
}

// InEdges returns the set of paths that directly import to.
func (g *Graph) InEdges(to string) []string {
	m := g.in[to]
	out := make([]string, 0, len(m))
	for from := range m {
		out = append(out, from)
	}
	return out
}

// OutDegree reports how many distinct targets from imports.
func (g *Graph) OutDegree(from string) int {
	return len(g.edges[from])
}
