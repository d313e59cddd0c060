package depgraph

import "strings"

// FileInput is one fetched file's path and decoded text, the unit the
// Builder consumes (spec.md §4.7 Phase 3: "Build the graph per §4.3 over
// the fetched candidates").
type FileInput struct {
	Path    string
	Content string
}

// Builder assembles the Dependency Graph from a set of fetched files,
// optionally sharpening Python edges with a tree-sitter AST pass.
type Builder struct {
	PythonAST *PythonASTExtractor // optional; nil disables the AST pass
}

// Build constructs the graph: every fetched file becomes a node, every
// resolved import becomes an edge to another known path, and every
// unresolved import becomes an edge to a ghost node named
// "implicit:<target>" (spec.md §4.3).
func (b *Builder) Build(files []FileInput) *Graph {
	g := NewGraph()
	allPaths := make([]string, len(files))
	for i, f := range files {
		allPaths[i] = f.Path
		g.AddNode(f.Path)
	}

	for _, f := range files {
		for _, target := range b.extractImports(f) {
			if resolved, ok := Resolve(target, f.Path, allPaths); ok {
				g.AddEdge(f.Path, resolved)
				continue
			}
			g.AddEdge(f.Path, "implicit:"+target)
		}
	}
	return g
}

// extractImports runs the AST pass for Python files when available,
// falling back to the regex cascade when the AST pass is disabled or
// the file fails to parse.
func (b *Builder) extractImports(f FileInput) []string {
	if b.PythonAST != nil && DetectLanguage(f.Path) == LangPython {
		if targets, ok := b.PythonAST.Extract(f.Content); ok {
			return targets
		}
	}
	return ExtractImports(f.Path, f.Content)
}

// LazyLoadGhost adds out-edges for a ghost node whose content has just
// been fetched (spec.md §4.7 Phase 4), without touching any other part
// of the graph or re-running PageRank.
func (g *Graph) LazyLoadGhost(b *Builder, path, content string) {
	g.PromoteGhost(path)
	allPaths := g.Nodes()
	for _, target := range b.extractImports(FileInput{Path: path, Content: content}) {
		if resolved, ok := Resolve(target, path, allPaths); ok {
			g.AddEdge(path, resolved)
			continue
		}
		if !strings.HasPrefix(target, ".") {
			g.AddEdge(path, "implicit:"+target)
		}
	}
}
