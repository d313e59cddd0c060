package depgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractImports_Python(t *testing.T) {
	content := "import os\nfrom app.services import helper\n"
	targets := ExtractImports("app/main.py", content)
	require.Contains(t, targets, "os")
	require.Contains(t, targets, "app.services")
}

func TestExtractImports_GoBlockForm(t *testing.T) {
	content := "package main\n\nimport (\n\t\"fmt\"\n\tos \"os\"\n)\n"
	targets := ExtractImports("main.go", content)
	require.Contains(t, targets, "fmt")
	require.Contains(t, targets, "os")
}

func TestExtractImports_JavaScript(t *testing.T) {
	content := "import foo from \"./foo\";\nconst bar = require(\"bar\");\n"
	targets := ExtractImports("index.js", content)
	require.Contains(t, targets, "./foo")
	require.Contains(t, targets, "bar")
}

func TestResolve_PythonDottedModule(t *testing.T) {
	all := []string{"app/services/helper.py", "app/main.py"}
	resolved, ok := Resolve("app.services.helper", "app/main.py", all)
	require.True(t, ok)
	require.Equal(t, "app/services/helper.py", resolved)
}

func TestBuilder_Build_AddsGhostForUnresolvedImport(t *testing.T) {
	b := &Builder{}
	files := []FileInput{
		{Path: "app/main.py", Content: "import unknown_pkg\n"},
	}
	g := b.Build(files)
	require.True(t, g.IsGhost("implicit:unknown_pkg"))
	require.Contains(t, g.OutEdges("app/main.py"), "implicit:unknown_pkg")
}

func TestPageRank_FloorForIsolatedNode(t *testing.T) {
	g := NewGraph()
	g.AddNode("isolated.go")
	pr := Compute(g)
	require.InDelta(t, FloorScore, pr.Score("isolated.go"), 1e-9)
	require.Equal(t, FloorScore, pr.Score("never-seen.go"))
}

func TestPageRank_HubScoresHigherThanLeaf(t *testing.T) {
	b := &Builder{}
	files := []FileInput{
		{Path: "a.go", Content: "import (\n\t\"hub\"\n)\n"},
		{Path: "b.go", Content: "import (\n\t\"hub\"\n)\n"},
		{Path: "c.go", Content: "import (\n\t\"hub\"\n)\n"},
		{Path: "hub.go", Content: "package hub\n"},
	}
	// Rename the fetched file to "hub" so the "hub" import resolves to it.
	files[3].Path = "hub"
	g := b.Build(files)
	pr := Compute(g)
	require.Greater(t, pr.Score("hub"), pr.Score("a.go"))
}
