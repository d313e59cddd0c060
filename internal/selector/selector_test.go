package selector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
)

type fakeTree struct {
	entries []hostclient.TreeEntry
}

func (f *fakeTree) GetRecursiveTree(ctx context.Context, owner, repo, ref string) ([]hostclient.TreeEntry, error) {
	return f.entries, nil
}

type fakeCommits struct{}

func (f *fakeCommits) GetCommitHistory(ctx context.Context, owner, repo, path string, since time.Time, limit int) ([]hostclient.CommitRecord, error) {
	return nil, nil
}

type fakeSource struct {
	bodies map[string]string
}

func (f *fakeSource) GetFileContent(ctx context.Context, owner, repo, path, ref string) (hostclient.FileContent, error) {
	body, ok := f.bodies[path]
	if !ok {
		return hostclient.FileContent{}, hostclient.ErrNotFound
	}
	return hostclient.FileContent{Path: path, Body: []byte(body), Size: int64(len(body))}, nil
}

func newTestSelector(t *testing.T, entries []hostclient.TreeEntry, bodies map[string]string) *Selector {
	t.Helper()
	extractor := &content.Extractor{
		Source: &fakeSource{bodies: bodies},
		Owner:  "acme",
		Repo:   "widgets",
		Ref:    "main",
	}
	return &Selector{
		Tree:             &fakeTree{entries: entries},
		Commits:          &fakeCommits{},
		Content:          extractor,
		Owner:            "acme",
		Repo:             "widgets",
		Ref:              "main",
		TargetCount:      4,
		ReservedSlots:    1,
		FetchConcurrency: 4,
	}
}

func TestSelect_ReturnsReservedManifestAndLogicFiles(t *testing.T) {
	entries := []hostclient.TreeEntry{
		{Path: "go.mod", Type: hostclient.EntryFile, Size: 80},
		{Path: "core/engine.go", Type: hostclient.EntryFile, Size: 1200},
		{Path: "core/helper.go", Type: hostclient.EntryFile, Size: 800},
		{Path: "docs/readme.md", Type: hostclient.EntryFile, Size: 400},
		{Path: "core/engine_test.go", Type: hostclient.EntryFile, Size: 600},
	}
	bodies := map[string]string{
		"go.mod":              "module acme/widgets\n\ngo 1.24\n",
		"core/engine.go":      "package core\n\nimport \"acme/widgets/core/helper\"\n\nfunc Run() { helper.Do() }\n",
		"core/helper.go":      "package core\n\nfunc Do() {}\n",
		"docs/readme.md":      "# Widgets\n\nDocumentation.\n",
		"core/engine_test.go": "package core\n\nimport \"testing\"\n\nfunc TestRun(t *testing.T) {}\n",
	}
	sel := newTestSelector(t, entries, bodies)

	result, err := sel.Select(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.Files)

	var sawManifest bool
	for _, f := range result.Files {
		require.NotContains(t, f.Path, "_test.go")
		if f.Path == "go.mod" {
			sawManifest = true
			require.Equal(t, "reserved_manifest", f.SelectionReason)
		}
		require.GreaterOrEqual(t, f.ImportanceScore, 0.0)
		require.LessOrEqual(t, f.ImportanceScore, 1.0)
	}
	require.True(t, sawManifest)
}

func TestSelect_NoFilesReturnsSentinelError(t *testing.T) {
	sel := newTestSelector(t, nil, nil)
	_, err := sel.Select(context.Background())
	require.ErrorIs(t, err, ErrNoFilesSelected)
}

func TestPathSimilarity_SameDirectoryIsHigh(t *testing.T) {
	require.Greater(t, pathSimilarity("core/a.go", "core/b.go"), pathSimilarity("core/a.go", "docs/b.md"))
}

func TestPathSimilarity_BothTestPathsMaximal(t *testing.T) {
	require.Equal(t, 1.0, pathSimilarity("core/a_test.go", "api/b_test.go"))
}

func TestSizePenalty_FloorsAtPoint3(t *testing.T) {
	require.Equal(t, 1.0, sizePenalty(1000))
	require.GreaterOrEqual(t, sizePenalty(5_000_000), 0.3)
}

func TestPhase5dPostFilter_RemovesTestPaths(t *testing.T) {
	in := []candidate{{path: "core/a.go"}, {path: "core/a_test.go"}, {path: "spec/b.go"}}
	out := phase5dPostFilter(in)
	require.Len(t, out, 1)
	require.Equal(t, "core/a.go", out[0].path)
}
