package selector

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/kss2002/techgiterview-pipeline/internal/churn"
	"github.com/kss2002/techgiterview-pipeline/internal/complexity"
	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/depgraph"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/metascore"
)

// ErrNoFilesSelected is the fatal sentinel a Pipeline Coordinator checks
// for, per spec.md §4.9.
var ErrNoFilesSelected = errors.New("selector: no files survived selection")

// TreeProvider is the subset of hostclient.Client Select needs to read
// the repository's file tree.
type TreeProvider interface {
	GetRecursiveTree(ctx context.Context, owner, repo, ref string) ([]hostclient.TreeEntry, error)
}

// CommitHistoryProvider is the subset of hostclient.Client Select needs
// for churn analysis on the final selection.
type CommitHistoryProvider interface {
	GetCommitHistory(ctx context.Context, owner, repo, path string, since time.Time, limit int) ([]hostclient.CommitRecord, error)
}

// Selector orchestrates the 5-phase File Selector (spec.md §4.7).
type Selector struct {
	Tree    TreeProvider
	Commits CommitHistoryProvider
	Content *content.Extractor
	Graph   *depgraph.Builder

	Owner, Repo, Ref string

	TargetCount      int
	ReservedSlots    int
	MMRLambda        float64
	FetchConcurrency int64

	// Now is injectable for deterministic churn recency tests.
	Now func() time.Time
}

func (s *Selector) withDefaults() {
	if s.TargetCount <= 0 {
		s.TargetCount = defaultTargetCount
	}
	if s.ReservedSlots <= 0 {
		s.ReservedSlots = defaultReservedSlots
	}
	if s.MMRLambda <= 0 {
		s.MMRLambda = defaultMMRLambda
	}
	if s.FetchConcurrency <= 0 {
		s.FetchConcurrency = defaultFetchConcurrency
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.Graph == nil {
		s.Graph = &depgraph.Builder{}
	}
}

// Configure points the Selector at a different repository/ref, letting
// one long-lived Selector (and its Content/Graph wiring) serve multiple
// analyses, as the MCP server's per-call owner/repo parameters require.
func (s *Selector) Configure(owner, repo, ref string) {
	s.Owner, s.Repo, s.Ref = owner, repo, ref
	if s.Content != nil {
		s.Content.Owner, s.Content.Repo, s.Content.Ref = owner, repo, ref
	}
}

// Select runs all five phases and returns the final SelectionResult.
func (s *Selector) Select(ctx context.Context) (*SelectionResult, error) {
	s.withDefaults()

	entries, err := s.Tree.GetRecursiveTree(ctx, s.Owner, s.Repo, s.Ref)
	if err != nil {
		return nil, err
	}
	treePaths := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Type == hostclient.EntryFile {
			treePaths[e.Path] = true
		}
	}

	// Phase 1.
	cands := phase1Candidates(entries)

	// Phase 2.
	candPaths := make([]string, len(cands))
	for i, c := range cands {
		candPaths[i] = c.path
	}
	fetched := s.Content.ExtractMany(ctx, candPaths, s.FetchConcurrency)
	byPath := make(map[string]content.Record, len(fetched))
	for _, r := range fetched {
		byPath[r.Path] = r
	}

	// Phase 3.
	successRecords := make([]content.Record, 0, len(fetched))
	for _, r := range fetched {
		if r.Success() {
			successRecords = append(successRecords, r)
		}
	}
	g, pr := phase3Graph(s.Graph, successRecords)

	// Phase 4.
	ghostRecords := phase4GhostLazyLoad(ctx, s.Content, s.Graph, g, pr, treePaths, s.FetchConcurrency)
	ghostsUsed := 0
	for _, r := range ghostRecords {
		byPath[r.Path] = r
		if r.Success() {
			ghostsUsed++
		}
	}

	// Phase 5a.
	reserved := phase5aReserved(ctx, s.Content, entries, byPath, s.ReservedSlots)
	reservedPaths := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		reservedPaths[r.path] = true
		byPath[r.path] = r.content
	}

	// Phase 5b.
	phase5bReweight(cands, pr, reservedPaths)

	// Phase 5c.
	targetLogic := s.TargetCount - len(reserved)
	if targetLogic < 0 {
		targetLogic = 0
	}
	mmrChosen := phase5cMMR(cands, targetLogic, s.MMRLambda)

	// Phase 5d.
	mmrChosen = phase5dPostFilter(mmrChosen)

	files := make([]SelectedFile, 0, len(reserved)+len(mmrChosen))
	for _, r := range reserved {
		files = append(files, s.buildSelectedFile(ctx, r.path, r.size, r.score, "reserved_manifest", byPath, pr))
	}
	for _, c := range mmrChosen {
		files = append(files, s.buildSelectedFile(ctx, c.path, c.size, c.weightedScore, "mmr_selected", byPath, pr))
	}

	if len(files) == 0 {
		return nil, ErrNoFilesSelected
	}

	return &SelectionResult{Files: files, Candidates: len(cands), GhostsUsed: ghostsUsed}, nil
}

// buildSelectedFile computes the full four-dimensional FileRecord for a
// chosen path: metadata (recomputed against the fetched text), PageRank
// centrality, churn (from commit history, default 0.3 when unavailable),
// and complexity, then folds them into importance_score.
func (s *Selector) buildSelectedFile(ctx context.Context, path string, size int64, selectedScore float64, reason string, byPath map[string]content.Record, pr *depgraph.PageRank) SelectedFile {
	rec := byPath[path]
	text := rec.Text

	metadataScore := metascore.Score(path, size, text)
	centralityScore := math.Max(0.05, pr.Score(path))

	var degradations []string

	churnMetrics := churn.Metrics{ChurnScore: 0.3, StabilityScore: 1.0}
	churnMeasured := false
	if s.Commits != nil {
		since := s.Now().Add(-365 * 24 * time.Hour)
		if commits, err := s.Commits.GetCommitHistory(ctx, s.Owner, s.Repo, path, since, 100); err == nil {
			churnMetrics = churn.Analyze(commits, 1, s.Now())
			churnMeasured = len(commits) > 0
		}
	}
	if !churnMeasured {
		degradations = append(degradations, "churn_defaulted")
	}

	complexityMetrics := complexity.Metrics{ComplexityScore: 0.5}
	if text != "" {
		complexityMetrics = complexity.Analyze(path, text)
	} else {
		degradations = append(degradations, "complexity_defaulted")
	}

	fr := FileRecord{
		Path:            path,
		Size:            size,
		Classification:  classify(path),
		MetadataScore:   metadataScore,
		CentralityScore: centralityScore,
		ChurnScore:      churnMetrics.ChurnScore,
		ComplexityScore: complexityMetrics.ComplexityScore,
	}
	fr.ImportanceScore = computeImportanceScore(path, fr.MetadataScore, fr.CentralityScore, fr.ChurnScore, fr.ComplexityScore, size)

	return SelectedFile{
		FileRecord:        fr,
		SelectionReason:   reason,
		SelectedScore:     selectedScore,
		Content:           rec,
		DegradationReason: strings.Join(degradations, ","),
	}
}
