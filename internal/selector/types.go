// Package selector implements the File Selector (spec.md §4.7): the
// 5-phase pipeline (Candidate Selection, Parallel Fetch, PageRank,
// Ghost Lazy-Load, Hybrid Reserved+MMR Selection) that turns a
// repository's file tree into a bounded, diverse, high-signal set of
// Content Records, grounded on the Python RepositoryAnalyzer's
// _select_important_files/_select_files_with_mmr/_calculate_similarity
// and on the teacher's internal/select/select.go (diversity-aware
// selection with per-domain caps, generalized here into the spec's
// reserved-slot and weighted-MMR stages).
package selector

import (
	"time"

	"github.com/kss2002/techgiterview-pipeline/internal/content"
)

// Classification mirrors spec.md §3's File Record classification.
type Classification string

const (
	ClassSource        Classification = "source"
	ClassConfig        Classification = "config"
	ClassDocumentation Classification = "documentation"
	ClassTest          Classification = "test"
	ClassOther         Classification = "other"
)

// FileRecord is spec.md §3's File Record: a path plus its four
// per-dimension scores and their importance_score composite.
type FileRecord struct {
	Path            string
	Size            int64
	Classification  Classification
	MetadataScore   float64
	CentralityScore float64
	ChurnScore      float64
	ComplexityScore float64
	ImportanceScore float64
}

// SelectedFile is one member of the final selection: a FileRecord, why
// it was chosen, the score that earned its slot, and its fetched
// content.
type SelectedFile struct {
	FileRecord
	SelectionReason string
	SelectedScore   float64
	Content         content.Record
	// DegradationReason is non-empty when churn or complexity analysis
	// fell back to a default instead of a real measurement (no commit
	// history, or no text to analyze), per spec.md §7's graceful
	// degradation contract.
	DegradationReason string
}

// SelectionResult is the File Selector's output: up to TargetCount
// fully-fetched, scored files.
type SelectionResult struct {
	Files      []SelectedFile
	Candidates int // size of the Phase 1 candidate set actually considered
	GhostsUsed int // ghosts promoted during Phase 4
}

// candidate is the Phase 1/5 working representation: a path with its
// metadata score and (once computed) PageRank-derived weighted score.
type candidate struct {
	path           string
	size           int64
	metadataScore  float64
	weightedScore  float64
	reserved       bool
}

const (
	defaultTargetCount      = 12
	defaultReservedSlots    = 2
	defaultMMRLambda        = 0.6
	defaultFetchConcurrency = 10
	candidatePoolSize       = 50
	ghostPromotionPoolSize  = 20
	churnLookbackWindow     = 90 * 24 * time.Hour
)
