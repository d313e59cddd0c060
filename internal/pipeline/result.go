// Package pipeline implements the Pipeline Coordinator (spec.md §4.9):
// it sequences Source Fetcher → File Selector → Prompt Composer → LLM
// into a typed AnalysisResult, owning cancellation, per-stage error
// isolation, and the distributed lock. Grounded on the teacher's
// internal/app/app.go Run method: a strictly sequential stage pipeline
// with a fatal sentinel error and a result-assembly tail.
package pipeline

import (
	"time"

	"github.com/kss2002/techgiterview-pipeline/internal/composer"
	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

// Status mirrors the recommended persistence row shape's status column
// (spec.md §9).
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// AnalysisResult is the Pipeline Coordinator's typed output: the
// repository identity, every selected File Record, and the generated
// Question Records.
type AnalysisResult struct {
	AnalysisID      string
	RepositoryOwner string
	RepositoryName  string
	RepositoryRef   string
	PrimaryLanguage string
	Files           []selector.FileRecord
	Questions       []composer.Question
	Status          Status
	// Success mirrors Status but as the boolean spec.md §7 specifies for
	// the result envelope; false only for a fatal (Status == StatusFailed)
	// run, true even when Warnings records recoverable degradations.
	Success     bool
	Warnings    []string
	CompletedAt time.Time
	Error       string
}
