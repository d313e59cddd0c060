package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kss2002/techgiterview-pipeline/internal/composer"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/ids"
	"github.com/kss2002/techgiterview-pipeline/internal/llm"
	"github.com/kss2002/techgiterview-pipeline/internal/lock"
	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

// ErrRepositoryUnavailable is the fatal sentinel raised when the Source
// Fetcher cannot even read the repository descriptor, mirroring the
// teacher's ErrNoUsableSources.
var ErrRepositoryUnavailable = errors.New("pipeline: repository descriptor unavailable")

// ErrAnalysisInProgress is returned when the distributed lock for this
// analysis is already held.
var ErrAnalysisInProgress = errors.New("pipeline: analysis already in progress")

// RepositoryDescribing is the subset of hostclient.Client Coordinator
// needs for §4.1a.
type RepositoryDescribing interface {
	GetRepositoryDescriptor(ctx context.Context, owner, repo string) (hostclient.Descriptor, error)
}

// Selecting is satisfied by *selector.Selector; narrowed for testability.
// Configure lets the Coordinator retarget a long-lived Selector at each
// request's repository before running the 5-phase selection.
type Selecting interface {
	Configure(owner, repo, ref string)
	Select(ctx context.Context) (*selector.SelectionResult, error)
}

// Request bundles one AnalyzeAndGenerate call's parameters (spec.md §6).
type Request struct {
	Owner         string
	Repo          string
	Ref           string
	QuestionCount int
	Difficulty    composer.Difficulty
	Types         []composer.QuestionType
}

// Coordinator sequences the Repository Intelligence Pipeline's stages
// into one AnalysisResult, per spec.md §4.9.
type Coordinator struct {
	Repository RepositoryDescribing
	Selector   Selecting
	Composer   *composer.Composer
	LLM        llm.Client
	Lock       lock.Locker
	LockTTL    time.Duration
	Model      string

	Now func() time.Time
}

func (c *Coordinator) withDefaults() {
	if c.Lock == nil {
		c.Lock = lock.NewInMemoryLocker()
	}
	if c.LockTTL <= 0 {
		c.LockTTL = lock.DefaultTTL
	}
	if c.Composer == nil {
		c.Composer = &composer.Composer{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Run executes §4.9's sequence: repository descriptor → File Selector
// → Prompt Composer → LLM → typed result, threading ctx through every
// stage for cancellation and guarding the whole analysis with a
// distributed lock keyed by owner/repo/ref.
func (c *Coordinator) Run(ctx context.Context, req Request) (*AnalysisResult, error) {
	c.withDefaults()
	analysisID := ids.New()
	lockKey := req.Owner + "/" + req.Repo + "@" + req.Ref

	acquired, err := c.Lock.TryAcquire(ctx, lockKey, c.LockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrAnalysisInProgress
	}
	defer func() {
		if rerr := c.Lock.Release(ctx, lockKey); rerr != nil {
			log.Warn().Err(rerr).Str("key", lockKey).Msg("failed to release analysis lock")
		}
	}()

	descriptor, err := c.Repository.GetRepositoryDescriptor(ctx, req.Owner, req.Repo)
	if err != nil {
		log.Warn().Err(err).Str("owner", req.Owner).Str("repo", req.Repo).Msg("repository descriptor unavailable")
		return nil, ErrRepositoryUnavailable
	}

	c.Selector.Configure(req.Owner, req.Repo, req.Ref)
	selection, err := c.Selector.Select(ctx)
	if err != nil {
		return c.failed(analysisID, req, descriptor, err), err
	}

	weights := composer.PerturbWeights(analysisID)
	files := make([]selector.SelectedFile, len(selection.Files))
	for i, f := range selection.Files {
		f.ImportanceScore = weights.Apply(f.FileRecord)
		files[i] = f
	}

	comp := *c.Composer
	comp.QuestionCount = req.QuestionCount
	comp.Difficulty = req.Difficulty
	comp.Types = req.Types
	packages := comp.Plan(files)

	questions, genWarnings := c.generate(ctx, packages, files)
	warnings := append([]string{}, genWarnings...)
	for _, f := range files {
		if f.Content.Failure != "" {
			warnings = append(warnings, f.Path+": content extraction degraded ("+string(f.Content.Failure)+")")
		}
		if f.DegradationReason != "" {
			warnings = append(warnings, f.Path+": "+f.DegradationReason)
		}
	}

	previews := make(map[string]string, len(files))
	for _, f := range files {
		previews[f.Path] = f.Content.Text
	}
	questions = comp.FilterByQuality(questions, previews)
	questions = composer.Deduplicate(questions)

	result := &AnalysisResult{
		AnalysisID:      analysisID,
		RepositoryOwner: req.Owner,
		RepositoryName:  req.Repo,
		RepositoryRef:   req.Ref,
		PrimaryLanguage: descriptor.Language,
		Questions:       questions,
		Status:          StatusCompleted,
		Success:         true,
		Warnings:        warnings,
		CompletedAt:     c.Now(),
	}
	for _, f := range files {
		result.Files = append(result.Files, f.FileRecord)
	}
	return result, nil
}

// generate calls the LLM once per Prompt Package, retrying up to
// maxAttemptsPerSlot times and sharing a total attempt budget of
// composer.MaxAttemptsPerSlot(len(packages)) across all slots (spec.md
// §4.8/§7). A slot whose attempts are all exhausted falls back to
// composer.TemplateQuestion so the final question count still matches
// the plan, recorded as a warning and with GeneratedBy set accordingly.
func (c *Coordinator) generate(ctx context.Context, packages []composer.PromptPackage, files []selector.SelectedFile) ([]composer.Question, []string) {
	scoreByPath := make(map[string]selector.FileRecord, len(files))
	for _, f := range files {
		scoreByPath[f.Path] = f.FileRecord
	}

	modelBudget := composer.ModelBudget(c.Model)
	attemptBudget := composer.MaxAttemptsPerSlot(len(packages))
	attemptsUsed := 0

	var warnings []string
	questions := make([]composer.Question, 0, len(packages))
	for _, pkg := range packages {
		if pkg.TokenCount > modelBudget {
			log.Warn().Str("file", pkg.FilePath).Int("tokens", pkg.TokenCount).Int("budget", modelBudget).Msg("prompt package exceeds model's context window, sending anyway")
		}

		fr := scoreByPath[pkg.FilePath]
		text, generatedBy, err := c.generateSlot(ctx, pkg, &attemptsUsed, attemptBudget)
		if err != nil {
			log.Warn().Err(err).Str("file", pkg.FilePath).Msg("LLM generation exhausted, substituting template question")
			warnings = append(warnings, pkg.FilePath+": LLM generation failed, substituted template question")
		}
		headline, details := splitHeadline(text)
		questions = append(questions, composer.Question{
			ID:              ids.New(),
			Text:            text,
			Headline:        headline,
			DetailsMarkdown: details,
			Type:            pkg.Type,
			Difficulty:      pkg.Difficulty,
			FilePath:        pkg.FilePath,
			ImportanceScore: fr.ImportanceScore,
			TimeEstimate:    composer.EstimateTime(fr.ComplexityScore),
			GeneratedBy:     generatedBy,
		})
	}
	return questions, warnings
}

// maxAttemptsPerSlot bounds how many times one Prompt Package retries the
// LLM before falling back to a template, independent of the shared
// attemptBudget across all slots.
const maxAttemptsPerSlot = 3

// generateSlot retries pkg's LLM call up to maxAttemptsPerSlot times,
// constrained by the shared attemptBudget, returning the generated text
// and composer.GeneratedByLLM on success or a template question and
// composer.GeneratedByTemplate (plus the last error) once attempts are
// exhausted.
func (c *Coordinator) generateSlot(ctx context.Context, pkg composer.PromptPackage, attemptsUsed *int, attemptBudget int) (string, string, error) {
	if c.LLM == nil {
		return composer.TemplateQuestion(pkg), composer.GeneratedByTemplate, errors.New("no LLM configured")
	}

	var lastErr error
	for attempt := 0; attempt < maxAttemptsPerSlot; attempt++ {
		if *attemptsUsed >= attemptBudget {
			if lastErr == nil {
				lastErr = errors.New("attempt budget exhausted")
			}
			break
		}
		*attemptsUsed++
		resp, err := c.LLM.Generate(ctx, llm.Request{Model: c.Model, User: pkg.ComposedPromptText, Temperature: 0.7})
		if err != nil {
			lastErr = err
			continue
		}
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			lastErr = errors.New("empty completion")
			continue
		}
		return text, composer.GeneratedByLLM, nil
	}
	return composer.TemplateQuestion(pkg), composer.GeneratedByTemplate, lastErr
}

func splitHeadline(text string) (string, string) {
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) == 1 {
		return lines[0], ""
	}
	return lines[0], strings.TrimSpace(lines[1])
}

func (c *Coordinator) failed(analysisID string, req Request, descriptor hostclient.Descriptor, err error) *AnalysisResult {
	return &AnalysisResult{
		AnalysisID:      analysisID,
		RepositoryOwner: req.Owner,
		RepositoryName:  req.Repo,
		RepositoryRef:   req.Ref,
		PrimaryLanguage: descriptor.Language,
		Status:          StatusFailed,
		Success:         false,
		CompletedAt:     c.Now(),
		Error:           err.Error(),
	}
}
