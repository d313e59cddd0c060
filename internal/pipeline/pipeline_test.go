package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kss2002/techgiterview-pipeline/internal/composer"
	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/llm"
	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

type fakeRepository struct {
	descriptor hostclient.Descriptor
	err        error
}

func (f *fakeRepository) GetRepositoryDescriptor(ctx context.Context, owner, repo string) (hostclient.Descriptor, error) {
	return f.descriptor, f.err
}

type fakeSelector struct {
	result *selector.SelectionResult
	err    error
}

func (f *fakeSelector) Configure(owner, repo, ref string) {}

func (f *fakeSelector) Select(ctx context.Context) (*selector.SelectionResult, error) {
	return f.result, f.err
}

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Text: f.reply}, nil
}

func sampleSelection() *selector.SelectionResult {
	return &selector.SelectionResult{
		Candidates: 10,
		GhostsUsed: 1,
		Files: []selector.SelectedFile{
			{
				FileRecord: selector.FileRecord{
					Path:            "core/engine.go",
					Classification:  selector.ClassSource,
					MetadataScore:   0.8,
					CentralityScore: 0.6,
					ChurnScore:      0.4,
					ComplexityScore: 0.3,
				},
				SelectionReason: "mmr_selected",
				Content: content.Record{
					Path: "core/engine.go",
					Text: "package core\n\nfunc Run() error {\n\treturn nil\n}\n",
				},
			},
		},
	}
}

func TestCoordinator_Run_HappyPath(t *testing.T) {
	c := &Coordinator{
		Repository: &fakeRepository{descriptor: hostclient.Descriptor{FullName: "acme/widgets", Language: "Go"}},
		Selector:   &fakeSelector{result: sampleSelection()},
		Composer:   &composer.Composer{QuestionCount: 3, Types: []composer.QuestionType{composer.TypeTechStack, composer.TypeArchitecture, composer.TypeCodeAnalysis}, MinQuality: 0},
		LLM:        &fakeLLM{reply: "What does Run guard against?\nIt returns nil on the happy path, covering the Run identifier across twenty words now friend today ok."},
	}

	result, err := c.Run(context.Background(), Request{Owner: "acme", Repo: "widgets", Ref: "main", QuestionCount: 3})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, result.Status)
	require.True(t, result.Success)
	require.Empty(t, result.Warnings)
	require.Equal(t, "Go", result.PrimaryLanguage)
	require.Len(t, result.Files, 1)
	require.NotEmpty(t, result.Questions)
	for _, q := range result.Questions {
		require.NotEmpty(t, q.ID)
		require.NotEmpty(t, q.FilePath)
		require.Equal(t, composer.GeneratedByLLM, q.GeneratedBy)
	}
}

func TestCoordinator_Run_RepositoryUnavailableIsFatal(t *testing.T) {
	c := &Coordinator{
		Repository: &fakeRepository{err: context.DeadlineExceeded},
		Selector:   &fakeSelector{result: sampleSelection()},
		LLM:        &fakeLLM{reply: "irrelevant"},
	}

	_, err := c.Run(context.Background(), Request{Owner: "acme", Repo: "widgets", Ref: "main"})
	require.ErrorIs(t, err, ErrRepositoryUnavailable)
}

func TestCoordinator_Run_NoFilesSelectedMarksFailed(t *testing.T) {
	c := &Coordinator{
		Repository: &fakeRepository{descriptor: hostclient.Descriptor{FullName: "acme/widgets", Language: "Go"}},
		Selector:   &fakeSelector{err: selector.ErrNoFilesSelected},
		LLM:        &fakeLLM{reply: "irrelevant"},
	}

	result, err := c.Run(context.Background(), Request{Owner: "acme", Repo: "widgets", Ref: "main"})
	require.ErrorIs(t, err, selector.ErrNoFilesSelected)
	require.NotNil(t, result)
	require.Equal(t, StatusFailed, result.Status)
	require.False(t, result.Success)
}

func TestCoordinator_Run_LLMExhaustedFallsBackToTemplate(t *testing.T) {
	c := &Coordinator{
		Repository: &fakeRepository{descriptor: hostclient.Descriptor{FullName: "acme/widgets", Language: "Go"}},
		Selector:   &fakeSelector{result: sampleSelection()},
		Composer:   &composer.Composer{QuestionCount: 3, Types: []composer.QuestionType{composer.TypeTechStack, composer.TypeArchitecture, composer.TypeCodeAnalysis}, MinQuality: 0},
		LLM:        &fakeLLM{err: errors.New("provider unavailable")},
	}

	result, err := c.Run(context.Background(), Request{Owner: "acme", Repo: "widgets", Ref: "main", QuestionCount: 3})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotEmpty(t, result.Questions)
	require.NotEmpty(t, result.Warnings)
	for _, q := range result.Questions {
		require.Equal(t, composer.GeneratedByTemplate, q.GeneratedBy)
		require.NotEmpty(t, q.Text)
	}
}

func TestCoordinator_Run_SecondCallWhileLockedReturnsInProgress(t *testing.T) {
	held := map[string]bool{}
	lk := &blockingLocker{held: held}
	c1 := &Coordinator{
		Repository: &fakeRepository{descriptor: hostclient.Descriptor{FullName: "acme/widgets"}},
		Selector:   &fakeSelector{result: sampleSelection()},
		LLM:        &fakeLLM{reply: "q"},
		Lock:       lk,
	}
	lk.lockedNextAcquire = true

	_, err := c1.Run(context.Background(), Request{Owner: "acme", Repo: "widgets", Ref: "main"})
	require.ErrorIs(t, err, ErrAnalysisInProgress)
}

// blockingLocker lets a single test force TryAcquire to report the lock as
// already held, without needing real concurrency.
type blockingLocker struct {
	held              map[string]bool
	lockedNextAcquire bool
}

func (b *blockingLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return !b.lockedNextAcquire, nil
}

func (b *blockingLocker) Release(ctx context.Context, key string) error {
	return nil
}
