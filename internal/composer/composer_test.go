package composer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

func sampleFile(path string) selector.SelectedFile {
	return selector.SelectedFile{
		FileRecord: selector.FileRecord{
			Path:            path,
			MetadataScore:   0.8,
			CentralityScore: 0.6,
			ChurnScore:      0.4,
			ComplexityScore: 0.5,
			ImportanceScore: 0.65,
		},
		Content: content.Record{
			Path: path,
			Text: "package core\n\nfunc HandleRequest(w ResponseWriter, r *Request) error {\n\treturn nil\n}\n",
		},
	}
}

func TestClassifyFile_Controller(t *testing.T) {
	require.Equal(t, ClassController, ClassifyFile("api/handlers/user_controller.go"))
}

func TestClassifyFile_Frontend(t *testing.T) {
	require.Equal(t, ClassFrontend, ClassifyFile("web/src/components/Button.tsx"))
}

func TestDistributeQuestionTypes_RemainderToEarliestTypes(t *testing.T) {
	dist := DistributeQuestionTypes(9, []QuestionType{TypeTechStack, TypeArchitecture, TypeCodeAnalysis})
	require.Equal(t, 3, dist[TypeTechStack])
	require.Equal(t, 3, dist[TypeArchitecture])
	require.Equal(t, 3, dist[TypeCodeAnalysis])

	dist2 := DistributeQuestionTypes(10, []QuestionType{TypeTechStack, TypeArchitecture, TypeCodeAnalysis})
	require.Equal(t, 4, dist2[TypeTechStack])
	require.Equal(t, 3, dist2[TypeArchitecture])
	require.Equal(t, 3, dist2[TypeCodeAnalysis])
}

func TestBuildPrompt_IncludesPathAndScores(t *testing.T) {
	f := sampleFile("api/handlers/user_controller.go")
	pkg := BuildPrompt(f, TypeCodeAnalysis, DifficultyMedium, 0)
	require.Contains(t, pkg.ComposedPromptText, f.Path)
	require.Contains(t, pkg.ComposedPromptText, "HandleRequest")
	require.Equal(t, f.MetadataScore, pkg.MultiDimensionalContext.Metadata)
	require.Greater(t, pkg.TokenCount, 0)
}

func TestPerturbWeights_SumsToOne(t *testing.T) {
	w := PerturbWeights("analysis-123")
	sum := w.Metadata + w.Centrality + w.Churn + w.Complexity
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestPerturbWeights_DeterministicForSameSeed(t *testing.T) {
	require.Equal(t, PerturbWeights("same"), PerturbWeights("same"))
}

func TestDeduplicate_DropsSimilarSameFileQuestion(t *testing.T) {
	qs := []Question{
		{Text: "How does HandleRequest validate the incoming request body?", FilePath: "a.go"},
		{Text: "How does HandleRequest validate the incoming request body here?", FilePath: "a.go"},
	}
	out := Deduplicate(qs)
	require.Len(t, out, 1)
}

func TestScoreQuestion_HedgingWordZeroesComponent(t *testing.T) {
	preview := "func HandleRequest(w ResponseWriter, r *Request) error { return nil }"
	withHedge := Question{Text: "Generally, assuming typical usage, what does HandleRequest do with the request parameter across twenty words here today now."}
	require.Less(t, ScoreQuestion(withHedge, preview), ScoreQuestion(Question{Text: "What does HandleRequest do with the incoming request parameter across twenty total words here today now friend."}, preview))
}

func TestComposer_Plan_ProducesRequestedCount(t *testing.T) {
	c := &Composer{QuestionCount: 6, Types: []QuestionType{TypeTechStack, TypeCodeAnalysis}}
	files := []selector.SelectedFile{sampleFile("a.go"), sampleFile("b.go")}
	packages := c.Plan(files)
	require.Len(t, packages, 6)
}

func TestComposer_FilterByQuality_DropsLowScoring(t *testing.T) {
	c := &Composer{MinQuality: 0.9}
	qs := []Question{{Text: "short", FilePath: "a.go"}}
	out := c.FilterByQuality(qs, map[string]string{"a.go": "package a"})
	require.Empty(t, out)
}

func TestComposer_FilterByQuality_TemplateQuestionsBypassScoring(t *testing.T) {
	c := &Composer{MinQuality: 0.9}
	qs := []Question{{Text: "short", FilePath: "a.go", GeneratedBy: GeneratedByTemplate}}
	out := c.FilterByQuality(qs, map[string]string{"a.go": "package a"})
	require.Len(t, out, 1)
	require.Equal(t, 1.0, out[0].QualityScore)
}

func TestTemplateQuestion_UsesTypeSpecificTemplate(t *testing.T) {
	pkg := PromptPackage{FilePath: "core/engine.go", FocusAngle: "error propagation", Type: TypeArchitecture}
	text := TemplateQuestion(pkg)
	require.Contains(t, text, "core/engine.go")
	require.Contains(t, text, "error propagation")
	require.Contains(t, text, "broader architecture")
}

func TestTemplateQuestion_FallsBackToGenericForUnknownType(t *testing.T) {
	pkg := PromptPackage{FilePath: "core/engine.go", FocusAngle: "testing approach", Type: QuestionType("unknown")}
	text := TemplateQuestion(pkg)
	require.Contains(t, text, "core/engine.go")
	require.Contains(t, text, "testing approach")
	require.Contains(t, text, "What should a reviewer understand")
}
