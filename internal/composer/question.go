package composer

// QuestionType mirrors spec.md §4.8's requested question types.
type QuestionType string

const (
	TypeTechStack     QuestionType = "tech_stack"
	TypeArchitecture  QuestionType = "architecture"
	TypeCodeAnalysis  QuestionType = "code_analysis"
)

// Difficulty mirrors spec.md §4.8's difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PromptPackage is spec.md §3's Prompt Package: the fully composed
// prompt text plus the metadata needed to interpret and re-derive its
// grounding.
type PromptPackage struct {
	ComposedPromptText      string
	FileReferences          []string
	TokenCount              int
	MultiDimensionalContext ContextScores
	FilePath                string
	Type                    QuestionType
	Difficulty              Difficulty
	FocusAngle              string
}

// ContextScores is the four-dimensional context spec.md §4.8 requires
// every composed prompt to surface with a short explanation.
type ContextScores struct {
	Metadata   float64
	Centrality float64
	Churn      float64
	Complexity float64
}

// GeneratedBy records whether a Question came from the LLM or from the
// template fallback used when generation is exhausted (spec.md §7).
const (
	GeneratedByLLM      = "llm"
	GeneratedByTemplate = "template"
)

// Question is spec.md §3's Question Record.
type Question struct {
	ID              string
	Text            string
	Headline        string
	DetailsMarkdown string
	Type            QuestionType
	Difficulty      Difficulty
	FilePath        string
	ImportanceScore float64
	TimeEstimate    string
	QualityScore    float64
	GeneratedBy     string
}
