package composer

import (
	"fmt"
	"path"
	"strings"

	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

var languageByExt = map[string]string{
	".go": "go", ".py": "python", ".js": "javascript", ".jsx": "jsx",
	".ts": "typescript", ".tsx": "tsx", ".java": "java", ".rs": "rust",
	".rb": "ruby", ".php": "php", ".c": "c", ".cpp": "cpp",
	".json": "json", ".yaml": "yaml", ".yml": "yaml", ".toml": "toml",
	".md": "markdown", ".html": "html", ".css": "css",
}

func languageTag(filePath string) string {
	if lang, ok := languageByExt[strings.ToLower(path.Ext(filePath))]; ok {
		return lang
	}
	return "text"
}

var difficultyInstructions = map[Difficulty]string{
	DifficultyEasy:   "Ask about what this code does and its basic purpose; avoid requiring deep internals knowledge.",
	DifficultyMedium: "Ask about how this code works, its interactions with collaborators, and likely failure modes.",
	DifficultyHard:   "Ask about trade-offs, edge cases, and architectural consequences of this code's design decisions.",
}

// BuildPrompt composes one Prompt Package for file f, grounded on the
// teacher's synth.buildSystemMessage/buildUserMessage pattern
// generalized from "report sources" to "one source file plus its
// four-dimensional context", per spec.md §4.8's grounding requirement.
func BuildPrompt(f selector.SelectedFile, qType QuestionType, difficulty Difficulty, questionIndex int) PromptPackage {
	class := ClassifyFile(f.Path)
	angle := pickAngle(class, questionIndex)

	text, truncated := TruncateToTokenBudget(f.Content.Text, PerFileTokenCap)

	var sb strings.Builder
	sb.WriteString("You are generating one technical interview question grounded in real source code.\n")
	sb.WriteString("Use ONLY the file content below as the factual basis. Reference its actual identifiers.\n")
	sb.WriteString("Do not embed HTML. Do not repeat sentences.\n\n")

	fmt.Fprintf(&sb, "File: %s\n", f.Path)
	fmt.Fprintf(&sb, "Classification: %s\n", class)
	fmt.Fprintf(&sb, "Focus angle: %s\n", angle)
	fmt.Fprintf(&sb, "Question type: %s\n", qType)
	fmt.Fprintf(&sb, "Difficulty: %s — %s\n\n", difficulty, difficultyInstructions[difficulty])

	sb.WriteString("Context scores (0-1, higher means more central to this assessment):\n")
	fmt.Fprintf(&sb, "- metadata_score=%.2f (structural/path/extension/size/content signal)\n", f.MetadataScore)
	fmt.Fprintf(&sb, "- centrality_score=%.2f (PageRank position in the dependency graph)\n", f.CentralityScore)
	fmt.Fprintf(&sb, "- churn_score=%.2f (recent commit activity and bug-fix ratio)\n", f.ChurnScore)
	fmt.Fprintf(&sb, "- complexity_score=%.2f (cyclomatic complexity and maintainability)\n\n", f.ComplexityScore)

	fmt.Fprintf(&sb, "```%s\n%s\n```\n", languageTag(f.Path), text)
	if truncated {
		sb.WriteString("\n(content truncated to fit the token budget; important lines were preserved)\n")
	}

	sb.WriteString("\nOutput format: first line is the headline question. Optional sections '상황:', ")
	sb.WriteString("'요구사항:', '평가 포인트:' may follow on their own lines.\n")

	prompt := sb.String()
	return PromptPackage{
		ComposedPromptText: prompt,
		FileReferences:     []string{f.Path},
		TokenCount:         EstimateTokens(prompt),
		MultiDimensionalContext: ContextScores{
			Metadata:   f.MetadataScore,
			Centrality: f.CentralityScore,
			Churn:      f.ChurnScore,
			Complexity: f.ComplexityScore,
		},
		FilePath:   f.Path,
		Type:       qType,
		Difficulty: difficulty,
		FocusAngle: angle,
	}
}
