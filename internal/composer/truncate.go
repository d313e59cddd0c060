package composer

import (
	"github.com/kss2002/techgiterview-pipeline/internal/content"
)

// TruncateToTokenBudget caps text at maxTokens, delegating to the
// Content Extractor's important-line-preserving Truncate (spec.md §3
// and §4.8 name the identical algorithm) by converting the token budget
// into an equivalent line budget from the text's observed average line
// length.
func TruncateToTokenBudget(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 {
		maxTokens = PerFileTokenCap
	}
	if EstimateTokens(text) <= maxTokens {
		return text, false
	}

	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
		}
	}
	avgCharsPerLine := len(text) / lines
	if avgCharsPerLine < 1 {
		avgCharsPerLine = 1
	}
	maxChars := maxTokens * 4
	maxLines := maxChars / avgCharsPerLine
	if maxLines < 1 {
		maxLines = 1
	}
	return content.Truncate(text, maxLines)
}
