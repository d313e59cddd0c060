package composer

import (
	"regexp"
	"strings"
)

// hedgingWords is carried verbatim from original_source's
// enhanced_question_generator.py abstract_words list.
var hedgingWords = []string{"일반적으로", "보통", "대개", "만약", "가정", "generally", "assuming", "typically"}

var technicalDepthKeywords = []string{
	"concurrency", "race condition", "deadlock", "transaction", "idempotent",
	"cache", "latency", "throughput", "invariant", "mutation", "allocation",
	"interface", "polymorphism", "recursion", "complexity", "coupling",
}

var identifierPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]{2,}\b`)

// ScoreQuestion implements spec.md §4.8's quality gate, scoring a
// candidate question out of 1.0 across five weighted components.
func ScoreQuestion(q Question, filePreview string) float64 {
	score := 0.3 * contentInclusionScore(q.Text, filePreview)
	score += 0.25 * identifierMentionScore(q.Text, filePreview)
	score += 0.2 * hedgingAbsenceScore(q.Text)
	score += 0.15 * technicalDepthScore(q.Text)
	score += 0.1 * lengthScore(q.Text)
	return score
}

func contentInclusionScore(text, preview string) float64 {
	previewIdentifiers := identifierPattern.FindAllString(preview, -1)
	if len(previewIdentifiers) == 0 {
		return 0.0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, id := range previewIdentifiers {
		if strings.Contains(lower, strings.ToLower(id)) {
			hits++
			if hits >= 3 {
				break
			}
		}
	}
	return minFloat(1.0, float64(hits)/3.0)
}

func identifierMentionScore(text, preview string) float64 {
	previewIdentifiers := uniqueIdentifiers(preview)
	if len(previewIdentifiers) == 0 {
		return 0.0
	}
	lower := strings.ToLower(text)
	mentions := 0
	for id := range previewIdentifiers {
		if strings.Contains(lower, strings.ToLower(id)) {
			mentions++
		}
	}
	return minFloat(1.0, float64(mentions)/5.0)
}

func uniqueIdentifiers(preview string) map[string]bool {
	ids := identifierPattern.FindAllString(preview, -1)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func hedgingAbsenceScore(text string) float64 {
	lower := strings.ToLower(text)
	for _, w := range hedgingWords {
		if strings.Contains(lower, strings.ToLower(w)) {
			return 0.0
		}
	}
	return 1.0
}

func technicalDepthScore(text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, k := range technicalDepthKeywords {
		if strings.Contains(lower, k) {
			hits++
		}
	}
	return minFloat(1.0, float64(hits)/2.0)
}

func lengthScore(text string) float64 {
	words := len(strings.Fields(text))
	if words >= 20 && words <= 80 {
		return 1.0
	}
	return 0.0
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
