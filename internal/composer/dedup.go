package composer

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Deduplicate drops near-duplicate questions using an LCS-ratio
// similarity, per spec.md §4.8: same source file and similarity > 0.6,
// or different files and similarity > 0.7, drops the shorter question.
// Grounded on go-edlib's Lcs algorithm (the same library the teacher's
// standardbeagle-derived fuzzy matching uses for StringsSimilarity).
func Deduplicate(questions []Question) []Question {
	dropped := make([]bool, len(questions))
	for i := 0; i < len(questions); i++ {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(questions); j++ {
			if dropped[j] {
				continue
			}
			sim := lcsRatio(questions[i].Text, questions[j].Text)
			threshold := 0.7
			if questions[i].FilePath == questions[j].FilePath {
				threshold = 0.6
			}
			if sim <= threshold {
				continue
			}
			if len(questions[i].Text) >= len(questions[j].Text) {
				dropped[j] = true
			} else {
				dropped[i] = true
			}
		}
	}

	out := make([]Question, 0, len(questions))
	for i, q := range questions {
		if !dropped[i] {
			out = append(out, q)
		}
	}
	return out
}

func lcsRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.0
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Lcs)
	if err != nil {
		return 0.0
	}
	return float64(sim)
}
