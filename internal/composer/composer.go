package composer

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/kss2002/techgiterview-pipeline/internal/selector"
)

// Weights holds the four importance-score weights from spec.md §3,
// always summing to 1.0.
type Weights struct {
	Metadata, Centrality, Churn, Complexity float64
}

// DefaultWeights matches spec.md §3's fixed composite.
var DefaultWeights = Weights{Metadata: 0.4, Centrality: 0.3, Churn: 0.2, Complexity: 0.1}

// PerturbWeights implements spec.md §4.8's "dynamic weight
// perturbation": seeded by the analysis identifier (via xxhash, the
// same hashing library the cache package uses for deterministic keys),
// each weight is nudged by up to ±5% and the result renormalized to sum
// to 1.0, so repeated runs on the same analysis ID stay reproducible
// while different analyses see slightly different orderings.
func PerturbWeights(analysisID string) Weights {
	seed := int64(xxhash.Sum64String(analysisID))
	rng := rand.New(rand.NewSource(seed))

	w := []float64{DefaultWeights.Metadata, DefaultWeights.Centrality, DefaultWeights.Churn, DefaultWeights.Complexity}
	total := 0.0
	for i, v := range w {
		delta := (rng.Float64()*2 - 1) * 0.05
		w[i] = v * (1 + delta)
		total += w[i]
	}
	for i := range w {
		w[i] /= total
	}
	return Weights{Metadata: w[0], Centrality: w[1], Churn: w[2], Complexity: w[3]}
}

// Apply recomputes a FileRecord's importance_score under w, without
// touching its per-dimension scores.
func (w Weights) Apply(fr selector.FileRecord) float64 {
	return clamp01(w.Metadata*fr.MetadataScore + w.Centrality*fr.CentralityScore + w.Churn*fr.ChurnScore + w.Complexity*fr.ComplexityScore)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Composer plans Prompt Packages for a Selection Result and
// post-processes the LLM's returned questions.
type Composer struct {
	QuestionCount int
	Difficulty    Difficulty
	Types         []QuestionType
	MinQuality    float64
}

func (c *Composer) withDefaults() {
	if c.QuestionCount <= 0 {
		c.QuestionCount = 9
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyMedium
	}
	if len(c.Types) == 0 {
		c.Types = []QuestionType{TypeTechStack, TypeArchitecture, TypeCodeAnalysis}
	}
	if c.MinQuality <= 0 {
		c.MinQuality = 0.5
	}
}

// Plan assigns selected files to question slots round-robin (spec.md
// §4.8 distributes Q evenly across types). Files cycle in their given
// order with one counter running across all types, so each type's slots
// continue where the previous type's stopped rather than restarting at
// the first file. It builds one Prompt Package per slot.
func (c *Composer) Plan(files []selector.SelectedFile) []PromptPackage {
	c.withDefaults()
	if len(files) == 0 {
		return nil
	}
	dist := DistributeQuestionTypes(c.QuestionCount, c.Types)

	var packages []PromptPackage
	idx := 0
	for _, t := range c.Types {
		for i := 0; i < dist[t]; i++ {
			f := files[idx%len(files)]
			packages = append(packages, BuildPrompt(f, t, c.Difficulty, idx))
			idx++
		}
	}
	return packages
}

// FilterByQuality drops any LLM-generated question scoring below
// MinQuality, pairing each with the preview text of its source file for
// scoring. Template-generated questions (GeneratedBy == GeneratedByTemplate)
// bypass scoring entirely: the quality gate exists to catch hallucinated
// or low-substance LLM output, and a template fallback is a deterministic
// function of a real file path and focus angle, with nothing to catch —
// it must survive unconditionally so a slot the LLM couldn't fill still
// counts toward the final total (spec.md §7/S5).
func (c *Composer) FilterByQuality(questions []Question, previews map[string]string) []Question {
	c.withDefaults()
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.GeneratedBy == GeneratedByTemplate {
			q.QualityScore = 1.0
			out = append(out, q)
			continue
		}
		q.QualityScore = ScoreQuestion(q, previews[q.FilePath])
		if q.QualityScore >= c.MinQuality {
			out = append(out, q)
		}
	}
	return out
}
