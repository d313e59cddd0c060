// Package churn implements the Churn Analyzer (spec.md §4.5): it turns
// per-file commit history into frequency/recency/bug-fix/stability
// metrics and a composite churn_score, grounded on the Python
// GitAnalyzer's bug-keyword matching (git_analyzer.py) and the spec's
// own composite formula (the Python GitAnalyzer computes raw metrics
// but not this exact weighted composite, which is spec-original).
package churn

import (
	"math"
	"strings"
	"time"

	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
)

// bugFixKeywords and refactorKeywords are the closed keyword sets of
// spec.md §4.5 (bug-fix matching grounded on GitAnalyzer.bug_keywords).
var (
	bugFixKeywords = []string{
		"fix", "bug", "hotfix", "patch", "issue", "error", "exception",
	}
	refactorKeywords = []string{
		"refactor", "cleanup", "restructure", "improve", "optimize",
	}
)

// recentWindow bounds "recent activity" to the last 90 days, per
// spec.md §4.5.
const recentWindow = 90 * 24 * time.Hour

// Metrics is one file's churn-derived measurements.
type Metrics struct {
	CommitCount    int
	RecentCommits  int
	UniqueAuthors  int
	Additions      int
	Deletions      int
	LastModified   time.Time
	BugFixRatio    float64
	RefactorRatio  float64
	StabilityScore float64
	ChurnScore     float64
}

// Analyze aggregates commits touching a single file into Metrics. now is
// injected so recency calculations are deterministic in tests.
func Analyze(commits []hostclient.CommitRecord, touchedFiles int, now time.Time) Metrics {
	if len(commits) == 0 {
		return Metrics{ChurnScore: 0.3, StabilityScore: 1.0}
	}
	if touchedFiles <= 0 {
		touchedFiles = 1
	}

	authors := make(map[string]bool)
	var recent int
	var additions, deletions, bugFix, refactor int
	sizes := make([]float64, 0, len(commits))
	last := commits[0].Date

	for _, c := range commits {
		authors[c.Author] = true
		if c.Date.After(last) {
			last = c.Date
		}
		if now.Sub(c.Date) <= recentWindow {
			recent++
		}
		add := c.Additions / touchedFiles
		del := c.Deletions / touchedFiles
		additions += add
		deletions += del
		sizes = append(sizes, float64(add+del))

		msg := strings.ToLower(c.Message)
		if containsAny(msg, bugFixKeywords) {
			bugFix++
		}
		if containsAny(msg, refactorKeywords) {
			refactor++
		}
	}

	n := float64(len(commits))
	bugFixRatio := float64(bugFix) / n
	refactorRatio := float64(refactor) / n
	recentRatio := float64(recent) / n
	stability := stabilityScore(float64(len(commits)), recentRatio, sizes)

	m := Metrics{
		CommitCount:    len(commits),
		RecentCommits:  recent,
		UniqueAuthors:  len(authors),
		Additions:      additions,
		Deletions:      deletions,
		LastModified:   last,
		BugFixRatio:    bugFixRatio,
		RefactorRatio:  refactorRatio,
		StabilityScore: stability,
	}
	m.ChurnScore = compositeChurnScore(m, recentRatio)
	return m
}

// stabilityScore decreases with commit frequency and recent activity,
// and increases with the consistency (low coefficient of variation) of
// change sizes, per spec.md §4.5.
func stabilityScore(commitCount, recentRatio float64, sizes []float64) float64 {
	frequencyPenalty := math.Min(1.0, commitCount/30.0)
	cv := coefficientOfVariation(sizes)
	consistency := 1.0 / (1.0 + cv)
	score := 1.0 - 0.5*frequencyPenalty - 0.3*recentRatio + 0.2*consistency - 0.2
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}

// compositeChurnScore implements spec.md §4.5's weighted formula,
// clamped to [0.05, 1.0].
func compositeChurnScore(m Metrics, recentActivityRatio float64) float64 {
	score := 0.30*math.Min(1, float64(m.CommitCount)/20) +
		0.30*recentActivityRatio +
		0.20*m.BugFixRatio +
		0.20*(1-m.StabilityScore)
	if score < 0.05 {
		score = 0.05
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// IsHotspot implements spec.md §4.5's hotspot rule relative to
// percentile thresholds the caller has already computed across the
// repository's files.
func IsHotspot(commitCountPercentile, aggregateChangesPercentile, recentActivityRatio float64) bool {
	topFrequency := commitCountPercentile >= 0.8 && recentActivityRatio > 0.5
	topChanges := aggregateChangesPercentile >= 0.7
	return topFrequency || topChanges
}

// IsStable implements spec.md §4.5's stable-file rule.
func IsStable(commitCountPercentile, recentActivityRatio, stability float64) bool {
	return commitCountPercentile <= 0.3 && recentActivityRatio <= 0.2 && stability >= 0.7
}
