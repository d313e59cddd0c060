package composer

import "github.com/kss2002/techgiterview-pipeline/internal/budget"

// Token-accounting constants from spec.md §4.8.
const (
	DefaultPerQuestionBudget = 100_000
	SafetyMargin             = 10_000
	PerFileTokenCap          = 50_000
)

// EstimateTokens delegates to the teacher's 4-characters-per-token
// heuristic (internal/budget.EstimateTokens), reused here unchanged since
// the estimation problem is identical: a conservative proxy for a real
// tokenizer, used only for truncation decisions rather than billing.
func EstimateTokens(s string) int {
	return budget.EstimateTokens(s)
}

// RemainingBudget returns the tokens left for file content after
// reserving SafetyMargin out of a per-question budget.
func RemainingBudget(perQuestionBudget int) int {
	if perQuestionBudget <= 0 {
		perQuestionBudget = DefaultPerQuestionBudget
	}
	remaining := perQuestionBudget - SafetyMargin
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ModelBudget caps DefaultPerQuestionBudget to whatever's actually left in
// modelName's context window after reserving SafetyMargin for the
// completion, via the teacher's budget.RemainingContextWithHeadroom.
// Returns DefaultPerQuestionBudget when modelName is empty, when the
// window leaves more than that, and also when it leaves nothing at all
// (remaining <= 0), which includes unknown names sized at the small
// default context window.
func ModelBudget(modelName string) int {
	if modelName == "" {
		return DefaultPerQuestionBudget
	}
	remaining := budget.RemainingContextWithHeadroom(modelName, SafetyMargin, 0)
	if remaining <= 0 || remaining > DefaultPerQuestionBudget {
		return DefaultPerQuestionBudget
	}
	return remaining
}
