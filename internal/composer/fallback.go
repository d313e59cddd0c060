package composer

import "fmt"

// typeTemplates gives each question type a template grounded in the Prompt
// Package's focus angle, used when the LLM is exhausted (spec.md §7). This
// is the type-specific tier of the fallback chain.
var typeTemplates = map[QuestionType]string{
	TypeTechStack:    "What technology choices stand out in %s, and why might the team have favored them when it comes to %s?",
	TypeArchitecture: "How does %s fit into the broader architecture, particularly regarding %s?",
	TypeCodeAnalysis: "Walk through how %s handles %s — what would you check first if it broke?",
}

// genericTemplate is the second, class-agnostic tier used when a Prompt
// Package's type has no dedicated template.
const genericTemplate = "What should a reviewer understand about %s, focusing on %s?"

// TemplateQuestion derives a deterministic question from pkg's file
// path, question type and focus angle alone, with no model call, so a
// Prompt Package whose LLM attempts are exhausted still fills its slot
// and the final question count still matches the plan (spec.md §7/S5).
func TemplateQuestion(pkg PromptPackage) string {
	tmpl, ok := typeTemplates[pkg.Type]
	if !ok {
		tmpl = genericTemplate
	}
	return fmt.Sprintf(tmpl, pkg.FilePath, pkg.FocusAngle)
}
