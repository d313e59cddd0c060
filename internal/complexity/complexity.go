// Package complexity implements the Complexity Analyzer (spec.md §4.6):
// cyclomatic/cognitive complexity, a Halstead-volume surrogate, and the
// Microsoft maintainability index, grounded on the Python
// AdvancedFileAnalyzer's complexity_patterns table and
// _calculate_complexity_metrics method (advanced_file_analyzer.py),
// extended here with a Go/Rust pattern set the Python analyzer lacks.
package complexity

import (
	"math"
	"path"
	"regexp"
	"strings"
)

// Language mirrors depgraph's extension-to-language mapping, kept
// package-local so complexity has no compile-time dependency on
// depgraph's import-extraction concerns.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangGoCFamily  Language = "c_family" // Go, Rust, C, C++: brace-delimited nesting
	LangUnknown    Language = "unknown"
)

var extensionLanguage = map[string]Language{
	".py": LangPython,
	".js": LangJavaScript, ".jsx": LangJavaScript, ".ts": LangJavaScript, ".tsx": LangJavaScript,
	".java": LangJava,
	".go":   LangGoCFamily, ".rs": LangGoCFamily, ".c": LangGoCFamily, ".cpp": LangGoCFamily, ".cc": LangGoCFamily, ".h": LangGoCFamily,
}

func detectLanguage(filePath string) Language {
	if lang, ok := extensionLanguage[strings.ToLower(path.Ext(filePath))]; ok {
		return lang
	}
	return LangUnknown
}

type patternSet struct {
	decisionPoints    []*regexp.Regexp
	nestingIndicators []*regexp.Regexp
	pythonIndentStyle bool
}

var patterns = map[Language]patternSet{
	LangPython: {
		decisionPoints: compileAll(`\bif\b`, `\belif\b`, `\bfor\b`, `\bwhile\b`, `\btry\b`, `\bexcept\b`, `\band\b`, `\bor\b`),
		pythonIndentStyle: true,
	},
	LangJavaScript: {
		decisionPoints:    compileAll(`\bif\b`, `\belse\b`, `\bfor\b`, `\bwhile\b`, `\btry\b`, `\bcatch\b`, `&&`, `\|\|`, `\bcase\b`, `\?`),
		nestingIndicators: compileAll(`\{`),
	},
	LangJava: {
		decisionPoints:    compileAll(`\bif\b`, `\belse\b`, `\bfor\b`, `\bwhile\b`, `\btry\b`, `\bcatch\b`, `&&`, `\|\|`, `\bcase\b`),
		nestingIndicators: compileAll(`\{`),
	},
	LangGoCFamily: {
		decisionPoints:    compileAll(`\bif\b`, `\belse\b`, `\bfor\b`, `\bswitch\b`, `\bcase\b`, `&&`, `\|\|`, `\bselect\b`),
		nestingIndicators: compileAll(`\{`),
	},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Metrics is one file's complexity measurements.
type Metrics struct {
	Cyclomatic        float64
	Cognitive         float64
	HalsteadVolume    float64
	Maintainability   float64
	ComplexityScore   float64
}

// Analyze computes Metrics for filePath's text. Unknown languages
// default to {CC:1, maintainability:75} and a 0.5 composite score, per
// spec.md §4.6.
func Analyze(filePath, text string) Metrics {
	lang := detectLanguage(filePath)
	ps, ok := patterns[lang]
	if !ok {
		return Metrics{Cyclomatic: 1, Maintainability: 75, ComplexityScore: 0.5}
	}

	cyclomatic := 1.0
	for _, re := range ps.decisionPoints {
		cyclomatic += float64(len(re.FindAllString(text, -1)))
	}

	cognitive := cognitiveComplexity(text, ps)
	loc := float64(len(strings.Split(text, "\n")))
	hv := halsteadVolume(text)
	mi := maintainabilityIndex(hv, cyclomatic, loc)

	score := 0.6*math.Min(1, cyclomatic/20) + 0.4*(mi/100)
	if score < 0.05 {
		score = 0.05
	}

	return Metrics{
		Cyclomatic:      cyclomatic,
		Cognitive:       cognitive,
		HalsteadVolume:  hv,
		Maintainability: mi,
		ComplexityScore: score,
	}
}

// cognitiveComplexity sums 1+nesting_level over every decision point,
// with nesting increasing on Python indentation or a C-family `{`.
func cognitiveComplexity(text string, ps patternSet) float64 {
	cognitive := 0.0
	nesting := 0
	prevIndent := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if ps.pythonIndentStyle {
			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			if indent > prevIndent {
				nesting++
			} else if indent < prevIndent && nesting > 0 {
				nesting--
			}
			prevIndent = indent
		} else {
			for _, re := range ps.nestingIndicators {
				if re.MatchString(line) {
					nesting++
					break
				}
			}
		}
		for _, re := range ps.decisionPoints {
			if re.MatchString(trimmed) {
				cognitive += 1 + float64(nesting)
				break
			}
		}
	}
	return cognitive
}

var (
	operatorPattern = regexp.MustCompile(`[+\-*/=<>!&|%^]+`)
	operandPattern  = regexp.MustCompile(`\b\w+\b`)
)

// halsteadVolume approximates Halstead volume from unique
// operator/operand counts, per the Python analyzer's regex-based
// surrogate.
func halsteadVolume(text string) float64 {
	operators := operatorPattern.FindAllString(text, -1)
	operands := operandPattern.FindAllString(text, -1)
	uniqueOperators := uniqueCount(operators)
	uniqueOperands := uniqueCount(operands)

	vocabulary := float64(uniqueOperators + uniqueOperands)
	length := float64(len(operators) + len(operands))
	if vocabulary <= 1 || length == 0 {
		return 1.0
	}
	return length * math.Log2(vocabulary)
}

func uniqueCount(items []string) int {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it] = true
	}
	return len(seen)
}

// maintainabilityIndex is Microsoft's formula, clamped to [0,100].
func maintainabilityIndex(halsteadVolume, cyclomatic, loc float64) float64 {
	if halsteadVolume <= 0 {
		halsteadVolume = 1
	}
	if loc <= 0 {
		loc = 1
	}
	mi := 171 - 5.2*math.Log(halsteadVolume) - 0.23*cyclomatic - 16.2*math.Log(loc)
	if mi < 0 {
		mi = 0
	}
	if mi > 100 {
		mi = 100
	}
	return mi
}
