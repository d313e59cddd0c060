// Package metascore implements the Metadata Scorer (spec.md §4.4): a
// per-file structural/path/size/extension/content-density score in
// [0,1], grounded on the Python SmartFileImportanceAnalyzer's
// structural_patterns/path_bonuses/path_penalties tables
// (file_importance_analyzer.py), generalized from that analyzer's
// multiplicative bonus model into the spec's additive weighted-component
// model.
package metascore

import (
	"math"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Weight constants for the six components of spec.md §4.4's table.
const (
	weightStructural = 0.25
	weightContent    = 0.25
	weightLocation   = 0.20
	weightExtension  = 0.15
	weightSize       = 0.10
	weightConfig     = 0.05
)

// structuralPattern pairs a glob-style path matcher with its category
// weight. structuralScore takes the highest weight among all matching
// categories, so the order of structuralCategories does not affect the
// result.
type structuralPattern struct {
	globs  []string
	weight float64
}

var structuralCategories = []structuralPattern{
	{globs: []string{"**/config.*", "**/*.config.*", "**/webpack.config.*", "**/babel.config.*"}, weight: 0.98},
	{globs: []string{"**/__init__.py", "**/main.*", "**/index.*", "**/app.*", "**/App.*", "**/setup.*"}, weight: 0.9},
	{globs: []string{"**/*views.py", "**/*urls.py", "**/*models.py", "**/manage.py", "**/wsgi.py", "**/asgi.py", "**/admin.py", "**/serializers.py"}, weight: 0.85},
	{globs: []string{"**/core/**", "**/api/**", "**/models/**", "**/services/**", "**/store/**", "**/types/**"}, weight: 0.8},
	{globs: []string{"**/*build*", "**/*deploy*", "**/Dockerfile", "**/docker-compose.*", "**/Makefile"}, weight: 0.6},
	{globs: []string{"**/utils/**", "**/helpers/**", "**/common/**"}, weight: 0.7},
	{globs: []string{"**/components/**", "**/views/**", "**/pages/**"}, weight: 0.5},
	{globs: []string{"**/docs/**", "**/*.md", "**/*.rst"}, weight: 0.3},
	{globs: []string{"**/*test*", "**/*spec*", "**/conftest.py"}, weight: 0.2},
}

// structuralScore returns the highest-weight category whose glob matches
// filePath, or 0.4 (an unremarkable default) when nothing matches.
func structuralScore(filePath string) float64 {
	best := 0.4
	for _, cat := range structuralCategories {
		for _, g := range cat.globs {
			if ok, _ := doublestar.Match(g, filePath); ok && cat.weight > best {
				best = cat.weight
				break
			}
		}
	}
	return best
}

var (
	excludePatterns = []string{
		"**/*dummy*", "**/*sample*", "**/*mock*", "**/.*",
		"**/*.bak", "**/*~", "**/*.tmp",
		"**/*test*", "**/*spec*", "**/conftest.py",
		"**/node_modules/**", "**/vendor/**", "**/deps/**", "**/third_party/**",
	}
	decoratorPattern   = regexp.MustCompile(`^\s*@\w+`)
	routePattern       = regexp.MustCompile(`(?i)\b(route|app\.(get|post|put|delete|patch))\b`)
	classLikePattern   = regexp.MustCompile(`\b(class|interface|type)\s+\w+`)
	commentLinePattern = regexp.MustCompile(`^\s*(#|//|/\*|\*)`)
	importLinePattern  = regexp.MustCompile(`^\s*(import|from|require|use)\b`)
)

// IsExcluded implements spec.md §4.4's exclusion rules: test/dummy/
// sample/mock/backup/dot-file paths, vendored directories, tiny files,
// and low-code-density files all score at or below 0.01.
func IsExcluded(filePath string, size int64, text string) bool {
	for _, g := range excludePatterns {
		if ok, _ := doublestar.Match(g, filePath); ok {
			return true
		}
	}
	if size > 0 && size < 50 {
		return true
	}
	if text != "" && isLowCodeDensity(text) {
		return true
	}
	return false
}

func isLowCodeDensity(text string) bool {
	lines := strings.Split(text, "\n")
	total := len(lines)
	if total == 0 {
		return false
	}
	comment, blank, importLines := 0, 0, 0
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			blank++
			continue
		}
		if commentLinePattern.MatchString(l) {
			comment++
			continue
		}
		if importLinePattern.MatchString(l) {
			importLines++
		}
	}
	code := total - comment - blank - importLines
	codeRatio := float64(code) / float64(total)
	return float64(comment)/float64(total) > 0.80 ||
		float64(blank)/float64(total) > 0.50 ||
		float64(importLines)/float64(total) > 0.90 ||
		codeRatio < 0.10
}

// ContentComplexitySignal scores code density, keyword density, special
// patterns, and documentation ratio from the decoded file text.
func ContentComplexitySignal(text string) float64 {
	if text == "" {
		return 0.5
	}
	lines := strings.Split(text, "\n")
	total := float64(len(lines))
	if total == 0 {
		return 0.5
	}
	nonBlank, comment, special := 0.0, 0.0, 0.0
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		nonBlank++
		if commentLinePattern.MatchString(l) {
			comment++
		}
		if decoratorPattern.MatchString(l) || routePattern.MatchString(l) || classLikePattern.MatchString(l) {
			special++
		}
	}
	codeDensity := nonBlank / total
	docRatio := comment / total
	specialDensity := math.Min(1.0, special/math.Max(1, nonBlank)*5)
	score := 0.4*codeDensity + 0.3*specialDensity + 0.3*(1-math.Abs(docRatio-0.15)*2)
	return clamp01(score)
}

// locationBonus implements spec.md §4.4's location-bonus rule by first
// path component, with a depth penalty beyond three directories.
func locationBonus(filePath string) float64 {
	clean := strings.TrimPrefix(filePath, "./")
	parts := strings.Split(clean, "/")
	depth := len(parts) - 1

	var base float64
	switch {
	case depth == 0:
		base = 0.95
	default:
		first := strings.ToLower(parts[0])
		switch first {
		case "src", "app", "lib", "core":
			base = 0.85
		case "utils", "helpers", "common":
			base = 0.7
		case "tests", "test", "docs", "examples", "build", "vendor":
			base = 0.25
		default:
			base = 0.6
		}
	}
	if depth > 3 {
		base -= 0.1 * float64(depth-3)
	}
	return clamp01(base)
}

var extensionWeights = map[string]float64{
	".go": 0.9, ".py": 0.9, ".java": 0.9, ".rs": 0.9, ".c": 0.85, ".cpp": 0.85,
	".ts": 0.85, ".tsx": 0.85, ".js": 0.8, ".jsx": 0.8, ".rb": 0.8, ".php": 0.75,
	".json": 0.6, ".yaml": 0.6, ".yml": 0.6, ".toml": 0.6, ".xml": 0.55,
	".html": 0.45, ".css": 0.4, ".scss": 0.4,
	".md": 0.25, ".rst": 0.25, ".txt": 0.2,
}

// extensionWeight returns the baseline importance of filePath's
// extension (source-code > config > markup > docs).
func extensionWeight(filePath string) float64 {
	if w, ok := extensionWeights[strings.ToLower(path.Ext(filePath))]; ok {
		return w
	}
	return 0.5
}

// sizeScore implements spec.md §4.4's log-scaled size component.
func sizeScore(size int64) float64 {
	if size <= 0 {
		return 0
	}
	v := math.Log(float64(size)+1) / math.Log(50000)
	return clamp01(v)
}

var criticalConfigs = []string{
	"package.json", "go.mod", "cargo.toml", "pyproject.toml", "pom.xml",
	"dockerfile", "docker-compose.yml", "docker-compose.yaml", "tsconfig.json", "makefile",
}
var importantConfigs = []string{".eslintrc", ".prettierrc", "pylintrc", ".flake8"}

// configBaseline implements spec.md §4.4's config-baseline component.
func configBaseline(filePath string) float64 {
	base := strings.ToLower(path.Base(filePath))
	for _, c := range criticalConfigs {
		if base == c || strings.HasPrefix(base, c) {
			return 1.0
		}
	}
	for _, c := range importantConfigs {
		if strings.Contains(base, c) {
			return 0.8
		}
	}
	if strings.Contains(base, "config") || strings.Contains(base, "settings") {
		return 0.6
	}
	return 0.0
}

// Score computes the combined metadata_score for one file, per spec.md
// §4.4's weighted six-component table.
func Score(filePath string, size int64, text string) float64 {
	if IsExcluded(filePath, size, text) {
		return 0.01
	}
	s := weightStructural*structuralScore(filePath) +
		weightContent*ContentComplexitySignal(text) +
		weightLocation*locationBonus(filePath) +
		weightExtension*extensionWeight(filePath) +
		weightSize*sizeScore(size) +
		weightConfig*configBaseline(filePath)
	return clamp01(s)
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
