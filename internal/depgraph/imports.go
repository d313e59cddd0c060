// Package depgraph implements the Dependency Analyzer (spec.md §4.3): it
// extracts per-file import targets by language, resolves them to
// in-repository paths where possible, and builds the ghost-node
// Dependency Graph that the File Selector's PageRank phase consumes.
// Grounded on the Python AdvancedFileAnalyzer's per-language
// import_patterns table and _extract_imports/_resolve_import_path
// methods (advanced_file_analyzer.py).
package depgraph

import (
	"path"
	"regexp"
	"strings"
)

// Language identifies the per-file import grammar to apply.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangUnknown    Language = "unknown"
)

var extensionLanguage = map[string]Language{
	".py":  LangPython,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".ts":  LangJavaScript,
	".tsx": LangJavaScript,
	".mjs": LangJavaScript,
	".java": LangJava,
	".go":  LangGo,
	".rs":  LangRust,
}

// DetectLanguage maps a file extension to the import grammar used to
// parse it.
func DetectLanguage(filePath string) Language {
	if lang, ok := extensionLanguage[strings.ToLower(path.Ext(filePath))]; ok {
		return lang
	}
	return LangUnknown
}

// importPatterns mirrors spec.md §4.3's per-language regex table.
var importPatterns = map[Language][]*regexp.Regexp{
	LangPython: {
		regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import`),
	},
	LangJavaScript: {
		regexp.MustCompile(`import\s+.*?\s+from\s+["']([^"']+)["']`),
		regexp.MustCompile(`import\s+["']([^"']+)["']`),
		regexp.MustCompile(`require\(\s*["']([^"']+)["']\s*\)`),
		regexp.MustCompile(`import\(\s*["']([^"']+)["']\s*\)`),
	},
	LangJava: {
		regexp.MustCompile(`import\s+([\w.]+)\s*;`),
	},
	LangGo: {
		regexp.MustCompile(`import\s+"([^"]+)"`),
		regexp.MustCompile(`"([^"]+)"`), // not consulted: Go files go through extractGoImports
	},
	LangRust: {
		regexp.MustCompile(`use\s+([\w:]+)`),
		regexp.MustCompile(`extern\s+crate\s+(\w+)`),
	},
}

// ExtractImports returns the raw import targets found in content,
// dispatching on the file's language per spec.md §4.3. Go's block
// import form (`import (\n "a"\n "b"\n)`) is handled specially since a
// single quoted-string regex would also match string literals elsewhere
// in the file.
func ExtractImports(filePath, content string) []string {
	lang := DetectLanguage(filePath)
	switch lang {
	case LangGo:
		return extractGoImports(content)
	case LangUnknown:
		return nil
	}
	patterns := importPatterns[lang]
	seen := make(map[string]bool)
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if len(m) < 2 {
				continue
			}
			target := strings.TrimSpace(m[1])
			if target == "" || seen[target] {
				continue
			}
			seen[target] = true
			out = append(out, target)
		}
	}
	return out
}

var (
	goSingleImport = regexp.MustCompile(`^\s*import\s+"([^"]+)"`)
	goBlockStart    = regexp.MustCompile(`^\s*import\s+\(`)
	goBlockEntry    = regexp.MustCompile(`^\s*(?:\w+\s+)?"([^"]+)"`)
)

func extractGoImports(content string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(target string) {
		target = strings.TrimSpace(target)
		if target == "" || seen[target] {
			return
		}
		seen[target] = true
		out = append(out, target)
	}

	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		if inBlock {
			if strings.TrimSpace(line) == ")" {
				inBlock = false
				continue
			}
			if m := goBlockEntry.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
			continue
		}
		if goBlockStart.MatchString(line) {
			inBlock = true
			continue
		}
		if m := goSingleImport.FindStringSubmatch(line); m != nil {
			add(m[1])
		}
	}
	return out
}
