package depgraph

import (
	"path"
	"strings"
)

// Resolve maps an import target string to a path already present in
// allPaths, or reports ok=false when no match is found (the caller then
// adds a ghost node). Grounded on the Python analyzer's
// _resolve_import_path substring/suffix heuristic, generalized across
// languages instead of hard-coding .py/.js.
func Resolve(target string, fromPath string, allPaths []string) (string, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}

	lang := DetectLanguage(fromPath)
	candidates := candidatePaths(target, lang)

	for _, p := range allPaths {
		for _, c := range candidates {
			if p == c || strings.HasSuffix(p, "/"+c) {
				return p, true
			}
		}
	}
	// Relative import fallback: resolve against the importing file's directory.
	if strings.HasPrefix(target, ".") {
		joined := path.Clean(path.Join(path.Dir(fromPath), target))
		for _, p := range allPaths {
			if strings.TrimSuffix(p, path.Ext(p)) == joined {
				return p, true
			}
		}
	}
	return "", false
}

// candidatePaths generates plausible repo-relative suffixes for a given
// import target, covering the module/package naming conventions of each
// supported language.
func candidatePaths(target string, lang Language) []string {
	switch lang {
	case LangPython:
		dotted := strings.ReplaceAll(target, ".", "/")
		return []string{dotted + ".py", dotted + "/__init__.py"}
	case LangJavaScript:
		base := strings.TrimPrefix(target, "./")
		base = strings.TrimPrefix(base, "../")
		return []string{base + ".js", base + ".ts", base + ".jsx", base + ".tsx", base + "/index.js", base + "/index.ts"}
	case LangJava:
		return []string{strings.ReplaceAll(target, ".", "/") + ".java"}
	case LangGo:
		return []string{target}
	case LangRust:
		parts := strings.Split(target, "::")
		return []string{strings.Join(parts, "/") + ".rs"}
	default:
		return []string{target}
	}
}
