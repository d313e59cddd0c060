package selector

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// logicDirGlobs matches spec.md §4.7 5a/5b's "API/services/core/models/
// lib/utils/backend-app/src-app" bonus directories.
var logicDirGlobs = []string{
	"api/**", "services/**", "core/**", "lib/**", "models/**", "utils/**",
	"backend/app/**", "src/app/**",
}

var docExtensions = map[string]bool{".md": true, ".rst": true, ".txt": true}
var configExtensions = map[string]bool{".json": true, ".yml": true, ".yaml": true, ".xml": true, ".toml": true}

var excludedDirGlobs = []string{"test/**", "spec/**", "vendor/**", "deps/**", "node_modules/**", "third_party/**"}

// reservedManifestBasenames is the closed list of spec.md §4.7 5a's
// critical build/package/infra manifests.
var reservedManifestBasenames = map[string]bool{
	"package.json": true, "pyproject.toml": true, "setup.py": true,
	"go.mod": true, "cargo.toml": true, "pom.xml": true, "build.gradle": true,
	"docker-compose.yml": true, "docker-compose.yaml": true,
	"dockerfile": true, "makefile": true,
}

func isTestPath(p string) bool {
	lower := strings.ToLower(p)
	return strings.Contains(lower, "test") || strings.Contains(lower, "spec") || strings.Contains(lower, "conftest")
}

func isLogicDir(p string) bool {
	if isTestPath(p) {
		return false
	}
	for _, g := range logicDirGlobs {
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
	}
	return false
}

func isExcludedDir(p string) bool {
	for _, g := range excludedDirGlobs {
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
	}
	return false
}

func isReservedManifest(p string) bool {
	return reservedManifestBasenames[strings.ToLower(path.Base(p))]
}

func classify(p string) Classification {
	if isTestPath(p) {
		return ClassTest
	}
	ext := strings.ToLower(path.Ext(p))
	if docExtensions[ext] {
		return ClassDocumentation
	}
	if configExtensions[ext] || isReservedManifest(p) {
		return ClassConfig
	}
	switch ext {
	case ".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".rs", ".c", ".cpp", ".rb", ".php":
		return ClassSource
	}
	return ClassOther
}

// pathBonusPenalty implements spec.md §3's "multiplied by path-bonus/
// penalty" factor on importance_score, using the same logic/excluded
// directory rules Phase 1 candidate boosting and Phase 5b reweighting
// apply, generalized into a single multiplier (an Open Question the
// spec leaves unresolved on exact magnitude; decided and recorded in
// DESIGN.md).
func pathBonusPenalty(p string) float64 {
	if isExcludedDir(p) || isTestPath(p) {
		return 0.2
	}
	if isLogicDir(p) {
		return 1.5
	}
	return 1.0
}
