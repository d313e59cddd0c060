// Package composer implements the Prompt Composer (spec.md §4.8): it
// turns a Selection Result into token-budgeted, file-type-specialized
// Prompt Packages, and post-processes LLM answers into deduplicated,
// quality-gated Question Records. Grounded on the teacher's
// internal/template/template.go (a Profile per report type, chosen by
// GetProfile, generalized here from "report type" to "file
// classification") and internal/synth/synth.go's system/user message
// builder, with focus angles and the hedging-word list carried from
// original_source's question_strategies.py / enhanced_question_generator.py.
package composer

import (
	"path"
	"strings"
)

// FileClass mirrors spec.md §4.8's file classification taxonomy.
type FileClass string

const (
	ClassController    FileClass = "controller"
	ClassService       FileClass = "service"
	ClassModel         FileClass = "model"
	ClassConfiguration FileClass = "configuration"
	ClassUtility       FileClass = "utility"
	ClassFrontend      FileClass = "frontend"
	ClassGeneral       FileClass = "general"
)

var (
	controllerMarkers = []string{"controller", "handler", "router", "route", "views.py", "api/"}
	serviceMarkers    = []string{"service", "usecase", "application/"}
	modelMarkers      = []string{"model", "schema", "entity", "dto"}
	configMarkers     = []string{"config", "settings", ".env", "docker", "makefile"}
	utilityMarkers    = []string{"util", "helper", "common", "lib/"}
	frontendExts      = map[string]bool{".jsx": true, ".tsx": true, ".vue": true, ".css": true, ".scss": true, ".html": true}
)

// ClassifyFile assigns a FileClass from the path alone, grounded on the
// teacher's GetProfile's string-matching cascade (normalizeType),
// generalized from report-type keywords to file-path keywords.
func ClassifyFile(filePath string) FileClass {
	lower := strings.ToLower(filePath)
	ext := strings.ToLower(path.Ext(filePath))

	if frontendExts[ext] {
		return ClassFrontend
	}
	switch {
	case containsAny(lower, controllerMarkers):
		return ClassController
	case containsAny(lower, configMarkers):
		return ClassConfiguration
	case containsAny(lower, serviceMarkers):
		return ClassService
	case containsAny(lower, modelMarkers):
		return ClassModel
	case containsAny(lower, utilityMarkers):
		return ClassUtility
	default:
		return ClassGeneral
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
