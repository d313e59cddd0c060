package metascore

import (
	"path"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// tomlManifestNames are the basenames of manifest files this module can
// validate as well-formed TOML before the File Selector reserves a slot
// for them (spec.md §4.7 Phase 5a: "If a reserved file was not fetched
// ... attempt a final fetch; skip it on failure" — a manifest that fails
// to parse is treated the same as a failed fetch).
var tomlManifestNames = map[string]bool{
	"pyproject.toml": true,
	"cargo.toml":     true,
}

// IsTOMLManifest reports whether filePath names a TOML-based project
// manifest this module knows how to validate.
func IsTOMLManifest(filePath string) bool {
	return tomlManifestNames[strings.ToLower(path.Base(filePath))]
}

// ValidateTOMLManifest parses content as TOML, returning an error when
// the manifest is malformed. Used defensively before reserving a
// configuration slot for it.
func ValidateTOMLManifest(content string) error {
	var doc map[string]any
	return toml.Unmarshal([]byte(content), &doc)
}
