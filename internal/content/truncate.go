package content

import (
	"fmt"
	"regexp"
	"strings"
)

// importantLinePatterns flags function/class definitions, imports,
// configuration-style constant definitions, and documentation block
// starts for preservation during truncation, per spec.md §3.
var importantLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(def|class)\s+\w+`),                         // Python
	regexp.MustCompile(`^\s*(func|type)\s+\w+`),                         // Go
	regexp.MustCompile(`^\s*(import|from)\s+\S+`),                       // Python imports
	regexp.MustCompile(`^\s*import\s+[{("]`),                            // JS/TS/Go imports
	regexp.MustCompile(`^\s*(public|private|protected)?\s*(class|interface)\s+\w+`), // Java
	regexp.MustCompile(`^\s*[A-Z][A-Z0-9_]*\s*=`),                        // constant assignment
	regexp.MustCompile(`^\s*(//|#|/\*|""")`),                             // doc/comment block start
}

// isImportantLine reports whether line matches one of the preserved
// categories.
func isImportantLine(line string) bool {
	for _, re := range importantLinePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Truncate caps text at maxLines, preserving important lines first and
// padding with other lines in original order, inserting
// "... (lines X-Y skipped)" markers at discontinuities (spec.md §3).
// Returns the (possibly truncated) text and whether truncation occurred.
func Truncate(text string, maxLines int) (string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text, false
	}

	keep := make([]bool, len(lines))
	kept := 0
	for i, line := range lines {
		if isImportantLine(line) && kept < maxLines {
			keep[i] = true
			kept++
		}
	}
	for i := 0; i < len(lines) && kept < maxLines; i++ {
		if !keep[i] {
			keep[i] = true
			kept++
		}
	}

	var b strings.Builder
	inGap := false
	gapStart := 0
	for i, line := range lines {
		if keep[i] {
			if inGap {
				b.WriteString(fmt.Sprintf("... (lines %d-%d skipped)\n", gapStart+1, i))
				inGap = false
			}
			b.WriteString(line)
			b.WriteString("\n")
		} else if !inGap {
			inGap = true
			gapStart = i
		}
	}
	if inGap {
		b.WriteString(fmt.Sprintf("... (lines %d-%d skipped)\n", gapStart+1, len(lines)))
	}
	return strings.TrimSuffix(b.String(), "\n"), true
}
