// Package ids normalizes the 128-bit UUIDs used as analysis and question
// identifiers throughout the pipeline.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh canonical lower-case hyphenated UUID.
func New() string {
	return uuid.New().String()
}

// Normalize accepts either hyphenated or un-hyphenated UUID text and returns
// the canonical lower-case hyphenated form. Callers on the wire may send
// either representation; the core always normalizes before using an
// identifier as a cache or lock key.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "-") && len(s) == 32 {
		s = strings.Join([]string{s[0:8], s[8:12], s[12:16], s[16:20], s[20:32]}, "-")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// MustNormalize is Normalize but panics on error; used only for literals
// known to be valid at compile time (tests, constants).
func MustNormalize(raw string) string {
	s, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return s
}
