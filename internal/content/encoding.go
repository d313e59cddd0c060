package content

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decode implements spec.md §4.2 step 4's encoding cascade: UTF-8 first,
// then a library-detected encoding above a confidence threshold, then
// Latin-1, then UTF-8 with the replacement character. No pure-Go chardet
// library appears anywhere in the reference pack (see DESIGN.md), so the
// "detected encoding" step uses a hand-rolled Windows-1252 heuristic via
// golang.org/x/text/encoding/charmap: the decode is accepted when fewer
// than 30% of the resulting runes are C1 control characters
// (U+0080-U+009F), which stands in for a confidence score.
func decode(b []byte) (string, Strategy) {
	if utf8.Valid(b) {
		return string(b), StrategyUTF8
	}
	if text, ok := tryWindows1252(b); ok {
		return text, StrategyDetected
	}
	if text, err := charmap.ISO8859_1.NewDecoder().String(string(b)); err == nil {
		return text, StrategyLatin1
	}
	return toValidUTF8(b), StrategyUTF8Replace
}

// tryWindows1252 decodes b as Windows-1252 and reports success only when
// the result looks like plausible text (confidence proxy > 0.7 per
// spec.md): confidence is the share of runes outside the C1 control
// range U+0080-U+009F, and it must exceed 0.7.
func tryWindows1252(b []byte) (string, bool) {
	text, err := charmap.Windows1252.NewDecoder().String(string(b))
	if err != nil {
		return "", false
	}
	suspicious := 0
	total := 0
	for _, r := range text {
		total++
		if r >= 0x80 && r <= 0x9F {
			suspicious++
		}
	}
	if total == 0 {
		return "", false
	}
	confidence := 1.0 - float64(suspicious)/float64(total)
	if confidence <= 0.7 {
		return "", false
	}
	return text, true
}

// toValidUTF8 replaces invalid byte sequences with the Unicode
// replacement character, the cascade's final fallback.
func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		out = append(out, r)
		i += size
	}
	return string(out)
}
