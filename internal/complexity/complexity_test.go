package complexity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyze_UnknownLanguageDefaults(t *testing.T) {
	m := Analyze("README.md", "just some text")
	require.Equal(t, 1.0, m.Cyclomatic)
	require.Equal(t, 75.0, m.Maintainability)
	require.Equal(t, 0.5, m.ComplexityScore)
}

func TestAnalyze_CountsDecisionPoints(t *testing.T) {
	src := `package x

func f(a int) int {
	if a > 0 {
		return a
	} else if a < 0 {
		return -a
	}
	for i := 0; i < a; i++ {
		if i == 2 && a > 1 {
			return i
		}
	}
	return 0
}
`
	m := Analyze("x.go", src)
	require.Greater(t, m.Cyclomatic, 1.0)
	require.Greater(t, m.Cognitive, 0.0)
}

func TestAnalyze_NestedPythonIncreasesCognitive(t *testing.T) {
	flat := "if a:\n    pass\nif b:\n    pass\n"
	nested := "if a:\n    if b:\n        if c:\n            pass\n"
	mFlat := Analyze("flat.py", flat)
	mNested := Analyze("nested.py", nested)
	require.Greater(t, mNested.Cognitive, mFlat.Cognitive)
}

func TestMaintainabilityIndex_ClampedToRange(t *testing.T) {
	require.Equal(t, 100.0, maintainabilityIndex(1, 0, 1))
	require.GreaterOrEqual(t, maintainabilityIndex(100000, 500, 1), 0.0)
}

func TestHalsteadVolume_MinimumForTrivialInput(t *testing.T) {
	require.Equal(t, 1.0, halsteadVolume(""))
}

func TestAnalyze_ComplexityScoreFloor(t *testing.T) {
	m := Analyze("empty.go", "package x\n")
	require.GreaterOrEqual(t, m.ComplexityScore, 0.05)
}

func TestAnalyze_LargeCyclomaticCapsContribution(t *testing.T) {
	var b strings.Builder
	b.WriteString("package x\nfunc f(a int) int {\n")
	for i := 0; i < 40; i++ {
		b.WriteString("if a > 0 { a-- }\n")
	}
	b.WriteString("return a\n}\n")
	m := Analyze("big.go", b.String())
	require.Greater(t, m.Cyclomatic, 20.0)
	require.LessOrEqual(t, m.ComplexityScore, 1.0)
}

func TestDetectLanguage_ByExtension(t *testing.T) {
	require.Equal(t, LangPython, detectLanguage("a/b/c.py"))
	require.Equal(t, LangGoCFamily, detectLanguage("main.go"))
	require.Equal(t, LangUnknown, detectLanguage("README"))
}
