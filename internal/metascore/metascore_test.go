package metascore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore_ConfigFileScoresHigh(t *testing.T) {
	s := Score("package.json", 500, `{"name": "x", "dependencies": {}}`)
	require.Greater(t, s, 0.6)
}

func TestScore_TestFileScoresLow(t *testing.T) {
	s := Score("src/app/foo_test.go", 500, "package app\nfunc TestFoo(t *testing.T) {}\n")
	require.Less(t, s, 0.5)
}

func TestScore_ExcludedVendorPathIsFloored(t *testing.T) {
	s := Score("vendor/github.com/x/y/z.go", 5000, strings.Repeat("package z\n", 50))
	require.Equal(t, 0.01, s)
}

func TestScore_TinyFileIsExcluded(t *testing.T) {
	s := Score("src/app/tiny.go", 10, "ok")
	require.Equal(t, 0.01, s)
}

func TestIsLowCodeDensity_MostlyCommentsExcluded(t *testing.T) {
	text := strings.Repeat("# comment line\n", 20) + "x = 1\n"
	require.True(t, Score("notes/readme_notes.py", 500, text) <= 0.3)
}

func TestSizeScore_LogScaled(t *testing.T) {
	require.InDelta(t, 0, sizeScore(0), 1e-9)
	require.Greater(t, sizeScore(50000), sizeScore(100))
	require.LessOrEqual(t, sizeScore(1_000_000), 1.0)
}

func TestLocationBonus_RootHigherThanDeep(t *testing.T) {
	require.Greater(t, locationBonus("main.go"), locationBonus("a/b/c/d/e/deep.go"))
}

func TestValidateTOMLManifest(t *testing.T) {
	require.NoError(t, ValidateTOMLManifest("[project]\nname = \"x\"\n"))
	require.Error(t, ValidateTOMLManifest("not = [valid"))
}

func TestIsTOMLManifest(t *testing.T) {
	require.True(t, IsTOMLManifest("pyproject.toml"))
	require.True(t, IsTOMLManifest("Cargo.toml"))
	require.False(t, IsTOMLManifest("package.json"))
}
