package churn

import (
	"testing"
	"time"

	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_NoCommitsDefaultsTo0_3(t *testing.T) {
	m := Analyze(nil, 1, time.Now())
	require.Equal(t, 0.3, m.ChurnScore)
}

func TestAnalyze_BugFixRatio(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	commits := []hostclient.CommitRecord{
		{Author: "a", Date: now.AddDate(0, 0, -1), Message: "fix: off by one", Additions: 4, Deletions: 1},
		{Author: "b", Date: now.AddDate(0, 0, -2), Message: "add feature", Additions: 10, Deletions: 0},
	}
	m := Analyze(commits, 1, now)
	require.Equal(t, 0.5, m.BugFixRatio)
	require.Equal(t, 2, m.CommitCount)
	require.Equal(t, 2, m.UniqueAuthors)
	require.GreaterOrEqual(t, m.ChurnScore, 0.05)
	require.LessOrEqual(t, m.ChurnScore, 1.0)
}

func TestAnalyze_SplitsChangesAcrossTouchedFiles(t *testing.T) {
	now := time.Now()
	commits := []hostclient.CommitRecord{
		{Author: "a", Date: now, Message: "update", Additions: 10, Deletions: 4},
	}
	m := Analyze(commits, 2, now)
	require.Equal(t, 5, m.Additions)
	require.Equal(t, 2, m.Deletions)
}

func TestIsHotspot(t *testing.T) {
	require.True(t, IsHotspot(0.85, 0.1, 0.6))
	require.True(t, IsHotspot(0.1, 0.75, 0.0))
	require.False(t, IsHotspot(0.5, 0.5, 0.3))
}

func TestIsStable(t *testing.T) {
	require.True(t, IsStable(0.1, 0.1, 0.9))
	require.False(t, IsStable(0.9, 0.1, 0.9))
}
