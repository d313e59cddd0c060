package selector

import (
	"context"
	"sort"

	"github.com/kss2002/techgiterview-pipeline/internal/content"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/kss2002/techgiterview-pipeline/internal/metascore"
)

// reservedPick is one file reserved by Phase 5a, with its Content
// Record fetched (possibly just now, possibly from an earlier phase).
type reservedPick struct {
	path    string
	size    int64
	score   float64
	content content.Record
}

// phase5aReserved implements spec.md §4.7 Phase 5a: reserve up to slots
// slots for the top-scoring files matching the closed manifest list,
// ranked by Metadata score; a reserved file not already fetched gets one
// final fetch attempt and is skipped on failure. A TOML manifest whose
// text does not parse is skipped the same way.
func phase5aReserved(
	ctx context.Context,
	extractor *content.Extractor,
	entries []hostclient.TreeEntry,
	alreadyFetched map[string]content.Record,
	slots int,
) []reservedPick {
	type ranked struct {
		path  string
		size  int64
		score float64
	}
	var manifestFiles []ranked
	for _, e := range entries {
		if e.Type != hostclient.EntryFile || !isReservedManifest(e.Path) {
			continue
		}
		text := ""
		if r, ok := alreadyFetched[e.Path]; ok && r.Success() {
			text = r.Text
		}
		manifestFiles = append(manifestFiles, ranked{
			path:  e.Path,
			size:  e.Size,
			score: metascore.Score(e.Path, e.Size, text),
		})
	}
	sort.SliceStable(manifestFiles, func(i, j int) bool { return manifestFiles[i].score > manifestFiles[j].score })
	if len(manifestFiles) > slots {
		manifestFiles = manifestFiles[:slots]
	}

	picks := make([]reservedPick, 0, len(manifestFiles))
	var toFetch []string
	need := map[string]ranked{}
	for _, m := range manifestFiles {
		if r, ok := alreadyFetched[m.path]; ok && r.Success() {
			if metascore.IsTOMLManifest(m.path) && metascore.ValidateTOMLManifest(r.Text) != nil {
				continue
			}
			picks = append(picks, reservedPick{path: m.path, size: m.size, score: m.score, content: r})
			continue
		}
		toFetch = append(toFetch, m.path)
		need[m.path] = m
	}
	if len(toFetch) > 0 {
		fetched := extractor.ExtractMany(ctx, toFetch, int64(len(toFetch)))
		for _, r := range fetched {
			if !r.Success() || (metascore.IsTOMLManifest(r.Path) && metascore.ValidateTOMLManifest(r.Text) != nil) {
				continue
			}
			m := need[r.Path]
			picks = append(picks, reservedPick{path: r.Path, size: m.size, score: m.score, content: r})
		}
	}
	return picks
}
