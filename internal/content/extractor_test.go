package content

import (
	"context"
	"testing"

	"github.com/kss2002/techgiterview-pipeline/internal/cache"
	"github.com/kss2002/techgiterview-pipeline/internal/hostclient"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	bodies map[string][]byte
	errs   map[string]error
}

func (f fakeSource) GetFileContent(_ context.Context, _, _, path, _ string) (hostclient.FileContent, error) {
	if err, ok := f.errs[path]; ok {
		return hostclient.FileContent{}, err
	}
	b := f.bodies[path]
	return hostclient.FileContent{Path: path, Body: b, Size: int64(len(b))}, nil
}

func TestExtract_RejectsBinaryExtension(t *testing.T) {
	e := &Extractor{Source: fakeSource{}, Cache: cache.NewMemoryStore(), Owner: "o", Repo: "r"}
	rec := e.Extract(context.Background(), "logo.png")
	require.Equal(t, ReasonBinaryExtension, rec.Failure)
}

func TestExtract_SizeExceeded(t *testing.T) {
	big := make([]byte, SizeCapBytes+1)
	for i := range big {
		big[i] = 'a'
	}
	e := &Extractor{
		Source: fakeSource{bodies: map[string][]byte{"big.go": big}},
		Cache:  cache.NewMemoryStore(),
		Owner:  "o", Repo: "r",
	}
	rec := e.Extract(context.Background(), "big.go")
	require.Equal(t, ReasonSizeExceeded, rec.Failure)
}

func TestExtract_CachesSuccess(t *testing.T) {
	store := cache.NewMemoryStore()
	e := &Extractor{
		Source: fakeSource{bodies: map[string][]byte{"main.go": []byte("package main\n")}},
		Cache:  store,
		Owner:  "o", Repo: "r",
	}
	first := e.Extract(context.Background(), "main.go")
	require.True(t, first.Success())
	require.False(t, first.CacheMeta.HitCache)

	second := e.Extract(context.Background(), "main.go")
	require.True(t, second.Success())
	require.True(t, second.CacheMeta.HitCache)
	require.Equal(t, first.Text, second.Text)

	snap := e.Stats()
	require.Equal(t, int64(2), snap.Requests)
	require.Equal(t, int64(1), snap.CacheHits)
	require.Equal(t, 0.5, snap.CacheHitRate)
}

func TestExtractMany_PreservesOrderDespitePartialFailure(t *testing.T) {
	e := &Extractor{
		Source: fakeSource{
			bodies: map[string][]byte{"a.go": []byte("package a\n"), "c.go": []byte("package c\n")},
			errs:   map[string]error{"b.go": hostclient.ErrNotFound},
		},
		Cache: cache.NewMemoryStore(),
		Owner: "o", Repo: "r",
	}
	recs := e.ExtractMany(context.Background(), []string{"a.go", "b.go", "c.go"}, 2)
	require.Len(t, recs, 3)
	require.True(t, recs[0].Success())
	require.Equal(t, ReasonNotFound, recs[1].Failure)
	require.True(t, recs[2].Success())
}

func TestTruncate_PreservesImportantLinesAndMarksGaps(t *testing.T) {
	var b []byte
	for i := 0; i < 10; i++ {
		b = append(b, []byte("filler line\n")...)
	}
	text := "func Important() {}\n" + string(b)
	out, truncated := Truncate(text, 3)
	require.True(t, truncated)
	require.Contains(t, out, "func Important()")
	require.Contains(t, out, "skipped")
}

func TestLooksBinary(t *testing.T) {
	require.True(t, looksBinary([]byte{0x00, 'a', 'b'}))
	require.False(t, looksBinary([]byte("package main\n")))
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	text, strategy := decode([]byte("hello world"))
	require.Equal(t, "hello world", text)
	require.Equal(t, StrategyUTF8, strategy)
}
