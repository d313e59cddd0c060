// Package content implements the Content Extractor (spec.md §4.2): it
// turns a (repo, path) pair into a size-capped, encoding-normalized
// Content Record, backed by a durable cache, grounded on the Python
// FileContentExtractor's size/cache/binary-filter pipeline
// (file_content_extractor.py) and on the teacher's internal/extract
// package for the shape of a text-extraction component (here adapted
// away from HTML parsing, since this domain fetches source files, not
// web pages).
package content

import "time"

// Strategy names which decode path produced a Content Record's text,
// for observability and for tests that assert the cascade order.
type Strategy string

const (
	StrategyUTF8        Strategy = "utf8"
	StrategyDetected    Strategy = "detected"
	StrategyLatin1      Strategy = "latin1"
	StrategyUTF8Replace Strategy = "utf8_replace"
)

// FailureReason enumerates the non-success outcomes spec.md §3 assigns to
// a Content Record.
type FailureReason string

const (
	ReasonNone            FailureReason = ""
	ReasonBinaryExtension FailureReason = "binary_extension"
	ReasonBinaryContent   FailureReason = "binary_content"
	ReasonSizeExceeded    FailureReason = "size_exceeded"
	ReasonNotFound        FailureReason = "not_found"
	ReasonFetchError      FailureReason = "fetch_error"
)

// CacheMeta records how a Content Record's cache entry was populated.
type CacheMeta struct {
	CachedAt time.Time
	TTL      time.Duration
	HitCache bool
}

// Record is the Content Extractor's unit of output (spec.md §3's
// "Content Record").
type Record struct {
	Path      string
	RepoID    string
	Bytes     []byte
	Text      string
	Encoding  Strategy
	Truncated bool
	Failure   FailureReason
	Size      int64
	CacheMeta CacheMeta
}

// Success reports whether the record carries usable text content.
func (r Record) Success() bool {
	return r.Failure == ReasonNone
}

const (
	// SizeCapBytes is the hard 1 MB cap before a file is rejected with
	// size_exceeded (spec.md §4.2).
	SizeCapBytes = 1024 * 1024
	// MaxLines triggers truncation rather than rejection.
	MaxLines = 50000
	// DefaultTTL is the durable cache entry lifetime.
	DefaultTTL = 24 * time.Hour
)
