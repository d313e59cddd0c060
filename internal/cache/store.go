// Package cache provides the typed key-value cache interface used by the
// Content Extractor, with an in-memory adapter for
// tests and a durable sqlite-backed adapter for production. Per the design
// notes, the Coordinator owns the lifetime of whichever adapter is
// constructed; there is no process-wide singleton.
package cache

import (
	"context"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Store is a TTL-aware byte-value key-value cache. Implementations must be
// safe for concurrent use. A race between two misses for the same key is
// permitted to duplicate the underlying fetch; the later Set wins.
type Store interface {
	// Get returns the cached value and true if present and not expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key with the given time-to-live. ttl <= 0 means
	// the entry never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close releases any resources held by the store (file handles, DB
	// connections). Safe to call on a nil Store.
	Close() error
}

// ContentKeyPrefix namespaces Content Record cache entries, matching the
// wire format documented in spec.md §6: file_content:<repo>:<sha256(...)>.
const ContentKeyPrefix = "file_content"

// FileContentKey builds the durable cache key for a single (repo, path)
// content fetch. It uses xxhash rather than sha256 for the in-process key
// derivation step since the value only needs to be a stable, collision-low
// cache key, not a cryptographic digest. Keys built here therefore differ
// from the sha256-based on-wire key format documented in spec.md; this
// package does not derive that format.
func FileContentKey(repoID, path string) string {
	h := xxhash.New()
	_, _ = h.WriteString(repoID)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(path)
	return ContentKeyPrefix + ":" + sanitizeRepo(repoID) + ":" + hexSum(h.Sum64())
}

func sanitizeRepo(repoID string) string {
	out := make([]rune, 0, len(repoID))
	for _, r := range repoID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

const hexDigits = "0123456789abcdef"

func hexSum(v uint64) string {
	b := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		b[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(b)
}

// DefaultContentTTL is the Content Extractor's 24-hour cache lifetime.
const DefaultContentTTL = 24 * time.Hour
