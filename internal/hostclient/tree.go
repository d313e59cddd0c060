package hostclient

import (
	"context"
	"fmt"
)

// EntryType distinguishes file and directory tree entries.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// TreeEntry is one row of the repository's recursive file tree
// (spec.md §4.1b).
type TreeEntry struct {
	Path string    `json:"path"`
	Type EntryType `json:"type"`
	Size int64     `json:"size"`
	SHA  string    `json:"sha"`
}

type rawTreeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"` // "blob" or "tree"
		Size int64  `json:"size"`
		SHA  string `json:"sha"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// GetRecursiveTree fetches the full file tree of ref (typically the
// default branch) in a single call; the core performs no further
// pagination (spec.md §4.1b: "Single call; no pagination at the core's
// layer").
func (c *Client) GetRecursiveTree(ctx context.Context, owner, repo, ref string) ([]TreeEntry, error) {
	var raw rawTreeResponse
	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", owner, repo, ref)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("get recursive tree %s/%s@%s: %w", owner, repo, ref, err)
	}
	entries := make([]TreeEntry, 0, len(raw.Tree))
	for _, e := range raw.Tree {
		t := EntryFile
		if e.Type == "tree" {
			t = EntryDir
		}
		entries = append(entries, TreeEntry{Path: e.Path, Type: t, Size: e.Size, SHA: e.SHA})
	}
	return entries, nil
}
