package hostclient

import (
	"context"
	"fmt"
)

// Descriptor is the repository metadata record returned by
// GetRepositoryDescriptor (spec.md §4.1a).
type Descriptor struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
	Size          int64  `json:"size"`
	Private       bool   `json:"private"`
}

// GetRepositoryDescriptor fetches the repository's top-level metadata.
func (c *Client) GetRepositoryDescriptor(ctx context.Context, owner, repo string) (Descriptor, error) {
	var d Descriptor
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := c.getJSON(ctx, path, &d); err != nil {
		return Descriptor{}, fmt.Errorf("get repository descriptor %s/%s: %w", owner, repo, err)
	}
	return d, nil
}
