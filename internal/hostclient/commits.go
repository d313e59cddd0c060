package hostclient

import (
	"context"
	"fmt"
	"time"
)

// maxCommitPages bounds internal pagination, matching spec.md §4.1d's
// "safety cap (e.g., 5,000 commits)" at 100 commits/page.
const maxCommitPages = 50

// CommitRecord is one entry of a file's (or repository's) commit
// history, mirroring the fields the Churn Analyzer needs: author,
// timestamp, message (for bug-fix/refactor keyword matching) and the
// commit's aggregate insertion/deletion counts. It carries no per-file
// change list.
type CommitRecord struct {
	SHA       string    `json:"sha"`
	Author    string    `json:"author"`
	Date      time.Time `json:"date"`
	Message   string    `json:"message"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

type rawCommitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
		Message string `json:"message"`
	} `json:"commit"`
	Stats struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
	} `json:"stats"`
}

// GetCommitHistory returns up to limit commits touching path (or the
// whole repository when path is empty), newest first, restricted to
// commits on/after since. It pages internally up to maxCommitPages.
func (c *Client) GetCommitHistory(ctx context.Context, owner, repo, path string, since time.Time, limit int) ([]CommitRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []CommitRecord
	page := 1
	for page <= maxCommitPages && len(out) < limit {
		var raw []rawCommitResponse
		apiPath := fmt.Sprintf("/repos/%s/%s/commits?per_page=100&page=%d", owner, repo, page)
		if path != "" {
			apiPath += "&path=" + path
		}
		if !since.IsZero() {
			apiPath += "&since=" + since.UTC().Format(time.RFC3339)
		}
		if err := c.getJSON(ctx, apiPath, &raw); err != nil {
			return nil, fmt.Errorf("get commit history %s/%s %q page %d: %w", owner, repo, path, page, err)
		}
		if len(raw) == 0 {
			break
		}
		for _, r := range raw {
			out = append(out, CommitRecord{
				SHA:       r.SHA,
				Author:    r.Commit.Author.Name,
				Date:      r.Commit.Author.Date,
				Message:   r.Commit.Message,
				Additions: r.Stats.Additions,
				Deletions: r.Stats.Deletions,
			})
			if len(out) >= limit {
				break
			}
		}
		if len(raw) < 100 {
			break
		}
		page++
	}
	return out, nil
}
