package hostclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrBinary indicates the host flagged the blob as binary/too large for
// its inline content API, matching spec.md §4.1c's BinaryFlag outcome.
var ErrBinary = errors.New("hostclient: content flagged binary by host")

type rawContentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Size     int64  `json:"size"`
}

// FileContent is the raw bytes and server-reported size for one path,
// returned by GetFileContent.
type FileContent struct {
	Path string
	Body []byte
	Size int64
}

// GetFileContent fetches the raw bytes of path at ref. A 404 surfaces as
// ErrNotFound; the host's own binary detection surfaces as ErrBinary.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (FileContent, error) {
	var raw rawContentResponse
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s", owner, repo, path, ref)
	if err := c.getJSON(ctx, apiPath, &raw); err != nil {
		if errors.Is(err, ErrNotFound) {
			return FileContent{}, ErrNotFound
		}
		return FileContent{}, fmt.Errorf("get file content %s: %w", path, err)
	}
	if raw.Encoding != "base64" {
		return FileContent{}, ErrBinary
	}
	body, err := base64.StdEncoding.DecodeString(stripNewlines(raw.Content))
	if err != nil {
		return FileContent{}, fmt.Errorf("decode base64 content for %s: %w", path, err)
	}
	return FileContent{Path: path, Body: body, Size: raw.Size}, nil
}

func stripNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
