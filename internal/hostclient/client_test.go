package hostclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetRepositoryDescriptor(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello-world" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":      "octocat/hello-world",
			"default_branch": "main",
			"language":       "Go",
			"size":           1234,
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "", 4)
	d, err := c.GetRepositoryDescriptor(context.Background(), "octocat", "hello-world")
	if err != nil {
		t.Fatalf("GetRepositoryDescriptor error: %v", err)
	}
	if d.DefaultBranch != "main" || d.FullName != "octocat/hello-world" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
}

func TestGetRecursiveTree(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tree": []map[string]any{
				{"path": "main.go", "type": "blob", "size": 100, "sha": "abc"},
				{"path": "internal", "type": "tree", "size": 0, "sha": "def"},
			},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "", 4)
	entries, err := c.GetRecursiveTree(context.Background(), "o", "r", "main")
	if err != nil {
		t.Fatalf("GetRecursiveTree error: %v", err)
	}
	if len(entries) != 2 || entries[0].Type != EntryFile || entries[1].Type != EntryDir {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestGetFileContent_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(ts.URL, "", 4)
	c.MaxAttempts = 1
	_, err := c.GetFileContent(context.Background(), "o", "r", "missing.go", "main")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetFileContent_Decodes(t *testing.T) {
	want := "package main\n\nfunc main() {}\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content":  base64.StdEncoding.EncodeToString([]byte(want)),
			"encoding": "base64",
			"size":     len(want),
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "", 4)
	fc, err := c.GetFileContent(context.Background(), "o", "r", "main.go", "main")
	if err != nil {
		t.Fatalf("GetFileContent error: %v", err)
	}
	if string(fc.Body) != want {
		t.Fatalf("Body = %q, want %q", fc.Body, want)
	}
}

func TestGetBody_RetriesServerErrorsThenSucceeds(t *testing.T) {
	var calls int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"full_name": "o/r", "default_branch": "main"})
	}))
	defer ts.Close()

	c := New(ts.URL, "", 4)
	c.BaseBackoff = time.Millisecond
	d, err := c.GetRepositoryDescriptor(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if d.DefaultBranch != "main" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if atomic.LoadInt64(&calls) != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestGetCommitHistory_SinglePage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"sha": "abc123",
				"commit": map[string]any{
					"author":  map[string]any{"name": "Ada", "date": "2024-01-02T15:04:05Z"},
					"message": "fix: resolve off-by-one bug",
				},
				"stats": map[string]any{"additions": 3, "deletions": 1},
			},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "", 4)
	commits, err := c.GetCommitHistory(context.Background(), "o", "r", "main.go", time.Time{}, 10)
	if err != nil {
		t.Fatalf("GetCommitHistory error: %v", err)
	}
	if len(commits) != 1 || commits[0].Author != "Ada" || commits[0].Additions != 3 {
		t.Fatalf("unexpected commits: %+v", commits)
	}
}
