package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bkyoung/prpdf/internal/adapter/httpapi"
)

type fakeCache struct {
	store map[string][]byte
	puts  int
	hits  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	body, ok := f.store[url]
	if ok {
		f.hits++
	}
	return body, ok, nil
}

func (f *fakeCache) Put(ctx context.Context, url string, body []byte) error {
	f.puts++
	f.store[url] = body
	return nil
}

func TestGetPullRequestSendsHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotVersion = r.Header.Get("X-GitHub-Api-Version")
		w.Write([]byte(`{"number": 7, "title": "Add widget", "state": "open"}`))
	}))
	defer server.Close()

	client := NewClient("token-123")
	client.SetBaseURL(server.URL)

	pr, err := client.GetPullRequest(context.Background(), "octo", "widgets", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pr.Number != 7 || pr.Title != "Add widget" {
		t.Fatalf("unexpected pull request: %+v", pr)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Fatalf("unexpected Accept header: %q", gotAccept)
	}
	if gotVersion != apiVersion {
		t.Fatalf("unexpected api version header: %q", gotVersion)
	}
}

func TestEmptyTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"number": 1}`))
	}))
	defer server.Close()

	client := NewClient("")
	client.SetBaseURL(server.URL)

	if _, err := client.GetPullRequest(context.Background(), "octo", "widgets", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestGetJSONUsesCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"number": 7}`))
	}))
	defer server.Close()

	cache := newFakeCache()
	client := NewClient("")
	client.SetBaseURL(server.URL)
	client.SetCache(cache)

	for i := 0; i < 2; i++ {
		if _, err := client.GetPullRequest(context.Background(), "octo", "widgets", 7); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
	}

	if requests != 1 {
		t.Fatalf("expected 1 upstream request, got %d", requests)
	}
	if cache.puts != 1 || cache.hits != 1 {
		t.Fatalf("unexpected cache traffic: puts=%d hits=%d", cache.puts, cache.hits)
	}
}

func TestErrorResponsesAreNotCached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	cache := newFakeCache()
	client := NewClient("")
	client.SetBaseURL(server.URL)
	client.SetCache(cache)

	_, err := client.GetPullRequest(context.Background(), "octo", "widgets", 404)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if cache.puts != 0 {
		t.Fatalf("expected no cache writes for errors, got %d", cache.puts)
	}
}

func TestHTTPErrorIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Bad credentials"}`))
	}))
	defer server.Close()

	client := NewClient("bad")
	client.SetBaseURL(server.URL)

	_, err := client.GetPullRequest(context.Background(), "octo", "widgets", 1)
	var apiErr *httpapi.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected httpapi.Error, got %T: %v", err, err)
	}
	if apiErr.Type != httpapi.ErrTypeAuthentication {
		t.Fatalf("unexpected error type: %v", apiErr.Type)
	}
}

func TestListCommitsAndFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/widgets/pulls/7/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"sha": "abc"}, {"sha": "def"}]`))
	})
	mux.HandleFunc("/repos/octo/widgets/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"filename": "a.go", "status": "modified", "additions": 2, "deletions": 1}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient("")
	client.SetBaseURL(server.URL)

	commits, err := client.ListCommits(context.Background(), "octo", "widgets", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commits) != 2 || commits[0].SHA != "abc" {
		t.Fatalf("unexpected commits: %+v", commits)
	}

	files, err := client.ListFiles(context.Background(), "octo", "widgets", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Filename != "a.go" {
		t.Fatalf("unexpected files: %+v", files)
	}
}
