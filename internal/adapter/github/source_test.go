package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSourceServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()

	issueCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/widgets/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"number": 7,
			"title": "Closed without merge",
			"state": "closed",
			"user": {"login": "alice"},
			"closed_at": "2024-03-05T10:00:00Z",
			"base": {"ref": "main", "repo": {"name": "widgets", "owner": {"login": "octo"}}},
			"head": {"ref": "feature"}
		}`))
	})
	mux.HandleFunc("/repos/octo/widgets/issues/7", func(w http.ResponseWriter, r *http.Request) {
		issueCalls++
		w.Write([]byte(`{"number": 7, "closed_by": {"login": "carol"}}`))
	})
	mux.HandleFunc("/repos/octo/widgets/pulls/7/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"sha": "abc"}]`))
	})
	mux.HandleFunc("/repos/octo/widgets/commits/abc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"sha": "abc",
			"commit": {"message": "Do things", "author": {"name": "Alice", "date": "2024-03-01T09:00:00Z"}, "committer": {"name": "Alice", "date": "2024-03-01T09:00:00Z"}},
			"author": {"login": "alice"},
			"files": [{"filename": "a.go", "status": "modified", "additions": 1, "deletions": 1, "patch": "@@ -1 +1 @@\n-x\n+y"}]
		}`))
	})
	mux.HandleFunc("/repos/octo/widgets/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"filename": "a.go", "status": "modified", "additions": 1, "deletions": 1}]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &issueCalls
}

func newTestSource(t *testing.T) (*PRSource, *int) {
	server, issueCalls := newSourceServer(t)
	client := NewClient("")
	client.SetBaseURL(server.URL)
	return NewPRSource(client, "octo", "widgets", 7), issueCalls
}

func TestPRSourcePullRequestEnrichesClosedBy(t *testing.T) {
	source, issueCalls := newTestSource(t)

	pr, err := source.PullRequest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "octo", pr.Owner)
	assert.Equal(t, "closed", pr.State)
	assert.False(t, pr.Merged())
	assert.Equal(t, "carol", pr.ClosedBy)
	assert.Equal(t, 1, *issueCalls)
}

func TestPRSourceCommitsFetchPerCommitFiles(t *testing.T) {
	source, _ := newTestSource(t)

	commits, err := source.Commits(context.Background())
	require.NoError(t, err)
	require.Len(t, commits, 1)

	assert.Equal(t, "abc", commits[0].SHA)
	assert.Equal(t, "alice", commits[0].Author)
	require.Len(t, commits[0].Files, 1)
	assert.Equal(t, "a.go", commits[0].Files[0].Filename)
	assert.NotEmpty(t, commits[0].Files[0].Patch)
}

func TestPRSourceFiles(t *testing.T) {
	source, _ := newTestSource(t)

	files, err := source.Files(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 1, files[0].Additions)
	assert.Equal(t, 1, files[0].Deletions)
}
