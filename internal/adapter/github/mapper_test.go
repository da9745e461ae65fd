package github

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/prpdf/internal/domain"
)

func TestMapPullRequest(t *testing.T) {
	payload := `{
		"number": 42,
		"title": "Fix splines",
		"state": "closed",
		"body": "details",
		"user": {"login": "alice"},
		"created_at": "2024-03-01T10:00:00Z",
		"merged_at": "2024-03-03T10:00:00Z",
		"closed_at": "2024-03-03T10:00:00Z",
		"merged_by": {"login": "bob"},
		"head": {"ref": "fix/splines"},
		"base": {"ref": "main", "repo": {"name": "widgets", "owner": {"login": "octo"}}}
	}`

	var pr PullRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &pr))

	mapped := MapPullRequest(pr)

	assert.Equal(t, "octo", mapped.Owner)
	assert.Equal(t, "widgets", mapped.Repo)
	assert.Equal(t, 42, mapped.Number)
	assert.Equal(t, "Fix splines", mapped.Title)
	assert.Equal(t, "alice", mapped.Author)
	assert.Equal(t, "bob", mapped.MergedBy)
	assert.Equal(t, "fix/splines", mapped.HeadRef)
	assert.Equal(t, "main", mapped.BaseRef)
	assert.True(t, mapped.Merged())
}

func TestMapPullRequestUnmerged(t *testing.T) {
	mapped := MapPullRequest(PullRequest{Number: 1, State: "open"})

	assert.False(t, mapped.Merged())
	assert.Empty(t, mapped.MergedBy)
	assert.Nil(t, mapped.MergedAt)
}

func TestMapCommitPrefersAccountLogin(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	c := Commit{SHA: "abc123"}
	c.Commit.Message = "Fix it\n\nBody."
	c.Commit.Author = CommitPerson{Name: "Alice Smith", Date: date}
	c.Commit.Committer = CommitPerson{Name: "Bob Jones", Date: date}
	c.Author = &User{Login: "alice"}
	c.Committer = &User{Login: "bob"}
	c.Files = []File{{Filename: "a.go", Status: "modified", Additions: 1}}

	mapped := MapCommit(c)

	assert.Equal(t, "abc123", mapped.SHA)
	assert.Equal(t, "alice", mapped.Author)
	assert.Equal(t, "bob", mapped.Committer)
	assert.Equal(t, date, mapped.AuthoredAt)
	require.Len(t, mapped.Files, 1)
	assert.Equal(t, "a.go", mapped.Files[0].Filename)
}

func TestMapCommitFallsBackToGitName(t *testing.T) {
	c := Commit{SHA: "abc"}
	c.Commit.Author = CommitPerson{Name: "Alice Smith"}
	c.Commit.Committer = CommitPerson{Name: "Bob Jones"}

	mapped := MapCommit(c)

	assert.Equal(t, "Alice Smith", mapped.Author)
	assert.Equal(t, "Bob Jones", mapped.Committer)
}

func TestMapFiles(t *testing.T) {
	files := []File{
		{Filename: "new.go", Status: "added", Additions: 10},
		{Filename: "moved.go", PreviousFilename: "old.go", Status: "renamed"},
	}

	mapped := MapFiles(files)

	require.Len(t, mapped, 2)
	assert.Equal(t, domain.FileStatusAdded, mapped[0].Status)
	assert.Equal(t, "old.go", mapped[1].PreviousFilename)

	assert.Nil(t, MapFiles(nil))
}
