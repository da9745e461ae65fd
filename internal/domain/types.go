package domain

import (
	"strings"
	"time"
)

// File change statuses as reported by the GitHub files API.
const (
	FileStatusAdded    = "added"
	FileStatusModified = "modified"
	FileStatusRemoved  = "removed"
	FileStatusRenamed  = "renamed"
)

// PullRequest holds the pull request metadata rendered into a report.
type PullRequest struct {
	Owner     string
	Repo      string
	Number    int
	Title     string
	State     string
	Body      string
	Author    string
	CreatedAt time.Time
	MergedAt  *time.Time
	ClosedAt  *time.Time
	MergedBy  string
	ClosedBy  string
	HeadRef   string
	BaseRef   string
}

// Merged reports whether the pull request was merged.
func (pr PullRequest) Merged() bool {
	return pr.MergedAt != nil
}

// Commit is a single commit belonging to the pull request.
type Commit struct {
	SHA         string
	Message     string
	Author      string
	Committer   string
	AuthoredAt  time.Time
	CommittedAt time.Time
	Files       []ChangedFile
}

// Title returns the first line of the commit message.
func (c Commit) Title() string {
	title, _, _ := strings.Cut(c.Message, "\n")
	return title
}

// BodyText returns the commit message body after the title line, trimmed.
func (c Commit) BodyText() string {
	_, body, found := strings.Cut(c.Message, "\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(body)
}

// ShortSHA returns the abbreviated commit hash used in headings.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// ChangedFile captures the change to a single file, either for one commit
// or cumulatively across the pull request.
type ChangedFile struct {
	Filename         string
	PreviousFilename string // set for renames
	Status           string
	Additions        int
	Deletions        int
	Patch            string // raw unified diff text; empty for binary files
}

// Report is the fully assembled input to the document renderer. It owns its
// commits and files exclusively; it is built fresh per run and never mutated
// after assembly.
type Report struct {
	PR          PullRequest
	Commits     []Commit
	Files       []ChangedFile
	GeneratedAt time.Time
}

// TotalAdditions sums added lines across the overall changed files.
func (r Report) TotalAdditions() int {
	total := 0
	for _, f := range r.Files {
		total += f.Additions
	}
	return total
}

// TotalDeletions sums removed lines across the overall changed files.
func (r Report) TotalDeletions() int {
	total := 0
	for _, f := range r.Files {
		total += f.Deletions
	}
	return total
}
