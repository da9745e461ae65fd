package github

import "time"

// GitHub REST API v3 response types.
// See: https://docs.github.com/en/rest/pulls/pulls#get-a-pull-request

// User represents a GitHub user.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"` // "User" or "Bot"
}

// Ref is one side of a pull request (head or base).
type Ref struct {
	Ref  string `json:"ref"`
	SHA  string `json:"sha"`
	Repo struct {
		Name  string `json:"name"`
		Owner User   `json:"owner"`
	} `json:"repo"`
}

// PullRequest is the response from GET /repos/{owner}/{repo}/pulls/{n}.
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"` // "open" or "closed"
	Body      string     `json:"body"`
	User      User       `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	MergedBy  *User      `json:"merged_by"`
	Head      Ref        `json:"head"`
	Base      Ref        `json:"base"`
}

// CommitPerson is the name/date pair inside a git commit object.
type CommitPerson struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// Commit is one element of GET /repos/{owner}/{repo}/pulls/{n}/commits,
// and the envelope of GET /repos/{owner}/{repo}/commits/{sha}.
type Commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message   string       `json:"message"`
		Author    CommitPerson `json:"author"`
		Committer CommitPerson `json:"committer"`
	} `json:"commit"`
	Author    *User  `json:"author"`
	Committer *User  `json:"committer"`
	Files     []File `json:"files,omitempty"` // only present on the single-commit endpoint
}

// File is one element of GET /repos/{owner}/{repo}/pulls/{n}/files.
type File struct {
	Filename         string `json:"filename"`
	PreviousFilename string `json:"previous_filename,omitempty"`
	Status           string `json:"status"`
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Patch            string `json:"patch,omitempty"` // absent for binary files
}

// Issue is the response from GET /repos/{owner}/{repo}/issues/{n}.
// Only fetched for closed-unmerged pull requests, to recover who closed them.
type Issue struct {
	Number   int   `json:"number"`
	ClosedBy *User `json:"closed_by"`
}

// ErrorResponse represents an error response from the GitHub API.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
