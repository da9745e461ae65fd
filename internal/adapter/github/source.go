package github

import (
	"context"
	"fmt"

	"github.com/bkyoung/prpdf/internal/domain"
)

// PRSource adapts the API client to the report source port for one
// pull request.
type PRSource struct {
	client *Client
	owner  string
	repo   string
	number int
}

// NewPRSource constructs a source for the given pull request coordinates.
func NewPRSource(client *Client, owner, repo string, number int) *PRSource {
	return &PRSource{client: client, owner: owner, repo: repo, number: number}
}

// PullRequest fetches and maps the pull request metadata. For closed but
// unmerged pull requests the issue endpoint supplies who closed them.
func (s *PRSource) PullRequest(ctx context.Context) (domain.PullRequest, error) {
	pr, err := s.client.GetPullRequest(ctx, s.owner, s.repo, s.number)
	if err != nil {
		return domain.PullRequest{}, err
	}

	mapped := MapPullRequest(pr)

	if mapped.State == "closed" && !mapped.Merged() {
		issue, err := s.client.GetIssue(ctx, s.owner, s.repo, s.number)
		if err == nil && issue.ClosedBy != nil {
			mapped.ClosedBy = issue.ClosedBy.Login
		}
	}

	return mapped, nil
}

// Commits fetches the pull request commits, enriched with each commit's
// changed files from the single-commit endpoint.
func (s *PRSource) Commits(ctx context.Context) ([]domain.Commit, error) {
	commits, err := s.client.ListCommits(ctx, s.owner, s.repo, s.number)
	if err != nil {
		return nil, err
	}

	mapped := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		detail, err := s.client.GetCommit(ctx, s.owner, s.repo, c.SHA)
		if err != nil {
			return nil, fmt.Errorf("commit %s detail: %w", c.SHA, err)
		}
		mapped = append(mapped, MapCommit(detail))
	}
	return mapped, nil
}

// Files fetches the cumulative changed files of the pull request.
func (s *PRSource) Files(ctx context.Context) ([]domain.ChangedFile, error) {
	files, err := s.client.ListFiles(ctx, s.owner, s.repo, s.number)
	if err != nil {
		return nil, err
	}
	return MapFiles(files), nil
}
