package github

import (
	"github.com/bkyoung/prpdf/internal/domain"
)

// MapPullRequest converts an API pull request to the domain model.
func MapPullRequest(pr PullRequest) domain.PullRequest {
	mapped := domain.PullRequest{
		Owner:     pr.Base.Repo.Owner.Login,
		Repo:      pr.Base.Repo.Name,
		Number:    pr.Number,
		Title:     pr.Title,
		State:     pr.State,
		Body:      pr.Body,
		Author:    pr.User.Login,
		CreatedAt: pr.CreatedAt,
		MergedAt:  pr.MergedAt,
		ClosedAt:  pr.ClosedAt,
		HeadRef:   pr.Head.Ref,
		BaseRef:   pr.Base.Ref,
	}
	if pr.MergedBy != nil {
		mapped.MergedBy = pr.MergedBy.Login
	}
	return mapped
}

// MapCommit converts an API commit to the domain model. The git author name
// is used when the commit has no linked GitHub account.
func MapCommit(c Commit) domain.Commit {
	author := c.Commit.Author.Name
	if c.Author != nil && c.Author.Login != "" {
		author = c.Author.Login
	}
	committer := c.Commit.Committer.Name
	if c.Committer != nil && c.Committer.Login != "" {
		committer = c.Committer.Login
	}

	return domain.Commit{
		SHA:         c.SHA,
		Message:     c.Commit.Message,
		Author:      author,
		Committer:   committer,
		AuthoredAt:  c.Commit.Author.Date,
		CommittedAt: c.Commit.Committer.Date,
		Files:       MapFiles(c.Files),
	}
}

// MapFiles converts API changed files to the domain model.
func MapFiles(files []File) []domain.ChangedFile {
	if len(files) == 0 {
		return nil
	}
	mapped := make([]domain.ChangedFile, 0, len(files))
	for _, f := range files {
		mapped = append(mapped, domain.ChangedFile{
			Filename:         f.Filename,
			PreviousFilename: f.PreviousFilename,
			Status:           f.Status,
			Additions:        f.Additions,
			Deletions:        f.Deletions,
			Patch:            f.Patch,
		})
	}
	return mapped
}
