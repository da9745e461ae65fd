// Package git provides a local report source backed by go-git: the same
// inputs the GitHub adapter fetches over HTTP, assembled from the commits
// of a local repository range instead. Useful offline and for changes that
// never went through a hosted pull request.
package git

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	formatdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/bkyoung/prpdf/internal/diff"
	"github.com/bkyoung/prpdf/internal/domain"
)

// Source reads report inputs from a local repository commit range.
type Source struct {
	repoDir   string
	baseRef   string
	targetRef string
}

// NewSource constructs a local source for baseRef..targetRef in repoDir.
func NewSource(repoDir, baseRef, targetRef string) *Source {
	return &Source{repoDir: repoDir, baseRef: baseRef, targetRef: targetRef}
}

// PullRequest synthesizes pull-request-shaped metadata from the range: the
// target ref plays the head branch, the range's tip commit supplies author
// and timestamps.
func (s *Source) PullRequest(ctx context.Context) (domain.PullRequest, error) {
	target, _, err := s.open()
	if err != nil {
		return domain.PullRequest{}, err
	}

	title := target.Message
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}

	return domain.PullRequest{
		Owner:     "local",
		Repo:      repositoryName(s.repoDir),
		Title:     fmt.Sprintf("%s (%s..%s)", title, s.baseRef, s.targetRef),
		State:     "open",
		Author:    target.Author.Name,
		CreatedAt: target.Author.When.UTC(),
		HeadRef:   s.targetRef,
		BaseRef:   s.baseRef,
	}, nil
}

// Commits lists the commits reachable from the target but not the base,
// oldest first, each with its changed files relative to its first parent.
func (s *Source) Commits(ctx context.Context) ([]domain.Commit, error) {
	target, base, err := s.open()
	if err != nil {
		return nil, err
	}

	// First-parent walk from the tip back to the base.
	var rangeCommits []*object.Commit
	current := target
	for current != nil && current.Hash != base.Hash {
		rangeCommits = append(rangeCommits, current)
		parent, err := current.Parent(0)
		if err != nil {
			break // root commit
		}
		current = parent
	}

	// Reverse into chronological order.
	commits := make([]domain.Commit, 0, len(rangeCommits))
	for i := len(rangeCommits) - 1; i >= 0; i-- {
		c := rangeCommits[i]

		files, err := commitFiles(c)
		if err != nil {
			return nil, fmt.Errorf("files for %s: %w", c.Hash, err)
		}

		commits = append(commits, domain.Commit{
			SHA:         c.Hash.String(),
			Message:     c.Message,
			Author:      c.Author.Name,
			Committer:   c.Committer.Name,
			AuthoredAt:  c.Author.When.UTC(),
			CommittedAt: c.Committer.When.UTC(),
			Files:       files,
		})
	}
	return commits, nil
}

// Files returns the cumulative changed files between base and target.
func (s *Source) Files(ctx context.Context) ([]domain.ChangedFile, error) {
	target, base, err := s.open()
	if err != nil {
		return nil, err
	}

	patch, err := base.Patch(target)
	if err != nil {
		return nil, fmt.Errorf("compute patch: %w", err)
	}
	return mapFilePatches(patch.FilePatches())
}

func (s *Source) open() (target, base *object.Commit, err error) {
	repo, err := goGit.PlainOpenWithOptions(s.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, nil, fmt.Errorf("open repo: %w", err)
	}

	base, err = resolveCommit(repo, s.baseRef)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve base ref: %w", err)
	}

	target, err = resolveCommit(repo, s.targetRef)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve target ref: %w", err)
	}

	return target, base, nil
}

// commitFiles diffs a commit against its first parent. Root commits diff
// against the empty tree.
func commitFiles(c *object.Commit) ([]domain.ChangedFile, error) {
	parent, err := c.Parent(0)
	if err == nil {
		patch, err := parent.Patch(c)
		if err != nil {
			return nil, err
		}
		return mapFilePatches(patch.FilePatches())
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(nil, tree)
	if err != nil {
		return nil, err
	}
	patch, err := changes.Patch()
	if err != nil {
		return nil, err
	}
	return mapFilePatches(patch.FilePatches())
}

func mapFilePatches(filePatches []formatdiff.FilePatch) ([]domain.ChangedFile, error) {
	files := make([]domain.ChangedFile, 0, len(filePatches))
	for _, fp := range filePatches {
		path, oldPath, status := diffPathAndStatus(fp)

		patchText := ""
		if !fp.IsBinary() {
			encoded, err := encodeFilePatch(fp)
			if err != nil {
				return nil, fmt.Errorf("encode patch for %s: %w", path, err)
			}
			patchText = stripPatchHeader(encoded)
		}

		additions, deletions := countChanges(patchText, path)
		files = append(files, domain.ChangedFile{
			Filename:         path,
			PreviousFilename: oldPath,
			Status:           status,
			Additions:        additions,
			Deletions:        deletions,
			Patch:            patchText,
		})
	}
	return files, nil
}

// diffPathAndStatus returns the path, old path (for renames), and status
// for a file patch.
func diffPathAndStatus(fp formatdiff.FilePatch) (path, oldPath, status string) {
	from, to := fp.Files()

	switch {
	case from == nil && to != nil:
		return to.Path(), "", domain.FileStatusAdded
	case from != nil && to == nil:
		return from.Path(), "", domain.FileStatusRemoved
	case from != nil && to != nil:
		if from.Path() != to.Path() {
			return to.Path(), from.Path(), domain.FileStatusRenamed
		}
		return to.Path(), "", domain.FileStatusModified
	default:
		return "", "", domain.FileStatusModified
	}
}

// stripPatchHeader drops everything before the first hunk so the patch text
// matches the bare-hunk format the GitHub files API returns.
func stripPatchHeader(patch string) string {
	idx := strings.Index(patch, "@@ -")
	if idx < 0 {
		return ""
	}
	return patch[idx:]
}

// countChanges derives addition/deletion totals from the patch text.
func countChanges(patchText, filename string) (additions, deletions int) {
	parsed := diff.Parse(patchText, filename)
	for _, hunk := range parsed.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.LineAddition:
				additions++
			case diff.LineDeletion:
				deletions++
			}
		}
	}
	return additions, deletions
}

func resolveCommit(repo *goGit.Repository, ref string) (*object.Commit, error) {
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}

func encodeFilePatch(fp formatdiff.FilePatch) (string, error) {
	var buf bytes.Buffer
	encoder := formatdiff.NewUnifiedEncoder(&buf, formatdiff.DefaultContextLines)
	if err := encoder.Encode(singlePatch{fp: fp}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type singlePatch struct {
	fp formatdiff.FilePatch
}

func (s singlePatch) FilePatches() []formatdiff.FilePatch {
	return []formatdiff.FilePatch{s.fp}
}

func (s singlePatch) Message() string {
	return ""
}

func repositoryName(repoDir string) string {
	abs, err := filepath.Abs(repoDir)
	if err != nil {
		return "repository"
	}
	return filepath.Base(abs)
}
