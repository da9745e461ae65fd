package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/prpdf/internal/domain"
	"github.com/bkyoung/prpdf/internal/usecase/report"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{domain.FileStatusAdded, "New"},
		{domain.FileStatusModified, "Amended"},
		{domain.FileStatusRemoved, "Removed"},
		{domain.FileStatusRenamed, "Renamed"},
		{"copied", "Copied"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusLabel(tt.status))
		})
	}
}

func sampleReport() domain.Report {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	merged := created.Add(48 * time.Hour)

	return domain.Report{
		PR: domain.PullRequest{
			Owner:     "octo",
			Repo:      "widgets",
			Number:    42,
			Title:     "Fix spline reticulation",
			State:     "closed",
			Body:      "## Why\n\nThe splines were not reticulated.\n\n- faster\n- safer\n",
			Author:    "alice",
			CreatedAt: created,
			MergedAt:  &merged,
			MergedBy:  "bob",
			HeadRef:   "fix/splines",
			BaseRef:   "main",
		},
		Commits: []domain.Commit{
			{
				SHA:        "0123456789abcdef0123456789abcdef01234567",
				Message:    "Reticulate splines\n\nLonger explanation.",
				Author:     "alice",
				Committer:  "alice",
				AuthoredAt: created,
				Files: []domain.ChangedFile{
					{
						Filename:  "spline.go",
						Status:    domain.FileStatusModified,
						Additions: 1,
						Deletions: 0,
						Patch:     "@@ -1,3 +1,4 @@\n a\n+b\n c\n d",
					},
				},
			},
		},
		Files: []domain.ChangedFile{
			{
				Filename:  "spline.go",
				Status:    domain.FileStatusModified,
				Additions: 1,
				Patch:     "@@ -1,3 +1,4 @@\n a\n+b\n c\n d",
			},
			{
				Filename: "logo.png",
				Status:   domain.FileStatusAdded,
			},
		},
		GeneratedAt: merged.Add(time.Hour),
	}
}

func TestRenderWritesFile(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	path, err := r.Render(context.Background(), sampleReport(), report.RenderOptions{
		DiffsByCommit: true,
		DiffsOverall:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "PR-42-evidence.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderCustomOutputPath(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	want := filepath.Join(dir, "nested", "report.pdf")
	path, err := r.Render(context.Background(), sampleReport(), report.RenderOptions{OutputPath: want})
	require.NoError(t, err)
	assert.Equal(t, want, path)

	_, err = os.Stat(want)
	assert.NoError(t, err)
}

func TestRenderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(t.TempDir())
	_, err := r.Render(ctx, sampleReport(), report.RenderOptions{})
	assert.Error(t, err)
}
