// Package report assembles pull request data into a Report and drives the
// document renderer, applying the configured redaction policy on the way.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/bkyoung/prpdf/internal/domain"
)

// Source supplies the raw report inputs for one pull request (or one local
// commit range).
type Source interface {
	PullRequest(ctx context.Context) (domain.PullRequest, error)
	Commits(ctx context.Context) ([]domain.Commit, error)
	Files(ctx context.Context) ([]domain.ChangedFile, error)
}

// Redactor transforms a report according to a redaction policy.
type Redactor interface {
	Apply(report domain.Report) domain.Report
}

// RenderOptions selects optional report sections and the output location.
type RenderOptions struct {
	OutputPath    string
	DiffsByCommit bool
	DiffsOverall  bool
}

// Renderer turns an assembled report into a document on disk.
type Renderer interface {
	Render(ctx context.Context, report domain.Report, opts RenderOptions) (string, error)
}

// GeneratorDeps captures the collaborators for report generation.
type GeneratorDeps struct {
	Source   Source
	Renderer Renderer
	Redactor Redactor // optional; nil means no redaction
	Now      func() time.Time
}

// Generator orchestrates fetch, assembly, redaction, and rendering.
type Generator struct {
	deps GeneratorDeps
}

// NewGenerator constructs a Generator from its dependencies.
func NewGenerator(deps GeneratorDeps) *Generator {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Generator{deps: deps}
}

// Result summarizes a completed generation run.
type Result struct {
	OutputPath string
	Commits    int
	Files      int
}

// Generate builds the report and renders it to a document.
func (g *Generator) Generate(ctx context.Context, opts RenderOptions) (Result, error) {
	pr, err := g.deps.Source.PullRequest(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load pull request: %w", err)
	}

	commits, err := g.deps.Source.Commits(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load commits: %w", err)
	}

	files, err := g.deps.Source.Files(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load changed files: %w", err)
	}

	rpt := domain.Report{
		PR:          pr,
		Commits:     commits,
		Files:       files,
		GeneratedAt: g.deps.Now().UTC(),
	}

	if g.deps.Redactor != nil {
		rpt = g.deps.Redactor.Apply(rpt)
	}

	path, err := g.deps.Renderer.Render(ctx, rpt, opts)
	if err != nil {
		return Result{}, fmt.Errorf("render report: %w", err)
	}

	return Result{
		OutputPath: path,
		Commits:    len(rpt.Commits),
		Files:      len(rpt.Files),
	}, nil
}
