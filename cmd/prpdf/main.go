package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bkyoung/prpdf/internal/adapter/cli"
	gitadapter "github.com/bkyoung/prpdf/internal/adapter/git"
	githubadapter "github.com/bkyoung/prpdf/internal/adapter/github"
	"github.com/bkyoung/prpdf/internal/adapter/httpapi"
	pdfrender "github.com/bkyoung/prpdf/internal/adapter/render/pdf"
	"github.com/bkyoung/prpdf/internal/adapter/store/sqlite"
	"github.com/bkyoung/prpdf/internal/config"
	"github.com/bkyoung/prpdf/internal/redaction"
	"github.com/bkyoung/prpdf/internal/usecase/report"
	"github.com/bkyoung/prpdf/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "prpdf",
		EnvPrefix:   "PRPDF",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	app := &app{
		cfg:    cfg,
		logger: buildLogger(cfg.Observability.Logging),
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Runner:         app,
		DefaultRepoDir: cfg.Git.RepositoryDir,
		Version:        version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// app wires adapters into the report use case per command invocation.
type app struct {
	cfg    config.Config
	logger httpapi.Logger
}

var _ cli.ReportRunner = (*app)(nil)

// GeneratePR fetches a pull request from the GitHub API and renders it.
func (a *app) GeneratePR(ctx context.Context, req cli.PRRequest) (report.Result, error) {
	ref, err := report.ParsePRURL(req.URL)
	if err != nil {
		return report.Result{}, err
	}

	client := githubadapter.NewClient(os.Getenv("GITHUB_TOKEN"))
	if timeout := parseDuration(a.cfg.HTTP.Timeout, 30*time.Second); timeout > 0 {
		client.SetTimeout(timeout)
	}
	if a.logger != nil {
		client.SetLogger(a.logger)
	}

	if a.cfg.Cache.Enabled && !req.NoCache {
		cache, err := openCache(a.cfg.Cache)
		if err != nil {
			log.Printf("warning: cache disabled: %v", err)
		} else {
			defer cache.Close()
			client.SetCache(cache)
		}
	}

	source := githubadapter.NewPRSource(client, ref.Owner, ref.Repo, ref.Number)
	return a.generate(ctx, source, req.Redaction, report.RenderOptions{
		OutputPath:    req.OutputPath,
		DiffsByCommit: req.DiffsByCommit,
		DiffsOverall:  req.DiffsOverall,
	})
}

// GenerateLocal builds the report from a commit range of a local repository.
func (a *app) GenerateLocal(ctx context.Context, req cli.LocalRequest) (report.Result, error) {
	source := gitadapter.NewSource(req.RepoDir, req.BaseRef, req.TargetRef)
	return a.generate(ctx, source, req.Redaction, report.RenderOptions{
		OutputPath:    req.OutputPath,
		DiffsByCommit: req.DiffsByCommit,
		DiffsOverall:  req.DiffsOverall,
	})
}

func (a *app) generate(ctx context.Context, source report.Source, mode cli.RedactionMode, opts report.RenderOptions) (report.Result, error) {
	redactor, err := a.buildRedactor(mode)
	if err != nil {
		return report.Result{}, err
	}

	generator := report.NewGenerator(report.GeneratorDeps{
		Source:   source,
		Renderer: pdfrender.NewRenderer(a.cfg.Output.Directory),
		Redactor: redactor,
	})
	return generator.Generate(ctx, opts)
}

// buildRedactor resolves the redaction profile for the requested mode.
// Interactive selection needs a terminal; piped stdin falls back to the
// default profile.
func (a *app) buildRedactor(mode cli.RedactionMode) (report.Redactor, error) {
	switch mode {
	case cli.RedactionNone:
		return nil, nil
	case cli.RedactionDefault:
		return redaction.NewEngine(redaction.DefaultProfile()), nil
	}

	if !report.IsInteractive() {
		log.Println("stdin is not a terminal; using the default redaction profile")
		return redaction.NewEngine(redaction.DefaultProfile()), nil
	}

	selector := report.NewProfileSelector(a.cfg.Profiles.Directory, os.Stdin, os.Stdout)
	profile, err := selector.Select()
	if err != nil {
		return nil, fmt.Errorf("select redaction profile: %w", err)
	}
	return redaction.NewEngine(profile), nil
}

func openCache(cfg config.CacheConfig) (*sqlite.Cache, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	return sqlite.NewCache(cfg.Path, parseDuration(cfg.TTL, sqlite.DefaultTTL))
}

func buildLogger(cfg config.LoggingConfig) httpapi.Logger {
	if !cfg.Enabled {
		return nil
	}

	level := httpapi.LogLevelInfo
	switch cfg.Level {
	case "debug":
		level = httpapi.LogLevelDebug
	case "error":
		level = httpapi.LogLevelError
	}

	format := httpapi.LogFormatHuman
	if cfg.Format == "json" {
		format = httpapi.LogFormatJSON
	}

	return httpapi.NewDefaultLogger(level, format, cfg.RedactTokens)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("warning: invalid duration %q, using %s", value, fallback)
		return fallback
	}
	return parsed
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prpdf"))
	}
	return paths
}

// Compile-time interface compliance checks
var _ report.Source = (*githubadapter.PRSource)(nil)
var _ report.Source = (*gitadapter.Source)(nil)
var _ report.Renderer = (*pdfrender.Renderer)(nil)
var _ report.Redactor = (*redaction.Engine)(nil)
var _ githubadapter.ResponseCache = (*sqlite.Cache)(nil)
