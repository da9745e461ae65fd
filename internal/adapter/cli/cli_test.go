package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bkyoung/prpdf/internal/adapter/cli"
	"github.com/bkyoung/prpdf/internal/usecase/report"
)

type runnerStub struct {
	prReq    cli.PRRequest
	localReq cli.LocalRequest
	err      error
}

func (r *runnerStub) GeneratePR(ctx context.Context, req cli.PRRequest) (report.Result, error) {
	r.prReq = req
	return report.Result{OutputPath: "PR-7-evidence.pdf", Commits: 2, Files: 3}, r.err
}

func (r *runnerStub) GenerateLocal(ctx context.Context, req cli.LocalRequest) (report.Result, error) {
	r.localReq = req
	return report.Result{OutputPath: "PR-0-evidence.pdf"}, r.err
}

func TestGenerateCommandInvokesRunner(t *testing.T) {
	stub := &runnerStub{}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Runner:  stub,
		Args:    cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
		Version: "v1.2.3",
	})

	root.SetArgs([]string{"generate", "https://github.com/octo/widgets/pull/7", "--diffs-by-commit", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.prReq.URL != "https://github.com/octo/widgets/pull/7" {
		t.Fatalf("unexpected URL: %s", stub.prReq.URL)
	}
	if !stub.prReq.DiffsByCommit {
		t.Fatalf("expected diffs-by-commit to be set")
	}
	if stub.prReq.DiffsOverall {
		t.Fatalf("expected diffs-overall to be unset")
	}
	if !stub.prReq.NoCache {
		t.Fatalf("expected no-cache to be set")
	}
	if stub.prReq.Redaction != cli.RedactionNone {
		t.Fatalf("expected no redaction, got %v", stub.prReq.Redaction)
	}
	if !strings.Contains(buf.String(), "PR-7-evidence.pdf") {
		t.Fatalf("expected result output, got %q", buf.String())
	}
}

func TestGenerateCommandRedactionModes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cli.RedactionMode
	}{
		{"interactive", []string{"--anonymise"}, cli.RedactionInteractive},
		{"default profile", []string{"--anonymise-default"}, cli.RedactionDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &runnerStub{}
			root := cli.NewRootCommand(cli.Dependencies{
				Runner: stub,
				Args:   cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
			})

			root.SetArgs(append([]string{"generate", "https://github.com/octo/widgets/pull/7"}, tt.args...))
			if err := root.Execute(); err != nil {
				t.Fatalf("command execution failed: %v", err)
			}
			if stub.prReq.Redaction != tt.mode {
				t.Fatalf("expected mode %v, got %v", tt.mode, stub.prReq.Redaction)
			}
		})
	}
}

func TestGenerateCommandRejectsConflictingRedactionFlags(t *testing.T) {
	stub := &runnerStub{}
	root := cli.NewRootCommand(cli.Dependencies{
		Runner: stub,
		Args:   cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"generate", "https://github.com/octo/widgets/pull/7", "--anonymise", "--anonymise-default"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error for conflicting flags")
	}
}

func TestLocalCommandDefaults(t *testing.T) {
	stub := &runnerStub{}
	root := cli.NewRootCommand(cli.Dependencies{
		Runner:         stub,
		Args:           cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
		DefaultRepoDir: "/repos/demo",
	})

	root.SetArgs([]string{"local", "feature"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.localReq.TargetRef != "feature" {
		t.Fatalf("unexpected target ref: %s", stub.localReq.TargetRef)
	}
	if stub.localReq.BaseRef != "main" {
		t.Fatalf("expected default base main, got %s", stub.localReq.BaseRef)
	}
	if stub.localReq.RepoDir != "/repos/demo" {
		t.Fatalf("expected default repo dir, got %s", stub.localReq.RepoDir)
	}
}

func TestLocalCommandFlagOverrides(t *testing.T) {
	stub := &runnerStub{}
	root := cli.NewRootCommand(cli.Dependencies{
		Runner: stub,
		Args:   cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"local", "feature", "--base", "develop", "--repo-dir", "/tmp/repo", "--output", "out.pdf"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.localReq.BaseRef != "develop" {
		t.Fatalf("unexpected base ref: %s", stub.localReq.BaseRef)
	}
	if stub.localReq.RepoDir != "/tmp/repo" {
		t.Fatalf("unexpected repo dir: %s", stub.localReq.RepoDir)
	}
	if stub.localReq.OutputPath != "out.pdf" {
		t.Fatalf("unexpected output path: %s", stub.localReq.OutputPath)
	}
}

func TestCommandErrorPropagates(t *testing.T) {
	stub := &runnerStub{err: errors.New("boom")}
	root := cli.NewRootCommand(cli.Dependencies{
		Runner: stub,
		Args:   cli.Arguments{OutWriter: io.Discard, ErrWriter: io.Discard},
	})

	root.SetArgs([]string{"generate", "https://github.com/octo/widgets/pull/7"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected runner error to propagate")
	}
}

func TestVersionFlagEmitsVersion(t *testing.T) {
	stub := &runnerStub{}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(cli.Dependencies{
		Runner:  stub,
		Args:    cli.Arguments{OutWriter: buf, ErrWriter: io.Discard},
		Version: "v9.9.9",
	})

	root.SetArgs([]string{"--version"})
	err := root.Execute()
	if !errors.Is(err, cli.ErrVersionRequested) {
		t.Fatalf("expected version sentinel, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != "v9.9.9" {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}
