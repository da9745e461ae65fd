// Package cli wires the cobra command surface: a generate command working
// from a GitHub pull request URL and a local command working from a commit
// range in a repository on disk.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/prpdf/internal/usecase/report"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// RedactionMode selects how the redaction profile is chosen for a run.
type RedactionMode int

const (
	// RedactionNone disables redaction entirely.
	RedactionNone RedactionMode = iota
	// RedactionInteractive prompts for a profile on a terminal and falls
	// back to the default profile otherwise.
	RedactionInteractive
	// RedactionDefault applies the built-in default profile without prompting.
	RedactionDefault
)

// PRRequest describes a generate invocation.
type PRRequest struct {
	URL           string
	Redaction     RedactionMode
	DiffsByCommit bool
	DiffsOverall  bool
	NoCache       bool
	OutputPath    string
}

// LocalRequest describes a local invocation.
type LocalRequest struct {
	TargetRef     string
	BaseRef       string
	RepoDir       string
	Redaction     RedactionMode
	DiffsByCommit bool
	DiffsOverall  bool
	OutputPath    string
}

// ReportRunner defines the use case dependencies required to run the commands.
type ReportRunner interface {
	GeneratePR(ctx context.Context, req PRRequest) (report.Result, error)
	GenerateLocal(ctx context.Context, req LocalRequest) (report.Result, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Runner         ReportRunner
	Args           Arguments
	DefaultRepoDir string
	DefaultBaseRef string
	Version        string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "prpdf",
		Short: "Turn GitHub pull requests into PDF evidence reports",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(generateCommand(deps.Runner))
	root.AddCommand(localCommand(deps.Runner, deps.DefaultRepoDir, deps.DefaultBaseRef))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

// redactionFlags holds the shared --anonymise flag pair.
type redactionFlags struct {
	anonymise        bool
	anonymiseDefault bool
}

func (f *redactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.anonymise, "anonymise", false, "Redact identifying fields; choose or create a profile interactively")
	cmd.Flags().BoolVar(&f.anonymiseDefault, "anonymise-default", false, "Redact identifying fields using the built-in default profile")
}

func (f *redactionFlags) mode() (RedactionMode, error) {
	if f.anonymise && f.anonymiseDefault {
		return RedactionNone, fmt.Errorf("--anonymise and --anonymise-default are mutually exclusive")
	}
	switch {
	case f.anonymise:
		return RedactionInteractive, nil
	case f.anonymiseDefault:
		return RedactionDefault, nil
	default:
		return RedactionNone, nil
	}
}

func generateCommand(runner ReportRunner) *cobra.Command {
	var redaction redactionFlags
	var diffsByCommit bool
	var diffsOverall bool
	var noCache bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "generate <pr-url>",
		Short: "Generate a PDF report for a GitHub pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := redaction.mode()
			if err != nil {
				return err
			}

			result, err := runner.GeneratePR(cmd.Context(), PRRequest{
				URL:           args[0],
				Redaction:     mode,
				DiffsByCommit: diffsByCommit,
				DiffsOverall:  diffsOverall,
				NoCache:       noCache,
				OutputPath:    outputPath,
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	redaction.register(cmd)
	cmd.Flags().BoolVar(&diffsByCommit, "diffs-by-commit", false, "Include a unified diff for each commit")
	cmd.Flags().BoolVar(&diffsOverall, "diffs-overall", false, "Include the cumulative unified diff in the summary")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the API response cache")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default PR-<n>-evidence.pdf in the output directory)")

	return cmd
}

func localCommand(runner ReportRunner, defaultRepoDir, defaultBaseRef string) *cobra.Command {
	if defaultRepoDir == "" {
		defaultRepoDir = "."
	}
	if defaultBaseRef == "" {
		defaultBaseRef = "main"
	}

	var redaction redactionFlags
	var baseRef string
	var repoDir string
	var diffsByCommit bool
	var diffsOverall bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "local <target-ref>",
		Short: "Generate a PDF report from a local repository commit range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := redaction.mode()
			if err != nil {
				return err
			}

			result, err := runner.GenerateLocal(cmd.Context(), LocalRequest{
				TargetRef:     args[0],
				BaseRef:       baseRef,
				RepoDir:       repoDir,
				Redaction:     mode,
				DiffsByCommit: diffsByCommit,
				DiffsOverall:  diffsOverall,
				OutputPath:    outputPath,
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	redaction.register(cmd)
	cmd.Flags().StringVar(&baseRef, "base", defaultBaseRef, "Base reference the target is compared against")
	cmd.Flags().StringVar(&repoDir, "repo-dir", defaultRepoDir, "Repository directory")
	cmd.Flags().BoolVar(&diffsByCommit, "diffs-by-commit", false, "Include a unified diff for each commit")
	cmd.Flags().BoolVar(&diffsOverall, "diffs-overall", false, "Include the cumulative unified diff in the summary")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default PR-<n>-evidence.pdf in the output directory)")

	return cmd
}

func printResult(out io.Writer, result report.Result) {
	_, _ = fmt.Fprintf(out, "Report written: %s (%d commits, %d files)\n",
		result.OutputPath, result.Commits, result.Files)
}
