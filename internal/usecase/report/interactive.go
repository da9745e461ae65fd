package report

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bkyoung/prpdf/internal/redaction"
)

// ProfileSelector runs the interactive redaction profile selection flow on
// a terminal: pick an existing profile from the profiles directory, or
// answer a short questionnaire to create a new one.
type ProfileSelector struct {
	dir    string
	input  *bufio.Scanner
	output io.Writer
}

// NewProfileSelector constructs a selector reading prompts from input and
// writing them to output. The profiles directory may not exist yet.
func NewProfileSelector(dir string, input io.Reader, output io.Writer) *ProfileSelector {
	return &ProfileSelector{
		dir:    dir,
		input:  bufio.NewScanner(input),
		output: output,
	}
}

// Select returns the chosen (or newly created) profile.
func (s *ProfileSelector) Select() (redaction.Profile, error) {
	profiles, err := redaction.ListProfiles(s.dir)
	if err != nil {
		return redaction.Profile{}, err
	}

	if len(profiles) == 0 {
		fmt.Fprintln(s.output, "No saved redaction profiles; creating one.")
		return s.create()
	}

	fmt.Fprintln(s.output, "Select a redaction profile:")
	fmt.Fprintln(s.output, "  [0] Create new profile")
	for i, info := range profiles {
		fmt.Fprintf(s.output, "  [%d] %s - %s\n", i+1, info.Filename, info.Description)
	}

	for {
		fmt.Fprint(s.output, "Choice: ")
		line, err := s.readLine()
		if err != nil {
			return redaction.Profile{}, err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || choice < 0 || choice > len(profiles) {
			fmt.Fprintf(s.output, "Enter a number between 0 and %d.\n", len(profiles))
			continue
		}

		if choice == 0 {
			return s.create()
		}

		info := profiles[choice-1]
		profile, err := redaction.LoadProfile(filepath.Join(s.dir, info.Filename))
		if err != nil {
			return redaction.Profile{}, err
		}
		fmt.Fprintf(s.output, "Using profile: %s\n", info.Filename)
		return profile, nil
	}
}

// create walks through the questionnaire and persists the new profile.
func (s *ProfileSelector) create() (redaction.Profile, error) {
	fmt.Fprint(s.output, "Profile filename (e.g. evidence.json): ")
	filename, err := s.readLine()
	if err != nil {
		return redaction.Profile{}, err
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		filename = "custom.json"
	}

	fmt.Fprint(s.output, "Description: ")
	description, err := s.readLine()
	if err != nil {
		return redaction.Profile{}, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = "Custom redaction profile"
	}

	fmt.Fprintln(s.output, "For each item, answer y to redact it (default: keep).")

	var flags redaction.Flags
	questions := []struct {
		label  string
		target *bool
	}{
		{"Repository name (owner/repo)", &flags.RepoInfo},
		{"Pull request number", &flags.PRNumber},
		{"PR author username", &flags.MetadataAuthor},
		{"PR created-at timestamp", &flags.MetadataCreatedAt},
		{"Branch information (head/base)", &flags.MetadataBranches},
		{"Merged-by / closed-by username", &flags.MetadataClosedMergedBy},
		{"Merged-at / closed-at timestamp", &flags.MetadataClosedMergedAt},
		{"Hyperlinks in PR description", &flags.DescriptionLinks},
		{"Commit author usernames", &flags.CommitAuthor},
		{"Commit committer usernames", &flags.CommitCommitter},
		{"Commit timestamps", &flags.CommitDate},
		{"Commit SHA hashes", &flags.CommitSHA},
	}

	for i, q := range questions {
		fmt.Fprintf(s.output, "[%d/%d] Redact %s? (y/N): ", i+1, len(questions), q.label)
		answer, err := s.readLine()
		if err != nil {
			return redaction.Profile{}, err
		}
		*q.target = strings.EqualFold(strings.TrimSpace(answer), "y")
	}

	profile := redaction.Profile{Description: description, Redactions: flags}

	path, err := redaction.SaveProfile(s.dir, filename, profile)
	if err != nil {
		return redaction.Profile{}, err
	}
	fmt.Fprintf(s.output, "Profile saved: %s\n", path)

	return profile, nil
}

func (s *ProfileSelector) readLine() (string, error) {
	if !s.input.Scan() {
		if err := s.input.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", fmt.Errorf("input closed")
	}
	return s.input.Text(), nil
}
