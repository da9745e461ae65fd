package redaction

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bkyoung/prpdf/internal/domain"
)

// Placeholder replaces redacted string fields in rendered output.
const Placeholder = "[REDACTED]"

// markdownLink matches [text](url) inline links.
var markdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// bareURL matches unbracketed http(s) URLs.
var bareURL = regexp.MustCompile(`https?://\S+`)

// Engine applies a redaction profile to report data and scrubs secrets
// from patch text.
type Engine struct {
	flags    Flags
	patterns []*regexp.Regexp
}

// NewEngine creates an engine for the given profile.
func NewEngine(profile Profile) *Engine {
	return &Engine{
		flags:    profile.Redactions,
		patterns: secretPatterns(),
	}
}

// Apply returns a redacted copy of the report. The input is not mutated.
//
// Redacted names become the placeholder; redacted timestamps are cleared so
// the renderer drops them; redacted SHAs are replaced wholesale. Secret
// patterns are always scrubbed from patch text regardless of the profile.
func (e *Engine) Apply(report domain.Report) domain.Report {
	out := report

	pr := report.PR
	if e.flags.RepoInfo {
		pr.Owner = Placeholder
		pr.Repo = Placeholder
	}
	if e.flags.PRNumber {
		pr.Number = 0
	}
	if e.flags.MetadataAuthor {
		pr.Author = Placeholder
	}
	if e.flags.MetadataCreatedAt {
		pr.CreatedAt = zeroTime(pr.CreatedAt)
	}
	if e.flags.MetadataBranches {
		pr.HeadRef = Placeholder
		pr.BaseRef = Placeholder
	}
	if e.flags.MetadataClosedMergedBy {
		if pr.MergedBy != "" {
			pr.MergedBy = Placeholder
		}
		if pr.ClosedBy != "" {
			pr.ClosedBy = Placeholder
		}
	}
	if e.flags.MetadataClosedMergedAt {
		pr.MergedAt = nil
		pr.ClosedAt = nil
	}
	if e.flags.DescriptionLinks {
		pr.Body = StripLinks(pr.Body)
	}
	out.PR = pr

	out.Commits = make([]domain.Commit, len(report.Commits))
	for i, commit := range report.Commits {
		out.Commits[i] = e.applyCommit(commit)
	}

	out.Files = e.applyFiles(report.Files)
	return out
}

func (e *Engine) applyCommit(commit domain.Commit) domain.Commit {
	c := commit
	if e.flags.CommitAuthor {
		c.Author = Placeholder
	}
	if e.flags.CommitCommitter {
		c.Committer = Placeholder
	}
	if e.flags.CommitDate {
		c.AuthoredAt = zeroTime(c.AuthoredAt)
		c.CommittedAt = zeroTime(c.CommittedAt)
	}
	if e.flags.CommitSHA {
		c.SHA = Placeholder
	}
	c.Files = e.applyFiles(commit.Files)
	return c
}

func (e *Engine) applyFiles(files []domain.ChangedFile) []domain.ChangedFile {
	if files == nil {
		return nil
	}
	out := make([]domain.ChangedFile, len(files))
	for i, f := range files {
		f.Patch = e.ScrubSecrets(f.Patch)
		out[i] = f
	}
	return out
}

// ScrubSecrets replaces secret-looking strings with stable placeholders so
// the same secret always maps to the same marker within a report.
func (e *Engine) ScrubSecrets(input string) string {
	if input == "" {
		return input
	}

	result := input
	seen := make(map[string]string) // secret -> placeholder

	for _, pattern := range e.patterns {
		for _, match := range pattern.FindAllString(result, -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = secretPlaceholder(match)
		}
	}

	for secret, placeholder := range seen {
		result = strings.ReplaceAll(result, secret, placeholder)
	}
	return result
}

// StripLinks reduces markdown inline links to their text and removes bare
// URLs, keeping the surrounding prose readable.
func StripLinks(body string) string {
	out := markdownLink.ReplaceAllString(body, "$1")
	return bareURL.ReplaceAllString(out, Placeholder)
}

// secretPlaceholder creates a stable, unique placeholder for a secret.
func secretPlaceholder(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return fmt.Sprintf("<REDACTED:%s>", hex.EncodeToString(hash[:])[:8])
}

// secretPatterns returns regex patterns for common credential formats.
func secretPatterns() []*regexp.Regexp {
	patterns := []string{
		// OpenAI / Anthropic style API keys
		`sk-[a-zA-Z0-9\-]{20,}`,
		// AWS Access Key ID
		`AKIA[0-9A-Z]{16}`,
		// GitHub tokens
		`gh[posr]_[a-zA-Z0-9]{20,}`,
		// Google API keys
		`AIza[0-9A-Za-z\-_]{35}`,
		// JWT tokens
		`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`,
		// Private keys (PEM format)
		`-----BEGIN\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----[\s\S]*?-----END\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----`,
		// Slack tokens
		`xox[baprs]-[a-zA-Z0-9\-]{10,}`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}

// zeroTime clears a timestamp; the renderer omits zero times.
func zeroTime(time.Time) time.Time {
	return time.Time{}
}
