package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind represents the type of a line in a diff hunk.
type LineKind int

const (
	// LineContext represents an unchanged context line (starts with ' ').
	LineContext LineKind = iota
	// LineAddition represents an added line (starts with '+').
	LineAddition
	// LineDeletion represents a deleted line (starts with '-').
	LineDeletion
)

// Line represents a single line in a diff hunk.
type Line struct {
	Kind    LineKind // The type of change
	Content string   // The line content (without the prefix byte)
	OldLine *int     // Line number in old file (nil for additions)
	NewLine *int     // Line number in new file (nil for deletions)
}

// Hunk represents a single @@ hunk in a unified diff.
type Hunk struct {
	OldStart int    // Starting line in old file, as declared by the header
	OldCount int    // Declared old-file line count (1 when omitted)
	NewStart int    // Starting line in new file, as declared by the header
	NewCount int    // Declared new-file line count (1 when omitted)
	Lines    []Line // The lines in this hunk, in encounter order
}

// ParsedDiff represents a parsed unified diff for a single file.
type ParsedDiff struct {
	Filename string
	Hunks    []Hunk
}

// hunkHeaderPattern matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
// Trailing text after the closing @@ (function-context hints) is ignored.
var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse parses the unified diff text for a single file into a ParsedDiff.
// The filename is carried through untouched as a label.
//
// Parse is total: an empty patch yields zero hunks, malformed hunk headers
// are consumed without starting a hunk, and lines with unrecognized prefixes
// are kept as context rather than rejected.
func Parse(patch, filename string) ParsedDiff {
	result := ParsedDiff{Filename: filename}
	if patch == "" {
		return result
	}

	lines := strings.Split(patch, "\n")
	// A trailing newline in the patch produces one empty final segment that
	// is a split artifact, not a blank context line. Drop it before scanning.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var currentHunk *Hunk
	oldLine := 0
	newLine := 0

	for _, line := range lines {
		if strings.HasPrefix(line, "@@") {
			if currentHunk != nil {
				result.Hunks = append(result.Hunks, *currentHunk)
				currentHunk = nil
			}

			hunk, ok := parseHunkHeader(line)
			if !ok {
				// Malformed header: consume the line without opening a hunk,
				// so following lines are not absorbed into a phantom hunk.
				continue
			}

			currentHunk = &hunk
			oldLine = hunk.OldStart
			newLine = hunk.NewStart
			continue
		}

		if currentHunk == nil {
			continue
		}

		// "\ No newline at end of file" markers emit nothing and do not
		// advance either counter.
		if strings.HasPrefix(line, "\\") {
			continue
		}

		var diffLine Line
		switch {
		case line == "":
			// Some transports strip the single space marker from blank
			// context lines; keep them as empty context.
			diffLine = Line{Kind: LineContext, OldLine: intPtr(oldLine), NewLine: intPtr(newLine)}
			oldLine++
			newLine++
		case line[0] == '+':
			diffLine = Line{Kind: LineAddition, Content: line[1:], NewLine: intPtr(newLine)}
			newLine++
		case line[0] == '-':
			diffLine = Line{Kind: LineDeletion, Content: line[1:], OldLine: intPtr(oldLine)}
			oldLine++
		case line[0] == ' ':
			diffLine = Line{Kind: LineContext, Content: line[1:], OldLine: intPtr(oldLine), NewLine: intPtr(newLine)}
			oldLine++
			newLine++
		default:
			// Unknown prefix: keep the full line as context content.
			diffLine = Line{Kind: LineContext, Content: line, OldLine: intPtr(oldLine), NewLine: intPtr(newLine)}
			oldLine++
			newLine++
		}

		currentHunk.Lines = append(currentHunk.Lines, diffLine)
	}

	if currentHunk != nil {
		result.Hunks = append(result.Hunks, *currentHunk)
	}

	return result
}

// parseHunkHeader parses a header like "@@ -10,7 +10,8 @@ optional context".
// Counts default to 1 when the comma suffix is absent, per unified-diff
// shorthand for single-line ranges.
func parseHunkHeader(line string) (Hunk, bool) {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return Hunk{}, false
	}

	return Hunk{
		OldStart: atoiDefault(m[1], 0),
		OldCount: atoiDefault(m[2], 1),
		NewStart: atoiDefault(m[3], 0),
		NewCount: atoiDefault(m[4], 1),
	}, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func intPtr(n int) *int {
	v := n
	return &v
}
