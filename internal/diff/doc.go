// Package diff parses the unified diff format returned by source-control
// hosting APIs into structured hunks and lines.
//
// The primary use case is turning the raw per-file patch text from a pull
// request into an ordered sequence of hunks whose lines carry correct
// old-file and new-file line numbers, so a rendering layer can draw a
// unified diff view with line-number gutters.
//
// Parsing is best-effort by design: patch text originates from a trusted
// upstream API, and a partially rendered diff is preferable to aborting
// report generation over a single malformed hunk. Parse never fails.
package diff
