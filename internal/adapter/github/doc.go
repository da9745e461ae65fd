// Package github is a read-only client for the GitHub REST API v3,
// fetching the pull request detail, commit list, changed files, and
// per-commit file patches that make up a report.
//
// GET responses can be served from a pluggable ResponseCache so repeated
// report runs against the same pull request do not re-fetch unchanged data.
package github
