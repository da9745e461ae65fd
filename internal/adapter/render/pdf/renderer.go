// Package pdf renders an assembled report into a PDF document using fpdf
// primitives: title and metadata, the pull request description, the commit
// log, a change summary, and optional unified diff listings.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/prpdf/internal/domain"
	"github.com/bkyoung/prpdf/internal/usecase/report"
)

const (
	pageMargin = 54.0 // 0.75in in points
	bodySize   = 10.0
	lineHeight = 14.0
	codeSize   = 8.0
	codeHeight = 10.0
)

const timeLayout = "2006-01-02 15:04 MST"

// statusLabels maps file change statuses to the labels used in headings.
var statusLabels = map[string]string{
	domain.FileStatusAdded:    "New",
	domain.FileStatusModified: "Amended",
	domain.FileStatusRemoved:  "Removed",
	domain.FileStatusRenamed:  "Renamed",
}

var titleCaser = cases.Title(language.English)

// StatusLabel returns the display label for a file change status. Unknown
// statuses are title-cased as-is.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return titleCaser.String(status)
}

// Renderer writes reports as PDF files under outputDir.
type Renderer struct {
	outputDir string
}

// NewRenderer constructs a Renderer. The output directory is created on
// first render if it does not exist.
func NewRenderer(outputDir string) *Renderer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Renderer{outputDir: outputDir}
}

var _ report.Renderer = (*Renderer)(nil)

// Render writes the report to disk and returns the output path.
func (r *Renderer) Render(ctx context.Context, rpt domain.Report, opts report.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	writeTitle(doc, rpt.PR)
	writeMetadata(doc, rpt)
	writeDescription(doc, rpt.PR.Body)
	writeCommits(doc, rpt.Commits, opts.DiffsByCommit)
	writeSummary(doc, rpt, opts.DiffsOverall)

	path := opts.OutputPath
	if path == "" {
		path = filepath.Join(r.outputDir, fmt.Sprintf("PR-%d-evidence.pdf", rpt.PR.Number))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

func writeTitle(doc *fpdf.Fpdf, pr domain.PullRequest) {
	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(0, 22, fmt.Sprintf("Pull Request #%d: %s", pr.Number, pr.Title), "", "L", false)

	if pr.Owner != "" || pr.Repo != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(90, 90, 90)
		doc.MultiCell(0, lineHeight, fmt.Sprintf("%s/%s", pr.Owner, pr.Repo), "", "L", false)
		doc.SetTextColor(0, 0, 0)
	}
	doc.Ln(6)
}

func writeMetadata(doc *fpdf.Fpdf, rpt domain.Report) {
	pr := rpt.PR

	sectionHeading(doc, "Metadata")

	metadataRow(doc, "Author", pr.Author)
	if !pr.CreatedAt.IsZero() {
		metadataRow(doc, "Created", pr.CreatedAt.Format(timeLayout))
	}
	metadataRow(doc, "State", stateLabel(pr))
	if pr.HeadRef != "" || pr.BaseRef != "" {
		metadataRow(doc, "Branches", fmt.Sprintf("%s -> %s", pr.HeadRef, pr.BaseRef))
	}

	switch {
	case pr.Merged():
		metadataRow(doc, "Merged by", pr.MergedBy)
		if !pr.MergedAt.IsZero() {
			metadataRow(doc, "Merged at", pr.MergedAt.Format(timeLayout))
		}
	case pr.ClosedAt != nil:
		metadataRow(doc, "Closed by", pr.ClosedBy)
		if !pr.ClosedAt.IsZero() {
			metadataRow(doc, "Closed at", pr.ClosedAt.Format(timeLayout))
		}
	}

	if !rpt.GeneratedAt.IsZero() {
		metadataRow(doc, "Generated", rpt.GeneratedAt.Format(timeLayout))
	}
	doc.Ln(6)
}

// stateLabel reports Merged for merged pull requests regardless of the
// recorded state, which GitHub leaves as closed.
func stateLabel(pr domain.PullRequest) string {
	if pr.Merged() {
		return "Merged"
	}
	return titleCaser.String(pr.State)
}

func metadataRow(doc *fpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	doc.SetFont("Helvetica", "B", bodySize)
	doc.CellFormat(90, lineHeight, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", bodySize)
	doc.MultiCell(0, lineHeight, value, "", "L", false)
}

func writeDescription(doc *fpdf.Fpdf, body string) {
	if body == "" {
		return
	}

	sectionHeading(doc, "Description")

	for _, b := range parseMarkdown([]byte(body)) {
		switch b.kind {
		case blockHeading:
			size := 14.0 - float64(b.level)
			if size < bodySize {
				size = bodySize
			}
			doc.SetFont("Helvetica", "B", size)
			doc.MultiCell(0, lineHeight+2, b.text, "", "L", false)
		case blockCode:
			doc.SetFont("Courier", "", codeSize)
			doc.SetFillColor(245, 245, 245)
			doc.MultiCell(0, codeHeight, b.text, "", "L", true)
			doc.Ln(4)
		case blockListItem:
			doc.SetFont("Helvetica", "", bodySize)
			doc.CellFormat(14, lineHeight, "-", "", 0, "R", false, 0, "")
			doc.MultiCell(0, lineHeight, b.text, "", "L", false)
		default:
			doc.SetFont("Helvetica", "", bodySize)
			doc.MultiCell(0, lineHeight, b.text, "", "L", false)
			doc.Ln(4)
		}
	}
	doc.Ln(6)
}

func writeCommits(doc *fpdf.Fpdf, commits []domain.Commit, withDiffs bool) {
	if len(commits) == 0 {
		return
	}

	sectionHeading(doc, fmt.Sprintf("Commits (%d)", len(commits)))

	for i, c := range commits {
		doc.SetFont("Helvetica", "B", 11)
		doc.MultiCell(0, lineHeight+2, fmt.Sprintf("%d. %s", i+1, c.Title()), "", "L", false)

		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(90, 90, 90)
		doc.MultiCell(0, 12, commitByline(c), "", "L", false)
		doc.SetTextColor(0, 0, 0)

		if body := c.BodyText(); body != "" {
			doc.SetFont("Helvetica", "", bodySize)
			doc.MultiCell(0, lineHeight, body, "", "L", false)
		}

		for _, f := range c.Files {
			doc.SetFont("Helvetica", "", 9)
			doc.MultiCell(0, 12, fileSummaryLine(f), "", "L", false)
		}

		if withDiffs {
			for _, f := range c.Files {
				writeFileDiff(doc, f)
			}
		}
		doc.Ln(8)
	}
}

func commitByline(c domain.Commit) string {
	line := c.ShortSHA()
	if c.Author != "" {
		line += "  " + c.Author
	}
	if c.Committer != "" && c.Committer != c.Author {
		line += fmt.Sprintf(" (committed by %s)", c.Committer)
	}
	if !c.AuthoredAt.IsZero() {
		line += "  " + c.AuthoredAt.Format(timeLayout)
	}
	return line
}

func fileSummaryLine(f domain.ChangedFile) string {
	name := f.Filename
	if f.Status == domain.FileStatusRenamed && f.PreviousFilename != "" {
		name = fmt.Sprintf("%s <- %s", f.Filename, f.PreviousFilename)
	}
	return fmt.Sprintf("  [%s] %s (+%d/-%d)", StatusLabel(f.Status), name, f.Additions, f.Deletions)
}

func writeSummary(doc *fpdf.Fpdf, rpt domain.Report, withDiffs bool) {
	if len(rpt.Files) == 0 {
		return
	}

	sectionHeading(doc, "Summary of changes")

	doc.SetFont("Helvetica", "", bodySize)
	doc.MultiCell(0, lineHeight, fmt.Sprintf("%d files changed, %d additions, %d deletions",
		len(rpt.Files), rpt.TotalAdditions(), rpt.TotalDeletions()), "", "L", false)
	doc.Ln(4)

	for _, f := range rpt.Files {
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 12, fileSummaryLine(f), "", "L", false)
	}

	if withDiffs {
		doc.Ln(6)
		for _, f := range rpt.Files {
			writeFileDiff(doc, f)
		}
	}
}

func sectionHeading(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.MultiCell(0, 18, title, "", "L", false)
	doc.Ln(2)
}
