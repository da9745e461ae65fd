package pdf

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/bkyoung/prpdf/internal/diff"
	"github.com/bkyoung/prpdf/internal/domain"
)

const gutterWidth = 26.0

// writeFileDiff renders a file's unified diff with old/new line-number
// gutters and colored addition/deletion lines. Binary files carry no patch
// text and get a placeholder note instead.
func writeFileDiff(doc *fpdf.Fpdf, f domain.ChangedFile) {
	doc.SetFont("Courier", "B", codeSize)
	doc.MultiCell(0, codeHeight+2, f.Filename, "", "L", false)

	if f.Patch == "" {
		doc.SetFont("Helvetica", "I", codeSize)
		doc.SetTextColor(90, 90, 90)
		doc.MultiCell(0, codeHeight, "(no textual diff)", "", "L", false)
		doc.SetTextColor(0, 0, 0)
		doc.Ln(4)
		return
	}

	parsed := diff.Parse(f.Patch, f.Filename)
	for _, hunk := range parsed.Hunks {
		doc.SetFont("Courier", "", codeSize)
		doc.SetTextColor(90, 90, 90)
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		doc.MultiCell(0, codeHeight, header, "", "L", false)

		for _, line := range hunk.Lines {
			writeDiffLine(doc, line)
		}
	}
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)
}

func writeDiffLine(doc *fpdf.Fpdf, line diff.Line) {
	doc.SetFont("Courier", "", codeSize)

	doc.SetTextColor(150, 150, 150)
	doc.CellFormat(gutterWidth, codeHeight, gutterNumber(line.OldLine), "", 0, "R", false, 0, "")
	doc.CellFormat(gutterWidth, codeHeight, gutterNumber(line.NewLine), "", 0, "R", false, 0, "")

	marker := " "
	switch line.Kind {
	case diff.LineAddition:
		doc.SetTextColor(0, 128, 0)
		marker = "+"
	case diff.LineDeletion:
		doc.SetTextColor(178, 34, 34)
		marker = "-"
	default:
		doc.SetTextColor(0, 0, 0)
	}

	doc.CellFormat(6, codeHeight, "", "", 0, "L", false, 0, "")
	doc.MultiCell(0, codeHeight, marker+line.Content, "", "L", false)
}

func gutterNumber(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
