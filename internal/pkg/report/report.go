// Package report renders analysis results as a downloadable PDF.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// DefaultTitle is printed in the page header when Report.Title is empty.
const DefaultTitle = "Meeting Summary"

// Filename is suggested to clients downloading the document.
const Filename = "meeting_summary.pdf"

// Report holds the content of a summary document.
type Report struct {
	Title       string
	Summary     string
	Sentiment   string
	GeneratedAt time.Time
}

// Render lays out the report on A4 pages with a title header and a
// page number plus generation time footer.
func Render(r Report) ([]byte, error) {
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, latin1(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		left, _, _, _ := pdf.GetMargins()
		pdf.SetX(left)
		pdf.CellFormat(0, 10, "Generated on "+generated.Format("2006-01-02 15:04"), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	section(pdf, "Summary", latin1(r.Summary))
	pdf.Ln(5)
	section(pdf, "Sentiment Analysis", latin1(r.Sentiment))

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, heading, body string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, heading, "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 5, body, "", "", false)
}

// latin1 maps text onto the single byte encoding of the core fonts.
func latin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0xFF {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte(r))
	}
	return b.String()
}
