package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// unicodeFont is the family name registered when a UTF-8 font file is
// configured. The built-in core fonts only encode latin text.
const unicodeFont = "Unicode"

// PDFExporter renders tables into a basic tabular PDF. Korean course names
// need a UTF-8 font file (EXPORT_PDF_FONT_PATH); without one, runes the
// core fonts cannot encode are replaced with '?' rather than printed as
// mojibake.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter. fontPath may be empty.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Table, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	font := "Arial"
	cell := latinFallback
	if e.fontPath != "" {
		pdf.AddUTF8Font(unicodeFont, "", e.fontPath)
		pdf.AddUTF8Font(unicodeFont, "B", e.fontPath)
		font = unicodeFont
		cell = func(s string) string { return s }
	}

	if title != "" {
		pdf.SetFont(font, "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(cell(title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont(font, "B", 10)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, cell(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 9)
	for _, row := range data.Rows {
		for i := range data.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, cell(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// latinFallback substitutes runes the built-in core fonts cannot encode.
func latinFallback(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
