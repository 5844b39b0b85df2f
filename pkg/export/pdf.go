package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const pageWidth = 190.0

// PDFDocument builds a paginated report with a title, a generation
// timestamp and a mix of detail blocks and tables.
type PDFDocument struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewPDFDocument opens an A4 portrait document with the report header.
func NewPDFDocument(title string, generatedAt time.Time) *PDFDocument {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	// cp1252 translator so accented report strings render correctly.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Gerado em: %s", generatedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	return &PDFDocument{pdf: pdf, tr: tr}
}

// Heading writes a section heading, used for per-record detail blocks.
func (d *PDFDocument) Heading(text string) {
	d.pdf.SetFont("Arial", "B", 14)
	d.pdf.CellFormat(0, 8, d.tr(text), "", 1, "L", false, 0, "")
}

// Line writes one "Label: value" detail line.
func (d *PDFDocument) Line(label, value string) {
	d.pdf.SetFont("Arial", "", 10)
	d.pdf.CellFormat(0, 5, d.tr(fmt.Sprintf("%s: %s", label, value)), "", 1, "L", false, 0, "")
}

// Spacer inserts vertical whitespace between blocks.
func (d *PDFDocument) Spacer() {
	d.pdf.Ln(5)
}

// Table renders a bordered table with evenly sized columns.
func (d *PDFDocument) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	colWidth := pageWidth / float64(len(headers))

	d.pdf.SetFont("Arial", "B", 10)
	for _, header := range headers {
		d.pdf.CellFormat(colWidth, 8, d.tr(header), "1", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i := 0; i < len(headers); i++ {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			d.pdf.CellFormat(colWidth, 7, d.tr(value), "1", 0, "", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(3)
}

// Totals writes an emphasised summary line after a table.
func (d *PDFDocument) Totals(text string) {
	d.pdf.SetFont("Arial", "B", 10)
	d.pdf.CellFormat(0, 6, d.tr(text), "", 1, "L", false, 0, "")
}

// Bytes finalises the document.
func (d *PDFDocument) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := d.pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
