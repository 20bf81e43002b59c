// Package export turns the rendered trip preview into a paginated A4 PDF.
//
// Availability is decided once at startup: the service either holds a
// constructed Exporter or none at all. There is no lazy loading mid-
// session, so "export unavailable" is deterministic and testable.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/dmarques/tripfolio/backend/internal/domain"
	"github.com/dmarques/tripfolio/backend/internal/render"
)

// Exporter produces a downloadable document from a trip.
type Exporter interface {
	// Export renders the document and returns the file bytes plus the
	// suggested download filename. On error no partial file is returned.
	Export(doc domain.TripDocument) ([]byte, string, error)
}

// A4 page geometry in millimetres.
const (
	pageHeight = 297.0
	margin     = 15.0
	lineHeight = 6.0
	// epsilon stops the pagination loop once the remaining content is
	// too short to be worth another page.
	epsilon = 0.5
)

// PDFExporter paginates the preview into A4 pages: content advances one
// page height at a time until the remaining height is within epsilon.
type PDFExporter struct{}

// NewPDF constructs the PDF exporter.
func NewPDF() *PDFExporter {
	return &PDFExporter{}
}

// Export renders doc's preview lines into a multi-page A4 PDF.
func (e *PDFExporter) Export(doc domain.TripDocument) ([]byte, string, error) {
	lines := render.Lines(doc)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Courier", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	usable := pageHeight - 2*margin
	remaining := float64(len(lines)) * lineHeight

	i := 0
	for remaining > epsilon {
		pdf.AddPage()
		used := 0.0
		for i < len(lines) && used+lineHeight <= usable {
			pdf.SetXY(margin, margin+used)
			pdf.CellFormat(0, lineHeight, tr(lines[i]), "", 0, "L", false, 0, "")
			used += lineHeight
			remaining -= lineHeight
			i++
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("export.PDFExporter.Export: %w", err)
	}
	return buf.Bytes(), Filename(doc.Title), nil
}

// Filename builds the download name: the trip title with whitespace
// replaced by underscores, suffixed "_Itinerary.pdf". A blank title
// falls back to "Trip".
func Filename(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		fields = []string{"Trip"}
	}
	return strings.Join(fields, "_") + "_Itinerary.pdf"
}
