// Package pdf renders a laid-out report document with go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/dsablic/codecheck/internal/layout"
	"github.com/dsablic/codecheck/internal/model"
	"github.com/go-pdf/fpdf"
)

// fontMeasurer measures with fpdf's core-font metrics.
type fontMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (m fontMeasurer) Width(font layout.Font, text string) float64 {
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// Write renders doc as an A4 PDF to w. The PDF dates come from
// doc.GeneratedAt, so rendering the same document twice yields the same bytes.
func Write(w io.Writer, doc model.ReportDocument) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("codecheck", true)
	pdf.SetTitle("Code AI Checker Report", true)

	stamp, err := time.Parse(time.RFC3339, doc.GeneratedAt)
	if err != nil {
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)

	// Core fonts are cp1252; runes outside it are printed as '.'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pages := layout.Paginate(doc, fontMeasurer{pdf: pdf, tr: tr})

	for _, page := range pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			pdf.SetFont(op.Font.Family, op.Font.Style, op.Font.Size)
			pdf.SetTextColor(op.Gray, op.Gray, op.Gray)
			pdf.Text(op.X, op.Y, tr(op.Text))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
