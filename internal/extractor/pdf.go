package extractor

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/models"
)

// extractPDF walks pages in order, appending each page's plain text with a
// newline between pages. Reading stops after MaxPDFPages or as soon as the
// accumulated text passes the ceiling, whichever comes first.
func extractPDF(data []byte) (models.ExtractedDocument, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindMalformedInput, "Could not read PDF file", err.Error())
	}

	numPages := reader.NumPage()
	if numPages > MaxPDFPages {
		numPages = MaxPDFPages
	}

	var combined strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; the others may still carry text.
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")

		if combined.Len() > FileCeiling {
			break
		}
	}

	text, truncated := Clip(combined.String(), FileCeiling)
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ExtractedDocument{}, analysis.NewError(
			analysis.KindMalformedInput, "No text could be extracted from the PDF")
	}

	return models.ExtractedDocument{
		SourceKind: models.SourcePDF,
		Text:       text,
		Truncated:  truncated,
	}, nil
}
