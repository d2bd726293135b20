// Package extractor normalizes user-supplied documents (plain text, PDF,
// DOCX or a remote URL) into bounded plain text for summarization.
package extractor

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/models"
)

const (
	// FileCeiling bounds text extracted from uploaded files. URLCeiling
	// bounds text scraped from a remote page. Both are tuned to the
	// backend's token budget; do not change them casually.
	FileCeiling = 12000
	URLCeiling  = 16000

	// MaxPDFPages caps how many pages are read from a PDF.
	MaxPDFPages = 30
)

type Extractor struct {
	client *http.Client
}

func New(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Extractor{client: client}
}

// Extract picks exactly one branch from the input: a URL fetch, or a file
// decode keyed on the declared MIME type. Unrecognized inputs fail with an
// unsupported-format error before any backend work happens.
func (e *Extractor) Extract(ctx context.Context, input models.ExtractInput) (models.ExtractedDocument, error) {
	if input.URL != "" {
		return e.extractURL(ctx, input.URL)
	}

	switch {
	case input.DeclaredMimeType == "text/plain":
		return extractPlainText(input.FileBytes)
	case input.DeclaredMimeType == "application/pdf":
		return extractPDF(input.FileBytes)
	case isDOCXContentType(input.DeclaredMimeType):
		return extractDOCX(input.FileBytes)
	default:
		return models.ExtractedDocument{}, analysis.NewError(
			analysis.KindUnsupportedFormat,
			"Unsupported file type. Upload .txt, .pdf or .docx, or paste a URL",
		)
	}
}

// Clip hard-cuts text at limit bytes with no word-boundary awareness,
// backing up so the cut never splits a multi-byte rune. The exact cut
// lengths are part of the contract with the backend.
func Clip(text string, limit int) (string, bool) {
	if len(text) <= limit {
		return text, false
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut], true
}

// isDOCXContentType accepts the MIME variations browsers send for DOCX.
func isDOCXContentType(contentType string) bool {
	switch contentType {
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.wordprocessingml",
		"application/docx",
		"application/x-docx":
		return true
	}
	return false
}
