package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/models"
)

// Minimal projection of word/document.xml: paragraphs of text runs.
type wordDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    wordBody `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text string `xml:"t"`
}

// extractDOCX unzips the document, renders its body as intermediate HTML
// and reduces that to plain text the same way the URL branch does.
func extractDOCX(data []byte) (models.ExtractedDocument, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindMalformedInput, "Could not read DOCX file", err.Error())
	}

	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == "word/document.xml" {
			documentFile = file
			break
		}
	}
	if documentFile == nil {
		return models.ExtractedDocument{}, analysis.NewError(
			analysis.KindMalformedInput, "DOCX file has no document body")
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindMalformedInput, "Could not open DOCX document body", err.Error())
	}
	defer xmlFile.Close()

	xmlData, err := io.ReadAll(xmlFile)
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindMalformedInput, "Could not read DOCX document body", err.Error())
	}

	var doc wordDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindMalformedInput, "Could not parse DOCX document body", err.Error())
	}

	text, truncated := Clip(stripHTML(docxToHTML(doc)), FileCeiling)
	if text == "" {
		return models.ExtractedDocument{}, analysis.NewError(
			analysis.KindMalformedInput, "No text could be extracted from the DOCX")
	}

	return models.ExtractedDocument{
		SourceKind: models.SourceDOCX,
		Text:       text,
		Truncated:  truncated,
	}, nil
}

func docxToHTML(doc wordDocument) string {
	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		b.WriteString("<p>")
		for _, run := range para.Runs {
			b.WriteString(run.Text)
		}
		b.WriteString("</p>")
	}
	return b.String()
}
