package extractor

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/models"
)

// extractPlainText decodes a text file byte-for-byte. Content below the
// ceiling passes through unchanged except for charset normalization.
func extractPlainText(data []byte) (models.ExtractedDocument, error) {
	if len(data) == 0 {
		return models.ExtractedDocument{}, analysis.NewError(
			analysis.KindMalformedInput, "Uploaded text file is empty")
	}

	text, err := decodeText(data)
	if err != nil {
		return models.ExtractedDocument{}, analysis.NewErrorWithDetail(
			analysis.KindMalformedInput, "Could not decode text file", err.Error())
	}

	bounded, truncated := Clip(text, FileCeiling)

	return models.ExtractedDocument{
		SourceKind: models.SourcePlainText,
		Text:       bounded,
		Truncated:  truncated,
	}, nil
}

// decodeText sniffs BOMs and falls back through the encodings text files
// show up in: UTF-8, UTF-16 (either endianness), then Windows-1252 and
// Latin-1 for legacy exports.
func decodeText(data []byte) (string, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return transformBytes(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), data)
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return transformBytes(unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), data)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	if decoded, err := transformBytes(charmap.Windows1252.NewDecoder(), data); err == nil {
		return decoded, nil
	}

	if decoded, err := transformBytes(charmap.ISO8859_1.NewDecoder(), data); err == nil {
		return decoded, nil
	}

	return string(data), nil
}

func transformBytes(decoder transform.Transformer, data []byte) (string, error) {
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
