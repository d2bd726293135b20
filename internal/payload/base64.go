package payload

import (
	"encoding/base64"
	"fmt"
)

// DefaultChunkSize is the window, in encoded characters, used when decoding
// large base64 payloads. It must stay a multiple of 4 so windows never split
// a base64 quartet.
const DefaultChunkSize = 32768

// Decode decodes a base64 string using DefaultChunkSize windows.
func Decode(encoded string) ([]byte, error) {
	return DecodeChunked(encoded, DefaultChunkSize)
}

// DecodeChunked decodes the string window by window, concatenating the
// decoded bytes in encounter order. Decoding per window bounds peak
// intermediate allocation to the window size instead of holding a second
// full-size copy of the payload. Malformed base64 in any window fails the
// whole decode.
func DecodeChunked(encoded string, chunkSize int) ([]byte, error) {
	if chunkSize <= 0 || chunkSize%4 != 0 {
		return nil, fmt.Errorf("chunk size must be a positive multiple of 4, got %d", chunkSize)
	}

	decoded := make([]byte, 0, base64.StdEncoding.DecodedLen(len(encoded)))

	for position := 0; position < len(encoded); position += chunkSize {
		end := position + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}

		chunk, err := base64.StdEncoding.DecodeString(encoded[position:end])
		if err != nil {
			return nil, fmt.Errorf("invalid base64 at offset %d: %w", position, err)
		}
		decoded = append(decoded, chunk...)
	}

	return decoded, nil
}
