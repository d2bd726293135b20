package payload

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMatchesSinglePass(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 2000)
	encoded := base64.StdEncoding.EncodeToString(data)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestDecodeChunkSizeInvariance(t *testing.T) {
	data := bytes.Repeat([]byte{0x00, 0x01, 0xFE, 0xFF, 0x7F}, 50000)
	encoded := base64.StdEncoding.EncodeToString(data)

	for _, chunkSize := range []int{4, 8, 1024, 32768, len(encoded) + 4} {
		decoded, err := DecodeChunked(encoded, chunkSize)
		require.NoError(t, err, "chunk size %d", chunkSize)
		assert.Equal(t, len(data), len(decoded), "chunk size %d", chunkSize)
		assert.Equal(t, data, decoded, "chunk size %d", chunkSize)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	decoded, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeMalformedInput(t *testing.T) {
	_, err := Decode("this is !!! not base64 ???")
	assert.Error(t, err)
}

func TestDecodeMalformedChunkFailsWholeDecode(t *testing.T) {
	// Valid prefix followed by garbage in a later chunk.
	good := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("abc"), 100))
	_, err := DecodeChunked(good+"!!!!", 64)
	assert.Error(t, err)
}

func TestDecodeRejectsBadChunkSize(t *testing.T) {
	for _, chunkSize := range []int{0, -4, 7, 30} {
		_, err := DecodeChunked("AAAA", chunkSize)
		assert.Error(t, err, "chunk size %d", chunkSize)
	}
}
