package viewstate

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInputTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "abc", sanitizeInput("  abc  \n"))
}

func TestSanitizeInputURLDecodesWhenPercentPresent(t *testing.T) {
	assert.Equal(t, "a+b/c=", sanitizeInput("a%2Bb%2Fc%3D"))
}

func TestSanitizeInputKeepsOriginalOnBadEscape(t *testing.T) {
	// a literal trailing '%' is not a valid escape; QueryUnescape fails and
	// the original text passes through unchanged.
	assert.Equal(t, "100%", sanitizeInput("100%"))
}

func TestDecodeBase64StandardAlphabet(t *testing.T) {
	raw := []byte{0xFF, 0x01, 0x03, 0x2A}
	encoded := base64.StdEncoding.EncodeToString(raw)
	got, err := decodeBase64(encoded)
	assert.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestDecodeBase64FallsBackToRawStandard(t *testing.T) {
	raw := []byte{0xFF, 0x01, 0x03, 0x2A}
	encoded := base64.RawStdEncoding.EncodeToString(raw)
	got, err := decodeBase64(encoded)
	assert.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestDecodeBase64InvalidInputErrors(t *testing.T) {
	_, err := decodeBase64("not valid base64 at all !!!")
	assert.Error(t, err)
}

func TestEncodeBase64UsesStandardPadding(t *testing.T) {
	encoded := encodeBase64([]byte{0x01})
	_, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)
}
