package viewstate

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// sanitizeInput trims whitespace and, if the text contains a '%' octet,
// attempts a URL-decode, keeping the original text if that fails
// (spec.md §4.11; the gate is the literal "whenever % appears" policy
// named as an open question in spec.md §9, not tightened here).
func sanitizeInput(text string) string {
	text = strings.TrimSpace(text)
	if strings.Contains(text, "%") {
		if unescaped, err := url.QueryUnescape(text); err == nil {
			text = unescaped
		}
	}
	return text
}

// decodeBase64 sanitizes and Base64-decodes text to octets. It tries the
// standard padded alphabet first, then the unpadded variant, the common
// leniency real-world ViewState capture tools need when a proxy has
// trimmed trailing '='.
func decodeBase64(text string) ([]byte, error) {
	clean := sanitizeInput(text)
	if data, err := base64.StdEncoding.DecodeString(clean); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(clean)
}

// encodeBase64 encodes data with the standard alphabet and '=' padding
// (spec.md §4.11).
func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
