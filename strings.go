package viewstate

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadString reads a varint-length-prefixed UTF-8 string (spec.md §4.3).
// A declared length longer than what remains is clamped, not treated as an
// error. Octets that don't form valid UTF-8 are re-decoded one octet at a
// time as Latin-1, the way the teacher's decodeBytes falls back across its
// CharacterSet table rather than failing the whole element.
func ReadString(c *Cursor) string {
	n := ReadVarint(c)
	if n == 0 {
		return ""
	}
	raw := c.ReadN(int(n))
	if len(raw) == 0 {
		return ""
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// AppendString appends the varint-length-prefixed UTF-8 encoding of s to
// buf (spec.md §4.3).
func AppendString(buf []byte, s string) []byte {
	b := []byte(s)
	buf = AppendVarint(buf, uint64(len(b)))
	return append(buf, b...)
}
