package viewstate

import (
	"bytes"
	"encoding/binary"

	"github.com/b71729/bin"
)

// Cursor owns the input octet buffer for a single decode call (spec.md
// §4.1). It is not safe for concurrent use; callers scope one per decode,
// the way an ElementStream is scoped to one Dicom.
//
// Reads past the end of the buffer never error: every read clamps to what
// remains so the rest of the parser can stay panic-free and total.
type Cursor struct {
	data []byte
	pos  int
	br   bin.Reader
}

// NewCursor wraps data for sequential, occasionally-rewound reading.
func NewCursor(data []byte) *Cursor {
	c := &Cursor{data: data}
	c.seek(0)
	return c
}

func (c *Cursor) seek(pos int) {
	c.pos = pos
	c.br = bin.NewReader(bytes.NewReader(c.data[pos:]), binary.LittleEndian)
}

// Remaining returns the number of unread octets.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Position returns the current offset from the start of the buffer.
func (c *Cursor) Position() int { return c.pos }

// Len returns the total size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// ReadByte returns the next octet, or ok=false at end of buffer.
func (c *Cursor) ReadByte() (byte, bool) {
	if c.Remaining() <= 0 {
		return 0, false
	}
	var buf [1]byte
	if err := c.br.ReadBytes(buf[:]); err != nil {
		return 0, false
	}
	c.pos++
	return buf[0], true
}

// PeekByte returns the next octet without advancing, or 0 at end of buffer.
func (c *Cursor) PeekByte() byte {
	if c.Remaining() <= 0 {
		return 0
	}
	var buf [1]byte
	if err := c.br.Peek(buf[:]); err != nil {
		return 0
	}
	return buf[0]
}

// ReadN returns the next k octets, or fewer if that many don't remain.
func (c *Cursor) ReadN(k int) []byte {
	if k <= 0 {
		return nil
	}
	if k > c.Remaining() {
		k = c.Remaining()
	}
	if k == 0 {
		return nil
	}
	buf := make([]byte, k)
	if err := c.br.ReadBytes(buf); err != nil {
		return nil
	}
	c.pos += k
	return buf
}

// Skip advances the cursor by k octets, clamped to what remains.
func (c *Cursor) Skip(k int) {
	if k <= 0 {
		return
	}
	if k > c.Remaining() {
		k = c.Remaining()
	}
	if k == 0 {
		return
	}
	_ = c.br.Discard(k)
	c.pos += k
}

// Rewind1 steps the cursor back by exactly one octet. Used only by the
// tag-level recovery path (spec.md §4.8); b71729/bin.Reader has no native
// rewind, so it is cheaply recreated at the new offset.
func (c *Cursor) Rewind1() {
	if c.pos == 0 {
		return
	}
	c.seek(c.pos - 1)
}

// Bytes returns the full underlying buffer, unaffected by cursor position.
func (c *Cursor) Bytes() []byte { return c.data }
