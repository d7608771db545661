package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorReadByte(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03})
	b, ok := c.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 1, c.Position())

	b, ok = c.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x02), b)

	c.ReadByte()
	_, ok = c.ReadByte()
	assert.False(t, ok, "reading past end of buffer should fail gracefully")
}

func TestCursorPeekByte(t *testing.T) {
	c := NewCursor([]byte{0xAB, 0xCD})
	assert.Equal(t, byte(0xAB), c.PeekByte())
	assert.Equal(t, 0, c.Position(), "peek must not advance")
	c.ReadByte()
	assert.Equal(t, byte(0xCD), c.PeekByte())

	empty := NewCursor(nil)
	assert.Equal(t, byte(0), empty.PeekByte())
}

func TestCursorReadNClamps(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	got := c.ReadN(10)
	assert.Equal(t, []byte{1, 2, 3}, got, "ReadN must clamp to what remains rather than error")
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorSkipClamps(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	c.Skip(2)
	assert.Equal(t, 2, c.Position())
	c.Skip(100)
	assert.Equal(t, 3, c.Position())
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorRewind1(t *testing.T) {
	c := NewCursor([]byte{0x11, 0x22, 0x33})
	c.ReadByte()
	c.ReadByte()
	assert.Equal(t, 2, c.Position())
	c.Rewind1()
	assert.Equal(t, 1, c.Position())
	b, ok := c.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x22), b, "rewinding one octet must re-expose the same byte")
}

func TestCursorRewind1AtZeroIsNoop(t *testing.T) {
	c := NewCursor([]byte{0x01})
	c.Rewind1()
	assert.Equal(t, 0, c.Position())
}

func TestCursorBytesIndependentOfPosition(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	c := NewCursor(data)
	c.Skip(2)
	assert.Equal(t, data, c.Bytes())
	assert.Equal(t, 4, c.Len())
}
