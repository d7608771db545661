package viewstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeList(t *testing.T) {
	var wire []byte
	wire = AppendVarint(wire, 2)
	wire = append(wire, tagByte, 1, tagByte, 2)
	v := decodeList(NewCursor(wire), freshCtx())
	assert.Equal(t, ListValue{Items: []Value{ByteValue{V: 1}, ByteValue{V: 2}}}, v)
}

// TestDecodeListClamp is P6: a declared count over the configured clamp
// yields an empty collection without walking the claimed elements.
func TestDecodeListClamp(t *testing.T) {
	ctx := freshCtx()
	ctx.cfg.MaxCollectionLen = 2
	wire := AppendVarint(nil, 100)
	v := decodeList(NewCursor(wire), ctx)
	assert.Equal(t, ListValue{}, v)
}

func TestDecodeMapPreservesOrder(t *testing.T) {
	var wire []byte
	wire = AppendVarint(wire, 2)
	wire = append(wire, tagText)
	wire = AppendString(wire, "a")
	wire = append(wire, tagByte, 7)
	wire = append(wire, tagText)
	wire = AppendString(wire, "b")
	wire = append(wire, tagByte, 9)

	v := decodeMap(NewCursor(wire), freshCtx())
	m, ok := v.(MapValue)
	assert.True(t, ok)
	assert.Equal(t, []MapEntry{
		{Key: "a", Value: ByteValue{V: 7}},
		{Key: "b", Value: ByteValue{V: 9}},
	}, m.Entries)
}

func TestDecodeMapClamp(t *testing.T) {
	ctx := freshCtx()
	ctx.cfg.MaxCollectionLen = 1
	wire := AppendVarint(nil, 50)
	v := decodeMap(NewCursor(wire), ctx)
	assert.Equal(t, MapValue{}, v)
}

func TestStringifyKey(t *testing.T) {
	testCases := []struct {
		key    Value
		output string
	}{
		{TextValue{V: "a"}, "a"},
		{Int32Value{V: 42}, "42"},
		{ByteValue{V: 5}, "5"},
		{BoolValue{V: true}, "true"},
		{BoolValue{V: false}, "false"},
		{NullValue{}, ""},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.output, stringifyKey(testCase.key), testCase)
	}
}

// TestDecodeSparseList is S5: a sparse list materializes a dense list with
// Null in unwritten slots.
func TestDecodeSparseList(t *testing.T) {
	var wire []byte
	wire = AppendVarint(wire, 5) // declared length
	wire = AppendVarint(wire, 2) // 2 (index, value) pairs
	wire = AppendVarint(wire, 1)
	wire = append(wire, tagByte, 0x2A)
	wire = AppendVarint(wire, 3)
	wire = append(wire, tagByte, 0x2B)

	v := decodeSparseList(NewCursor(wire), freshCtx())
	list, ok := v.(ListValue)
	assert.True(t, ok)
	assert.Equal(t, []Value{
		NullValue{},
		ByteValue{V: 0x2A},
		NullValue{},
		ByteValue{V: 0x2B},
		NullValue{},
	}, list.Items)
}

func TestDecodeTypedArray(t *testing.T) {
	ctx := freshCtx()
	ctx.interns.addType("System.String")
	var wire []byte
	wire = AppendVarint(wire, 0) // type index
	wire = AppendVarint(wire, 2) // length
	wire = append(wire, tagByte, 1, tagByte, 2)

	v := decodeTypedArray(NewCursor(wire), ctx)
	arr, ok := v.(TypedArrayValue)
	assert.True(t, ok)
	assert.Equal(t, "System.String", arr.TypeName)
	assert.Equal(t, []Value{ByteValue{V: 1}, ByteValue{V: 2}}, arr.Items)
}

func TestDecodeUnit(t *testing.T) {
	var wire []byte
	wire = appendUint64LE(wire, math.Float64bits(12.5))
	wire = AppendVarint(wire, uint64(UnitPixel))
	v := decodeUnit(NewCursor(wire))
	assert.Equal(t, UnitValue{N: 12.5, Kind: UnitPixel}, v)
	assert.Equal(t, "12.5px", v.(UnitValue).String())
}

func TestDecodeColor(t *testing.T) {
	packed := uint64(0xFF)<<24 | uint64(10)<<16 | uint64(20)<<8 | uint64(30)
	wire := AppendVarint(nil, packed)
	v := decodeColor(NewCursor(wire))
	assert.Equal(t, ColorValue{A: 0xFF, R: 10, G: 20, B: 30}, v)
}

func TestDecodeDateTimeValidAndInvalid(t *testing.T) {
	// a representative valid tick count: 637e15 ticks falls in mid-2019,
	// well within range.
	wire := appendUint64LE(nil, uint64(637_000_000_000_000_000))
	v := decodeDateTime(NewCursor(wire))
	dt, ok := v.(DateTimeValue)
	assert.True(t, ok)
	assert.True(t, dt.Valid)
	assert.Contains(t, dt.ISO8601(), "T")

	invalid := appendUint64LE(nil, uint64(maxDotNetTicks)+1)
	v2 := decodeDateTime(NewCursor(invalid))
	dt2 := v2.(DateTimeValue)
	assert.False(t, dt2.Valid)
	assert.Equal(t, "<DateTime>", dt2.ISO8601())
}
