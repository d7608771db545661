package viewstate

import (
	"math"
	"time"
)

// decodeList reads a varint count followed by that many recursively
// decoded values (spec.md §4.4, tags 0x14/0x15/0x16). A count exceeding
// the configured clamp yields an empty list without attempting to walk
// the claimed elements (spec.md §4.4 policy note, §8 P6).
func decodeList(c *Cursor, ctx *decodeContext) Value {
	count := ReadVarint(c)
	if int(count) > ctx.cfg.MaxCollectionLen {
		return ListValue{}
	}
	items := make([]Value, 0, count)
	for i := uint64(0); i < count; i++ {
		items = append(items, parseValue(c, ctx))
	}
	return ListValue{Items: items}
}

// stringifyKey renders a Map key Value as text; keys are most commonly
// Text already, but the grammar allows any Value (spec.md §3: "keys are
// stringified").
func stringifyKey(v Value) string {
	switch k := v.(type) {
	case TextValue:
		return k.V
	case Int32Value:
		return formatTrimmed(float64(k.V))
	case ByteValue:
		return formatTrimmed(float64(k.V))
	case Int16Value:
		return formatTrimmed(float64(k.Signed()))
	case BoolValue:
		if k.V {
			return "true"
		}
		return "false"
	case NullValue:
		return ""
	default:
		return k.Kind().String()
	}
}

// decodeMap reads a varint entry count followed by that many (key, value)
// pairs, preserving wire order (spec.md §4.4 tags 0x17/0x18, §3 invariant).
func decodeMap(c *Cursor, ctx *decodeContext) Value {
	count := ReadVarint(c)
	if int(count) > ctx.cfg.MaxCollectionLen {
		return MapValue{}
	}
	entries := make([]MapEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		key := parseValue(c, ctx)
		val := parseValue(c, ctx)
		entries = append(entries, MapEntry{Key: stringifyKey(key), Value: val})
	}
	return MapValue{Entries: entries}
}

// decodeSparseList reads a declared length and a varint count of (index,
// value) pairs, materializing a dense list with Null in unwritten slots
// (spec.md §3: "Materialized as a dense list with holes filled by Null on
// decode", §4.4 tag 0x28).
func decodeSparseList(c *Cursor, ctx *decodeContext) Value {
	length := ReadVarint(c)
	if int(length) > ctx.cfg.MaxCollectionLen {
		return ListValue{}
	}
	count := ReadVarint(c)
	if int(count) > ctx.cfg.MaxCollectionLen {
		return ListValue{}
	}
	items := make([]Value, length)
	for i := range items {
		items[i] = NullValue{}
	}
	for i := uint64(0); i < count; i++ {
		idx := int(ReadVarint(c))
		v := parseValue(c, ctx)
		if idx >= 0 && idx < len(items) {
			items[idx] = v
		}
	}
	return ListValue{Items: items}
}

// decodeTypedArray reads a type-table index, a declared length, and that
// many recursively decoded elements (spec.md §4.4 tag 0x32).
func decodeTypedArray(c *Cursor, ctx *decodeContext) Value {
	typeIndex := int(ReadVarint(c))
	length := ReadVarint(c)
	typeName := ctx.interns.resolveType(typeIndex)
	if int(length) > ctx.cfg.MaxCollectionLen {
		return TypedArrayValue{TypeIndex: typeIndex, TypeName: typeName}
	}
	items := make([]Value, 0, length)
	for i := uint64(0); i < length; i++ {
		items = append(items, parseValue(c, ctx))
	}
	return TypedArrayValue{TypeIndex: typeIndex, TypeName: typeName, Items: items}
}

// decodeUnit reads an 8-octet little-endian double followed by a varint
// unit kind (spec.md §4.4 tag 0x1B).
func decodeUnit(c *Cursor) Value {
	bits := readUint64LE(c)
	n := math.Float64frombits(bits)
	kind := UnitKind(ReadVarint(c))
	return UnitValue{N: n, Kind: kind}
}

// decodeColor unpacks a varint-encoded ARGB word into an RGBA quadruple
// (spec.md §4.4 tag 0x09).
func decodeColor(c *Cursor) Value {
	packed := ReadVarint(c)
	return ColorValue{
		A: byte(packed >> 24),
		R: byte(packed >> 16),
		G: byte(packed >> 8),
		B: byte(packed),
	}
}

// ticksPerDay is the number of .NET 100ns ticks in a day.
const ticksPerDay = 24 * 3600 * 10_000_000

// maxDotNetTicks is DateTime.MaxValue.Ticks (9999-12-31 23:59:59.9999999).
const maxDotNetTicks int64 = 3155378975999999999

// decodeDateTime reads 8 little-endian octets as .NET ticks (100ns units
// since 0001-01-01), flagging instants outside the representable range
// (spec.md §4.4 tag 0x06, policy note).
func decodeDateTime(c *Cursor) Value {
	ticks := int64(readUint64LE(c))
	valid := ticks >= 0 && ticks <= maxDotNetTicks
	return DateTimeValue{Ticks: ticks, Valid: valid}
}

// ISO8601 renders the instant in ISO-8601, or the "<DateTime>" placeholder
// when Valid is false (spec.md §3).
func (d DateTimeValue) ISO8601() string {
	if !d.Valid {
		return "<DateTime>"
	}
	days := d.Ticks / ticksPerDay
	remainder := d.Ticks % ticksPerDay
	t := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(days))
	t = t.Add(time.Duration(remainder * 100))
	return t.Format("2006-01-02T15:04:05.0000000Z")
}
