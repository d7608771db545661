package viewstate

import "math"

// Tag bytes from the token dispatch table (spec.md §4.4). The table is
// authoritative; any byte not named here enters tag-level recovery
// (spec.md §4.8).
const (
	tagInt16          byte = 0x01
	tagInt32          byte = 0x02
	tagByte           byte = 0x03
	tagChar           byte = 0x04
	tagText           byte = 0x05
	tagDateTime       byte = 0x06
	tagFloat64        byte = 0x07
	tagFloat32        byte = 0x08
	tagColor          byte = 0x09
	tagNull           byte = 0x0A
	tagBoolTrue       byte = 0x0B
	tagBoolFalse      byte = 0x0C
	tagPair           byte = 0x0F
	tagTriplet        byte = 0x10
	tagList           byte = 0x14
	tagStringList     byte = 0x15
	tagArrayList      byte = 0x16
	tagHashtable      byte = 0x17
	tagHybridDict     byte = 0x18
	tagTypeRef        byte = 0x19
	tagUnit           byte = 0x1B
	tagInternedText   byte = 0x1E
	tagStringRef      byte = 0x1F
	tagSparseList     byte = 0x28
	tagOpaque1        byte = 0x29
	tagOpaque2        byte = 0x2A
	tagTypedArray     byte = 0x32
	tagKnownTypeRef   byte = 0x3C
	tagNullConst      byte = 0x64
	tagEmptyStringConst byte = 0x65
	tagInt32ZeroConst byte = 0x66
	tagBoolTrueAlias  byte = 0x67
	tagBoolFalseAlias byte = 0x68
)

// decodeContext is the per-call mutable state the parser threads through
// recursive descent: the intern tables, the statistics tally, and the
// active configuration (spec.md §4.6, §4.12, §5). A fresh one is created
// per decode; nothing here is process-wide.
type decodeContext struct {
	interns *internTables
	stats   Stats
	cfg     Config
}

func newDecodeContext() *decodeContext {
	return &decodeContext{
		interns: newInternTables(),
		cfg:     GetConfig(),
	}
}

// parseValue reads one tag octet and dispatches to the matching value
// constructor (spec.md §4.4). It never errors: exhaustion or an
// unrecognized tag both yield an in-band Value.
func parseValue(c *Cursor, ctx *decodeContext) Value {
	tagPos := c.Position()
	tag, ok := c.ReadByte()
	if !ok {
		return NullValue{}
	}
	switch tag {
	case tagInt16:
		lo, hi := readByteOr0(c), readByteOr0(c)
		ctx.stats.Integers++
		return Int16Value{Raw: uint16(lo) | uint16(hi)<<8}
	case tagInt32:
		ctx.stats.Integers++
		return Int32Value{V: int32(ReadVarint(c))}
	case tagByte:
		b, _ := c.ReadByte()
		ctx.stats.Integers++
		return ByteValue{V: b}
	case tagChar:
		b, _ := c.ReadByte()
		ctx.stats.Strings++
		return CharValue{V: rune(b)}
	case tagText:
		ctx.stats.Strings++
		return TextValue{V: ReadString(c)}
	case tagDateTime:
		return decodeDateTime(c)
	case tagFloat64:
		bits := readUint64LE(c)
		return Float64Value{V: math.Float64frombits(bits)}
	case tagFloat32:
		bits := readUint32LE(c)
		return Float32Value{V: math.Float32frombits(bits)}
	case tagColor:
		return decodeColor(c)
	case tagNull, tagNullConst:
		return NullValue{}
	case tagBoolTrue, tagBoolTrueAlias:
		ctx.stats.Booleans++
		return BoolValue{V: true}
	case tagBoolFalse, tagBoolFalseAlias:
		ctx.stats.Booleans++
		return BoolValue{V: false}
	case tagPair:
		ctx.stats.Pairs++
		return PairValue{First: parseValue(c, ctx), Second: parseValue(c, ctx)}
	case tagTriplet:
		ctx.stats.Triplets++
		return TripletValue{First: parseValue(c, ctx), Second: parseValue(c, ctx), Third: parseValue(c, ctx)}
	case tagList, tagStringList, tagArrayList:
		ctx.stats.Arrays++
		return decodeList(c, ctx)
	case tagHashtable, tagHybridDict:
		return decodeMap(c, ctx)
	case tagTypeRef:
		name := ReadString(c)
		ctx.interns.addType(name)
		return TypeRefValue{Name: name}
	case tagUnit:
		return decodeUnit(c)
	case tagInternedText:
		s := ReadString(c)
		ctx.interns.addString(s)
		ctx.stats.Strings++
		return TextValue{V: s}
	case tagStringRef:
		idx := int(ReadVarint(c))
		ctx.stats.Strings++
		return TextValue{V: ctx.interns.resolveString(idx)}
	case tagSparseList:
		ctx.stats.Arrays++
		return decodeSparseList(c, ctx)
	case tagOpaque1, tagOpaque2:
		ctx.stats.Opaques++
		return decodeOpaque(c, ctx)
	case tagTypedArray:
		ctx.stats.Arrays++
		return decodeTypedArray(c, ctx)
	case tagKnownTypeRef:
		idx := int(ReadVarint(c))
		return KnownTypeRefValue{Index: idx, Name: ctx.interns.resolveType(idx)}
	case tagEmptyStringConst:
		ctx.stats.Strings++
		return TextValue{V: ""}
	case tagInt32ZeroConst:
		ctx.stats.Integers++
		return Int32Value{V: 0}
	default:
		return recoverUnknownTag(c, tag, tagPos, ctx)
	}
}

func readByteOr0(c *Cursor) byte {
	b, _ := c.ReadByte()
	return b
}

func readUint32LE(c *Cursor) uint32 {
	b := c.ReadN(4)
	var v uint32
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	return v
}

func readUint64LE(c *Cursor) uint64 {
	b := c.ReadN(8)
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
