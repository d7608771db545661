package viewstate

import "math"

// EncodeResult is the successful outcome of Encode (spec.md §6).
type EncodeResult struct {
	Encoded string
	Size    int
}

// Encode serializes a Value tree to the framed, Base64-encoded wire
// format (spec.md §4.10). It implements the corrected tag mapping named
// in spec.md §9's open questions rather than the colliding original:
// Pair emits 0x0F (not 0x68, which the decoder reserves for the Bool
// false alias), Triplet emits 0x10, and List emits 0x14 (not the
// unrecognized 0x6A).
//
// Because several variants (DateTime, Color, Unit, TypedArray, Opaque,
// TypeRef, KnownTypeRef) depend on decode-time context — an intern table
// populated from the wire, a raw blob the caller may have edited — the
// round trip through Encode is not guaranteed byte-identical, only
// semantically equivalent for scalars, lists, and maps (spec.md §4.10).
func Encode(v Value) (EncodeResult, error) {
	if v == nil {
		return EncodeResult{}, NothingToEncodeError()
	}
	body := appendValue(nil, v)
	framed := append([]byte{0xFF, 0x01}, body...)
	return EncodeResult{Encoded: encodeBase64(framed), Size: len(framed)}, nil
}

func appendValue(buf []byte, v Value) []byte {
	switch val := v.(type) {
	case NullValue:
		return append(buf, tagNullConst)
	case BoolValue:
		if val.V {
			return append(buf, tagBoolTrueAlias)
		}
		return append(buf, tagBoolFalseAlias)
	case ByteValue:
		return append(buf, tagByte, val.V)
	case Int16Value:
		return appendInteger(buf, int64(val.Signed()))
	case Int32Value:
		return appendInteger(buf, int64(val.V))
	case CharValue:
		return append(buf, tagByte, byte(val.V))
	case Float64Value:
		buf = append(buf, tagFloat64)
		return appendUint64LE(buf, math.Float64bits(val.V))
	case Float32Value:
		buf = append(buf, tagFloat32)
		return appendUint32LE(buf, math.Float32bits(val.V))
	case TextValue:
		buf = append(buf, tagText)
		return AppendString(buf, val.V)
	case DateTimeValue:
		buf = append(buf, tagDateTime)
		return appendUint64LE(buf, uint64(val.Ticks))
	case ColorValue:
		buf = append(buf, tagColor)
		packed := uint64(val.A)<<24 | uint64(val.R)<<16 | uint64(val.G)<<8 | uint64(val.B)
		return AppendVarint(buf, packed)
	case UnitValue:
		buf = append(buf, tagUnit)
		buf = appendUint64LE(buf, math.Float64bits(val.N))
		return AppendVarint(buf, uint64(val.Kind))
	case PairValue:
		buf = append(buf, tagPair)
		buf = appendValue(buf, val.First)
		return appendValue(buf, val.Second)
	case TripletValue:
		buf = append(buf, tagTriplet)
		buf = appendValue(buf, val.First)
		buf = appendValue(buf, val.Second)
		return appendValue(buf, val.Third)
	case ListValue:
		buf = append(buf, tagList)
		buf = AppendVarint(buf, uint64(len(val.Items)))
		for _, item := range val.Items {
			buf = appendValue(buf, item)
		}
		return buf
	case MapValue:
		return appendMap(buf, val)
	case TypeRefValue:
		buf = append(buf, tagTypeRef)
		return AppendString(buf, val.Name)
	case KnownTypeRefValue:
		buf = append(buf, tagKnownTypeRef)
		return AppendVarint(buf, uint64(val.Index))
	case TypedArrayValue:
		buf = append(buf, tagTypedArray)
		buf = AppendVarint(buf, uint64(val.TypeIndex))
		buf = AppendVarint(buf, uint64(len(val.Items)))
		for _, item := range val.Items {
			buf = appendValue(buf, item)
		}
		return buf
	case OpaqueValue:
		buf = append(buf, tagOpaque1)
		buf = AppendVarint(buf, uint64(val.Length))
		return append(buf, val.Raw...)
	case UnknownValue:
		// No reconstructable payload; best-effort substitute is Null.
		return append(buf, tagNullConst)
	default:
		return append(buf, tagNullConst)
	}
}

// appendInteger follows spec.md §4.10: integers in [0,255] use the Byte
// tag, everything else the varint-bodied Int32 tag.
func appendInteger(buf []byte, n int64) []byte {
	if n >= 0 && n <= 255 {
		return append(buf, tagByte, byte(n))
	}
	buf = append(buf, tagInt32)
	return AppendVarint(buf, uint64(uint32(n)))
}

// mapTypeDiscriminatorKey is the synthetic key the JSON editor surface
// uses to mark a Pair/Triplet object (spec.md §6); if it leaks into a
// genuine Map being encoded, it is stripped before counting entries
// (spec.md §4.10).
const mapTypeDiscriminatorKey = "type"

func appendMap(buf []byte, m MapValue) []byte {
	entries := make([]MapEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.Key == mapTypeDiscriminatorKey {
			if t, ok := e.Value.(TextValue); ok && (t.V == "Pair" || t.V == "Triplet") {
				continue
			}
		}
		entries = append(entries, e)
	}
	buf = append(buf, tagHashtable)
	buf = AppendVarint(buf, uint64(len(entries)))
	for _, e := range entries {
		buf = appendValue(buf, TextValue{V: e.Key})
		buf = appendValue(buf, e.Value)
	}
	return buf
}

func appendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendUint64LE(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
