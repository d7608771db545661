// Package viewstate decodes and encodes the binary wire format produced by
// the ASP.NET LosFormatter/ObjectStateFormatter serializers.
package viewstate

import "fmt"

// Kind identifies which variant of the Value sum type a given Value holds.
type Kind int

// Kind constants, one per variant named in the data model.
const (
	KindNull Kind = iota
	KindBool
	KindByte
	KindInt16
	KindInt32
	KindFloat32
	KindFloat64
	KindChar
	KindText
	KindDateTime
	KindColor
	KindUnit
	KindPair
	KindTriplet
	KindList
	KindMap
	KindTypeRef
	KindKnownTypeRef
	KindTypedArray
	KindOpaque
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindByte:
		return "Byte"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindChar:
		return "Char"
	case KindText:
		return "Text"
	case KindDateTime:
		return "DateTime"
	case KindColor:
		return "Color"
	case KindUnit:
		return "Unit"
	case KindPair:
		return "Pair"
	case KindTriplet:
		return "Triplet"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindTypeRef:
		return "TypeRef"
	case KindKnownTypeRef:
		return "KnownTypeRef"
	case KindTypedArray:
		return "TypedArray"
	case KindOpaque:
		return "Opaque"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the immutable tagged union produced by the parser and consumed by
// the encoder. Every concrete type in this file implements it.
//
// Values are never mutated after construction; the editor builds whole new
// subtrees rather than patching one in place (spec.md §3, Lifecycle).
type Value interface {
	Kind() Kind
	isValue()
}

// NullValue represents the decoder's "absent value" (tags 0x0A/0x64).
type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }
func (NullValue) isValue()   {}

// BoolValue carries a boolean (tags 0x0B/0x0C, or the 0x67/0x68 aliases).
type BoolValue struct{ V bool }

func (BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()   {}

// ByteValue carries a single octet (tag 0x03).
type ByteValue struct{ V byte }

func (ByteValue) Kind() Kind { return KindByte }
func (ByteValue) isValue()   {}

// Int16Value carries sixteen bits read little-endian (tag 0x01). .NET's
// Int16 is signed; Raw preserves the bit pattern as read, Signed()
// reinterprets it (spec.md §9 open question on Int16 signedness).
type Int16Value struct{ Raw uint16 }

func (Int16Value) Kind() Kind      { return KindInt16 }
func (Int16Value) isValue()        {}
func (v Int16Value) Signed() int16 { return int16(v.Raw) }

// Int32Value carries a 32-bit integer, read from the wire as a varint
// (tag 0x02), or produced directly for the 0x66 zero constant.
type Int32Value struct{ V int32 }

func (Int32Value) Kind() Kind { return KindInt32 }
func (Int32Value) isValue()   {}

// Float32Value carries an IEEE-754 single (tag 0x08).
type Float32Value struct{ V float32 }

func (Float32Value) Kind() Kind { return KindFloat32 }
func (Float32Value) isValue()   {}

// Float64Value carries an IEEE-754 double (tag 0x07).
type Float64Value struct{ V float64 }

func (Float64Value) Kind() Kind { return KindFloat64 }
func (Float64Value) isValue()   {}

// CharValue carries a single Unicode scalar, read as one octet on the wire
// (tag 0x04).
type CharValue struct{ V rune }

func (CharValue) Kind() Kind { return KindChar }
func (CharValue) isValue()   {}

// TextValue carries a UTF-8 string (tags 0x05 and 0x1E, and the resolution
// of a 0x1F StringRef or the 0x65 empty-string constant).
type TextValue struct{ V string }

func (TextValue) Kind() Kind { return KindText }
func (TextValue) isValue()   {}

// DateTimeValue carries a .NET tick count (100ns units since 0001-01-01),
// read as 8 little-endian octets (tag 0x06). Valid is false when the ticks
// fall outside the representable instant range (spec.md §4.4 policy note);
// ISO8601() then returns the "<DateTime>" placeholder instead of an ISO-8601
// timestamp.
type DateTimeValue struct {
	Ticks int64
	Valid bool
}

func (DateTimeValue) Kind() Kind { return KindDateTime }
func (DateTimeValue) isValue()   {}

// ColorValue carries an RGBA quadruple unpacked from a varint ARGB word
// (tag 0x09).
type ColorValue struct {
	R, G, B byte
	A       byte
}

func (ColorValue) Kind() Kind { return KindColor }
func (ColorValue) isValue()   {}

// String renders the color as "rgba(r,g,b,a)" with alpha normalized to
// [0,1] and rounded to two decimal places, per spec.md §3.
func (c ColorValue) String() string {
	a := roundTo2DP(float64(c.A) / 255.0)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatFixed2(a))
}

// UnitKind enumerates the CSS-style unit suffixes a Unit value may carry.
type UnitKind int

// UnitKind constants, ordered to match the wire's varint kind discriminator.
const (
	UnitNone UnitKind = iota
	UnitPixel
	UnitPoint
	UnitPercentage
	UnitEm
	UnitEx
	UnitMillimeter
	UnitCentimeter
	UnitInch
	UnitPica
)

// Suffix returns the textual unit suffix used when rendering a Unit value.
func (k UnitKind) Suffix() string {
	switch k {
	case UnitPixel:
		return "px"
	case UnitPoint:
		return "pt"
	case UnitPercentage:
		return "%"
	case UnitEm:
		return "em"
	case UnitEx:
		return "ex"
	case UnitMillimeter:
		return "mm"
	case UnitCentimeter:
		return "cm"
	case UnitInch:
		return "in"
	case UnitPica:
		return "pc"
	default:
		return ""
	}
}

// UnitValue carries a magnitude and its CSS-style unit (tag 0x1B).
type UnitValue struct {
	N    float64
	Kind UnitKind
}

func (UnitValue) Kind() Kind { return KindUnit }
func (UnitValue) isValue()   {}

// String renders the unit as "<n><suffix>", per spec.md §3.
func (u UnitValue) String() string {
	return formatTrimmed(u.N) + u.Kind.Suffix()
}

// PairValue carries two values (tag 0x0F on decode; re-emitted at the
// corrected tag 0x0F on encode — see spec.md §9 open question).
type PairValue struct{ First, Second Value }

func (PairValue) Kind() Kind { return KindPair }
func (PairValue) isValue()   {}

// TripletValue carries three values (tag 0x10).
type TripletValue struct{ First, Second, Third Value }

func (TripletValue) Kind() Kind { return KindTriplet }
func (TripletValue) isValue()   {}

// ListValue carries an ordered sequence of values. It is produced for the
// Array/StringArray/ArrayList tags (0x14/0x15/0x16) and as the materialized,
// hole-filled result of a SparseList (tag 0x28, spec.md §3 invariant).
type ListValue struct{ Items []Value }

func (ListValue) Kind() Kind { return KindList }
func (ListValue) isValue()   {}

// MapEntry is one (key, value) pair of a MapValue, in wire order.
type MapEntry struct {
	Key   string
	Value Value
}

// MapValue carries an ordered sequence of (Text, Value) entries (tags
// 0x17/0x18). Insertion order is the decode order (spec.md §3 invariant).
type MapValue struct{ Entries []MapEntry }

func (MapValue) Kind() Kind { return KindMap }
func (MapValue) isValue()   {}

// Get returns the value associated with key and whether it was found.
func (m MapValue) Get(key string) (Value, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// TypeRefValue records a .NET type name written to the wire (tag 0x19); as
// a side effect of decoding one, the name is appended to the type intern
// table (spec.md §4.6).
type TypeRefValue struct{ Name string }

func (TypeRefValue) Kind() Kind { return KindTypeRef }
func (TypeRefValue) isValue()   {}

// KnownTypeRefValue carries an index into the type intern table (tag 0x3C).
// Name is the resolved type name, or the "<TypeRef:i>" sentinel for an
// out-of-range index (spec.md §4.6).
type KnownTypeRefValue struct {
	Index int
	Name  string
}

func (KnownTypeRefValue) Kind() Kind { return KindKnownTypeRef }
func (KnownTypeRefValue) isValue()   {}

// TypedArrayValue carries a type-table index plus an ordered list of
// elements (tag 0x32).
type TypedArrayValue struct {
	TypeIndex int
	TypeName  string
	Items     []Value
}

func (TypedArrayValue) Kind() Kind { return KindTypedArray }
func (TypedArrayValue) isValue()   {}

// OpaqueExtract is the best-effort structured content pulled out of a
// nested BinaryFormatter blob (spec.md §4.7); its inner grammar itself is
// never parsed.
type OpaqueExtract struct {
	ObjectType  string       `json:"objectType,omitempty"`
	Schema      *TableSchema `json:"schema,omitempty"`
	HasDiffgram bool         `json:"hasDiffgram,omitempty"`
	Strings     []string     `json:"strings,omitempty"`
}

// TableSchema is the shape produced by the XML schema extractor (spec.md
// §4.9).
type TableSchema struct {
	Type        string   `json:"type"`
	TableName   string   `json:"tableName,omitempty"`
	Columns     []Column `json:"columns"`
	HasDiffgram bool     `json:"hasDiffgram,omitempty"`
}

// Column is one column of an extracted DataTable schema.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// OpaqueValue carries a BinaryFormatter blob's declared length, the raw
// octets (when available, for best-effort re-encode), and a structured
// extract (tags 0x29/0x2A).
type OpaqueValue struct {
	Length  int
	Raw     []byte
	Extract OpaqueExtract
}

func (OpaqueValue) Kind() Kind { return KindOpaque }
func (OpaqueValue) isValue()   {}

// UnknownValue is produced only by the tag-level recovery path (spec.md
// §4.8) for a tag byte outside the dispatch table that could not be
// salvaged as a string.
type UnknownValue struct {
	Tag    byte
	Offset int
}

func (UnknownValue) Kind() Kind { return KindUnknown }
func (UnknownValue) isValue()   {}
