package viewstate

import (
	"github.com/b71729/viewstate/common"
	"github.com/rs/zerolog/log"
)

// DecodeResult is the successful outcome of Decode (spec.md §6).
type DecodeResult struct {
	Value   Value
	Stats   Stats
	RawSize int
	Note    string
}

// decodeFramed implements spec.md §4.5: if the first octet is 0xFF, a
// version octet follows and is discarded and the remainder is a single
// value; otherwise the whole buffer is parsed as a single value from
// offset zero.
func decodeFramed(data []byte, ctx *decodeContext) Value {
	c := NewCursor(data)
	first, ok := c.ReadByte()
	if ok && first == 0xFF {
		c.ReadByte() // discard version octet
	} else {
		c = NewCursor(data)
	}
	return parseValue(c, ctx)
}

// Decode parses a Base64-encoded ViewState string into a typed Value tree
// (spec.md §6). The parser never throws for in-band malformations; it
// always returns a Value, embedding Unknown markers where recovery
// couldn't salvage text. Only BadBase64, EmptyInput, and an unrecoverable
// panic during structured parse produce a non-nil error, and the last of
// those is only returned once the fallback extractor also came up empty
// (spec.md §7).
func Decode(text string) (DecodeResult, error) {
	id := common.NewDecodeID()
	data, err := decodeBase64(text)
	if err != nil {
		log.Debug().Str("decodeID", id).Msg("base64 decode failed")
		return DecodeResult{}, BadBase64Error("decode base64: %v", err)
	}
	if len(data) == 0 {
		log.Debug().Str("decodeID", id).Msg("empty input after base64 decode")
		return DecodeResult{}, EmptyInputError()
	}

	cfg := GetConfig()
	log.Debug().Str("decodeID", id).Int("size", len(data)).Msg("decoding viewstate payload")
	result, ferr := decodeWithRecover(data, cfg)
	if ferr != nil {
		return DecodeResult{}, ferr
	}
	return result, nil
}

// decodeWithRecover runs the structured parser under a panic guard; a
// panic is treated as MalformedStructure and routed to the fallback
// extractor (spec.md §7, §4.8 level 2 and §9 "reframed as Result return
// values"). If the extractor salvages no content either, a
// MalformedStructure error is returned.
func decodeWithRecover(data []byte, cfg Config) (result DecodeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("structured parse panicked, falling back")
			fallback := runFallbackExtractor(data, cfg)
			if content, _ := fallback.Get("content"); content != nil {
				if cm, ok := content.(MapValue); ok && len(cm.Entries) == 0 {
					result = DecodeResult{}
					err = MalformedStructureError("structured parse failed and fallback extractor found no content: %v", r)
					return
				}
			}
			result = DecodeResult{Value: fallback, RawSize: len(data), Note: "recovered via fallback extractor"}
			err = nil
		}
	}()

	ctx := &decodeContext{interns: newInternTables(), cfg: cfg}
	v := decodeFramed(data, ctx)
	return DecodeResult{Value: v, Stats: ctx.stats, RawSize: len(data)}, nil
}

// Describe renders a decoded Value tree as indented lines, grounded on
// the teacher's habit of giving its structures a human-readable dump
// independent of any marshaling path.
func Describe(v Value) []string {
	return describeValue(v, 0)
}

func describeValue(v Value, indent int) []string {
	pad := indentString(indent)
	switch val := v.(type) {
	case nil:
		return []string{pad + "<nil>"}
	case NullValue:
		return []string{pad + "Null"}
	case BoolValue:
		return []string{pad + "Bool: " + boolText(val.V)}
	case ByteValue:
		return []string{pad + "Byte: " + formatTrimmed(float64(val.V))}
	case Int16Value:
		return []string{pad + "Int16: " + formatTrimmed(float64(val.Signed()))}
	case Int32Value:
		return []string{pad + "Int32: " + formatTrimmed(float64(val.V))}
	case Float32Value:
		return []string{pad + "Float32: " + formatTrimmed(float64(val.V))}
	case Float64Value:
		return []string{pad + "Float64: " + formatTrimmed(val.V)}
	case CharValue:
		return []string{pad + "Char: " + string(val.V)}
	case TextValue:
		return []string{pad + "Text: " + val.V}
	case DateTimeValue:
		return []string{pad + "DateTime: " + val.ISO8601()}
	case ColorValue:
		return []string{pad + "Color: " + val.String()}
	case UnitValue:
		return []string{pad + "Unit: " + val.String()}
	case PairValue:
		lines := []string{pad + "Pair:"}
		lines = append(lines, describeValue(val.First, indent+1)...)
		lines = append(lines, describeValue(val.Second, indent+1)...)
		return lines
	case TripletValue:
		lines := []string{pad + "Triplet:"}
		lines = append(lines, describeValue(val.First, indent+1)...)
		lines = append(lines, describeValue(val.Second, indent+1)...)
		lines = append(lines, describeValue(val.Third, indent+1)...)
		return lines
	case ListValue:
		lines := []string{pad + "List:"}
		for _, item := range val.Items {
			lines = append(lines, describeValue(item, indent+1)...)
		}
		return lines
	case MapValue:
		lines := []string{pad + "Map:"}
		for _, e := range val.Entries {
			lines = append(lines, indentString(indent+1)+e.Key+":")
			lines = append(lines, describeValue(e.Value, indent+2)...)
		}
		return lines
	case TypeRefValue:
		return []string{pad + "TypeRef: " + val.Name}
	case KnownTypeRefValue:
		return []string{pad + "KnownTypeRef: " + val.Name}
	case TypedArrayValue:
		lines := []string{pad + "TypedArray<" + val.TypeName + ">:"}
		for _, item := range val.Items {
			lines = append(lines, describeValue(item, indent+1)...)
		}
		return lines
	case OpaqueValue:
		line := pad + "Opaque: " + formatTrimmed(float64(val.Length)) + " bytes"
		if val.Extract.ObjectType != "" {
			line += " (" + val.Extract.ObjectType + ")"
		}
		return []string{line}
	case UnknownValue:
		return []string{pad + "Unknown: tag=" + formatTrimmed(float64(val.Tag)) + " offset=" + formatTrimmed(float64(val.Offset))}
	default:
		return []string{pad + v.Kind().String()}
	}
}

func indentString(n int) string {
	out := make([]byte, n*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
