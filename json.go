package viewstate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationResult is the outcome of ValidateJSON (spec.md §6).
type ValidationResult struct {
	Valid  bool
	Err    string
	Line   int
	Column int
}

// ParseJSON parses the natural JSON embedding of the data model back into
// a Value tree (spec.md §6). Object key order survives the round trip
// because decoding walks json.Decoder's token stream rather than
// unmarshaling into a Go map, which would sort keys on re-encode.
func ParseJSON(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		line, col := lineColumnForOffset(text, jsonErrorOffset(err))
		return nil, BadJSONError(line, col, "parse json: %v", err)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case nil:
		return NullValue{}, nil
	case bool:
		return BoolValue{V: t}, nil
	case string:
		return TextValue{V: t}, nil
	case json.Number:
		return numberValue(t), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func numberValue(n json.Number) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int32Value{V: int32(i)}
		}
	}
	f, _ := n.Float64()
	return Float64Value{V: f}
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return ListValue{Items: items}, nil
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	var entries []MapEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return fromDiscriminatedObject(entries), nil
}

// fromDiscriminatedObject recognizes the "type" discriminators spec.md §6
// names for Pair/Triplet/TypeRef/KnownTypeRef/Opaque; anything else stays
// a plain Map.
func fromDiscriminatedObject(entries []MapEntry) Value {
	m := MapValue{Entries: entries}
	typ, ok := m.Get(mapTypeDiscriminatorKey)
	if !ok {
		return m
	}
	typeText, ok := typ.(TextValue)
	if !ok {
		return m
	}
	switch typeText.V {
	case "Pair":
		first, _ := m.Get("first")
		second, _ := m.Get("second")
		return PairValue{First: orNull(first), Second: orNull(second)}
	case "Triplet":
		first, _ := m.Get("first")
		second, _ := m.Get("second")
		third, _ := m.Get("third")
		return TripletValue{First: orNull(first), Second: orNull(second), Third: orNull(third)}
	case "TypeRef":
		name, _ := m.Get("name")
		return TypeRefValue{Name: textOr(name, "")}
	case "KnownTypeRef":
		idx, _ := m.Get("index")
		return KnownTypeRefValue{Index: intOr(idx, 0), Name: textOr(firstOf(m, "name"), "")}
	case "Opaque":
		length, _ := m.Get("length")
		return OpaqueValue{Length: intOr(length, 0)}
	default:
		return m
	}
}

func orNull(v Value) Value {
	if v == nil {
		return NullValue{}
	}
	return v
}

func firstOf(m MapValue, key string) Value {
	v, _ := m.Get(key)
	return v
}

func textOr(v Value, def string) string {
	if t, ok := v.(TextValue); ok {
		return t.V
	}
	return def
}

func intOr(v Value, def int) int {
	switch n := v.(type) {
	case Int32Value:
		return int(n.V)
	case Float64Value:
		return int(n.V)
	default:
		return def
	}
}

// ToJSON renders a Value tree as the natural JSON embedding of the data
// model (spec.md §6): scalars as their JSON counterparts, List as array,
// Map as object (preserving entry order), Pair/Triplet/Opaque/TypeRef/
// KnownTypeRef as objects carrying an explicit "type" discriminator.
func ToJSON(v Value) (string, error) {
	var buf bytes.Buffer
	writeJSONValue(&buf, v)
	return buf.String(), nil
}

func writeJSONValue(buf *bytes.Buffer, v Value) {
	switch val := v.(type) {
	case nil, NullValue:
		buf.WriteString("null")
	case BoolValue:
		buf.WriteString(strconv.FormatBool(val.V))
	case ByteValue:
		buf.WriteString(strconv.Itoa(int(val.V)))
	case Int16Value:
		buf.WriteString(strconv.Itoa(int(val.Signed())))
	case Int32Value:
		buf.WriteString(strconv.Itoa(int(val.V)))
	case Float32Value:
		writeJSONNumber(buf, float64(val.V))
	case Float64Value:
		writeJSONNumber(buf, val.V)
	case CharValue:
		writeJSONString(buf, string(val.V))
	case TextValue:
		writeJSONString(buf, val.V)
	case DateTimeValue:
		writeJSONString(buf, val.ISO8601())
	case ColorValue:
		writeJSONString(buf, val.String())
	case UnitValue:
		writeJSONString(buf, val.String())
	case PairValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("Pair")},
			{"first", val.First},
			{"second", val.Second},
		})
	case TripletValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("Triplet")},
			{"first", val.First},
			{"second", val.Second},
			{"third", val.Third},
		})
	case ListValue:
		writeJSONArray(buf, val.Items)
	case MapValue:
		fields := make([]jsonField, 0, len(val.Entries))
		for _, e := range val.Entries {
			fields = append(fields, jsonField{e.Key, e.Value})
		}
		writeJSONObject(buf, fields)
	case TypeRefValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("TypeRef")},
			{"name", TextValue{V: val.Name}},
		})
	case KnownTypeRefValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("KnownTypeRef")},
			{"index", Int32Value{V: int32(val.Index)}},
			{"name", TextValue{V: val.Name}},
		})
	case TypedArrayValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("TypedArray")},
			{"typeName", TextValue{V: val.TypeName}},
			{"items", ListValue{Items: val.Items}},
		})
	case OpaqueValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("Opaque")},
			{"length", Int32Value{V: int32(val.Length)}},
			{"extract", opaqueExtractValue(val.Extract)},
		})
	case UnknownValue:
		writeJSONObject(buf, []jsonField{
			{"type", textField("Unknown")},
			{"tag", Int32Value{V: int32(val.Tag)}},
			{"offset", Int32Value{V: int32(val.Offset)}},
		})
	default:
		buf.WriteString("null")
	}
}

func textField(s string) Value { return TextValue{V: s} }

type jsonField struct {
	Key   string
	Value Value
}

func writeJSONObject(buf *bytes.Buffer, fields []jsonField) {
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, f.Key)
		buf.WriteByte(':')
		writeJSONValue(buf, f.Value)
	}
	buf.WriteByte('}')
}

func writeJSONArray(buf *bytes.Buffer, items []Value) {
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONValue(buf, item)
	}
	buf.WriteByte(']')
}

func writeJSONString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}

func writeJSONNumber(buf *bytes.Buffer, f float64) {
	encoded, err := json.Marshal(f)
	if err != nil {
		buf.WriteString("0")
		return
	}
	buf.Write(encoded)
}

func opaqueExtractValue(e OpaqueExtract) Value {
	var fields []MapEntry
	if e.ObjectType != "" {
		fields = append(fields, MapEntry{Key: "objectType", Value: TextValue{V: e.ObjectType}})
	}
	if e.Schema != nil {
		fields = append(fields, MapEntry{Key: "schema", Value: tableSchemaValue(e.Schema)})
	}
	if e.HasDiffgram {
		fields = append(fields, MapEntry{Key: "hasDiffgram", Value: BoolValue{V: true}})
	}
	if len(e.Strings) > 0 {
		fields = append(fields, MapEntry{Key: "strings", Value: stringListValue(e.Strings)})
	}
	return MapValue{Entries: fields}
}

// FormatJSON re-indents JSON text without altering key order or value
// content; encoding/json.Indent operates on the token stream directly
// rather than round-tripping through a Go map, so it can't scramble
// object key order the way a naive unmarshal-then-marshal would.
func FormatJSON(text string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		line, col := lineColumnForOffset(text, jsonErrorOffset(err))
		return "", BadJSONError(line, col, "format json: %v", err)
	}
	return buf.String(), nil
}

// ValidateJSON reports whether text is syntactically valid JSON, with the
// line/column of the first error derived by counting newlines up to the
// reported byte offset (spec.md §6).
func ValidateJSON(text string) ValidationResult {
	if json.Valid([]byte(text)) {
		return ValidationResult{Valid: true}
	}
	var v interface{}
	err := json.Unmarshal([]byte(text), &v)
	line, col := lineColumnForOffset(text, jsonErrorOffset(err))
	return ValidationResult{Valid: false, Err: err.Error(), Line: line, Column: col}
}

func jsonErrorOffset(err error) int64 {
	switch e := err.(type) {
	case *json.SyntaxError:
		return e.Offset
	case *json.UnmarshalTypeError:
		return e.Offset
	default:
		return 0
	}
}

// lineColumnForOffset converts a byte offset into a 1-based line/column
// pair by counting newlines up to that offset (spec.md §6).
func lineColumnForOffset(text string, offset int64) (line, col int) {
	line, col = 1, 1
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	for i := int64(0); i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}
