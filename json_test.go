package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJSONScalars(t *testing.T) {
	v, err := ParseJSON(`null`)
	assert.NoError(t, err)
	assert.Equal(t, NullValue{}, v)

	v, err = ParseJSON(`true`)
	assert.NoError(t, err)
	assert.Equal(t, BoolValue{V: true}, v)

	v, err = ParseJSON(`"hello"`)
	assert.NoError(t, err)
	assert.Equal(t, TextValue{V: "hello"}, v)

	v, err = ParseJSON(`42`)
	assert.NoError(t, err)
	assert.Equal(t, Int32Value{V: 42}, v)

	v, err = ParseJSON(`3.5`)
	assert.NoError(t, err)
	assert.Equal(t, Float64Value{V: 3.5}, v)
}

func TestParseJSONArray(t *testing.T) {
	v, err := ParseJSON(`[1, "two", null]`)
	assert.NoError(t, err)
	assert.Equal(t, ListValue{Items: []Value{Int32Value{V: 1}, TextValue{V: "two"}, NullValue{}}}, v)
}

// TestParseJSONObjectPreservesKeyOrder exercises the streaming-token
// parser's key-order guarantee: decoding does not pass through a Go map.
func TestParseJSONObjectPreservesKeyOrder(t *testing.T) {
	v, err := ParseJSON(`{"zebra": 1, "apple": 2, "mango": 3}`)
	assert.NoError(t, err)
	m := v.(MapValue)
	keys := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
}

func TestParseJSONDiscriminatedPair(t *testing.T) {
	v, err := ParseJSON(`{"type": "Pair", "first": 1, "second": 2}`)
	assert.NoError(t, err)
	assert.Equal(t, PairValue{First: Int32Value{V: 1}, Second: Int32Value{V: 2}}, v)
}

func TestParseJSONDiscriminatedTriplet(t *testing.T) {
	v, err := ParseJSON(`{"type": "Triplet", "first": 1, "second": 2, "third": 3}`)
	assert.NoError(t, err)
	assert.Equal(t, TripletValue{First: Int32Value{V: 1}, Second: Int32Value{V: 2}, Third: Int32Value{V: 3}}, v)
}

func TestParseJSONDiscriminatedTypeRef(t *testing.T) {
	v, err := ParseJSON(`{"type": "TypeRef", "name": "System.String"}`)
	assert.NoError(t, err)
	assert.Equal(t, TypeRefValue{Name: "System.String"}, v)
}

func TestParseJSONDiscriminatedKnownTypeRef(t *testing.T) {
	v, err := ParseJSON(`{"type": "KnownTypeRef", "index": 3, "name": "System.Int32"}`)
	assert.NoError(t, err)
	assert.Equal(t, KnownTypeRefValue{Index: 3, Name: "System.Int32"}, v)
}

func TestParseJSONDiscriminatedOpaque(t *testing.T) {
	v, err := ParseJSON(`{"type": "Opaque", "length": 10}`)
	assert.NoError(t, err)
	assert.Equal(t, OpaqueValue{Length: 10}, v)
}

func TestParseJSONPlainObjectWithTypeKeyStaysMap(t *testing.T) {
	v, err := ParseJSON(`{"type": "not-a-discriminator", "other": 1}`)
	assert.NoError(t, err)
	_, isMap := v.(MapValue)
	assert.True(t, isMap)
}

func TestParseJSONMalformedReturnsLineColumn(t *testing.T) {
	_, err := ParseJSON("{\n  \"a\": ,\n}")
	assert.Error(t, err)
	badJSON, ok := err.(*BadJSON)
	assert.True(t, ok)
	assert.Equal(t, 2, badJSON.Line)
}

func TestToJSONScalars(t *testing.T) {
	out, err := ToJSON(NullValue{})
	assert.NoError(t, err)
	assert.Equal(t, "null", out)

	out, err = ToJSON(ByteValue{V: 7})
	assert.NoError(t, err)
	assert.Equal(t, "7", out)

	out, err = ToJSON(TextValue{V: "hi\"there"})
	assert.NoError(t, err)
	assert.Equal(t, `"hi\"there"`, out)
}

func TestToJSONListAndMap(t *testing.T) {
	out, err := ToJSON(ListValue{Items: []Value{ByteValue{V: 1}, ByteValue{V: 2}}})
	assert.NoError(t, err)
	assert.Equal(t, "[1,2]", out)

	out, err = ToJSON(MapValue{Entries: []MapEntry{{Key: "a", Value: ByteValue{V: 1}}}})
	assert.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestToJSONPairEmitsDiscriminator(t *testing.T) {
	out, err := ToJSON(PairValue{First: ByteValue{V: 1}, Second: ByteValue{V: 2}})
	assert.NoError(t, err)
	assert.Equal(t, `{"type":"Pair","first":1,"second":2}`, out)
}

func TestToJSONThenParseJSONRoundTrip(t *testing.T) {
	original := ListValue{Items: []Value{
		TripletValue{First: ByteValue{V: 1}, Second: TextValue{V: "x"}, Third: NullValue{}},
		MapValue{Entries: []MapEntry{{Key: "k", Value: BoolValue{V: true}}}},
	}}
	text, err := ToJSON(original)
	assert.NoError(t, err)
	decoded, err := ParseJSON(text)
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestFormatJSONIndents(t *testing.T) {
	out, err := FormatJSON(`{"a":1,"b":2}`)
	assert.NoError(t, err)
	assert.Contains(t, out, "\n")
	assert.Contains(t, out, "  \"a\": 1")
}

func TestFormatJSONPreservesKeyOrder(t *testing.T) {
	out, err := FormatJSON(`{"zebra":1,"apple":2}`)
	assert.NoError(t, err)
	zIdx := indexOf(out, "zebra")
	aIdx := indexOf(out, "apple")
	assert.True(t, zIdx < aIdx, "FormatJSON must not reorder keys")
}

func TestFormatJSONInvalidErrors(t *testing.T) {
	_, err := FormatJSON(`{invalid`)
	assert.Error(t, err)
}

func TestValidateJSONValid(t *testing.T) {
	result := ValidateJSON(`{"a":1}`)
	assert.True(t, result.Valid)
}

func TestValidateJSONInvalidReportsLocation(t *testing.T) {
	result := ValidateJSON("{\n  \"a\": ,\n}")
	assert.False(t, result.Valid)
	assert.Equal(t, 2, result.Line)
	assert.NotEmpty(t, result.Err)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
