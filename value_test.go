package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	testCases := []struct {
		kind   Kind
		output string
	}{
		{KindNull, "Null"},
		{KindBool, "Bool"},
		{KindText, "Text"},
		{KindOpaque, "Opaque"},
		{KindUnknown, "Unknown"},
		{Kind(999), "Kind(999)"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.output, testCase.kind.String(), testCase)
	}
}

func TestColorValueString(t *testing.T) {
	testCases := []struct {
		color  ColorValue
		output string
	}{
		{ColorValue{R: 255, G: 0, B: 0, A: 255}, "rgba(255,0,0,1.00)"},
		{ColorValue{R: 0, G: 0, B: 0, A: 0}, "rgba(0,0,0,0.00)"},
		{ColorValue{R: 10, G: 20, B: 30, A: 128}, "rgba(10,20,30,0.50)"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.output, testCase.color.String(), testCase)
	}
}

func TestUnitValueString(t *testing.T) {
	testCases := []struct {
		unit   UnitValue
		output string
	}{
		{UnitValue{N: 12, Kind: UnitPixel}, "12px"},
		{UnitValue{N: 33.5, Kind: UnitPercentage}, "33.5%"},
		{UnitValue{N: 0, Kind: UnitNone}, "0"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.output, testCase.unit.String(), testCase)
	}
}

func TestMapValueGet(t *testing.T) {
	m := MapValue{Entries: []MapEntry{
		{Key: "a", Value: Int32Value{V: 1}},
		{Key: "b", Value: TextValue{V: "two"}},
	}}
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, TextValue{V: "two"}, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestInt16ValueSigned(t *testing.T) {
	assert.Equal(t, int16(-1), Int16Value{Raw: 0xFFFF}.Signed())
	assert.Equal(t, int16(1234), Int16Value{Raw: 1234}.Signed())
}
