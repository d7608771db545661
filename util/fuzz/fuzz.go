// Package fuzz exposes a go-fuzz entry point asserting that Decode never
// panics and always returns a well-typed Value tree, regardless of input.
package fuzz

import (
	"strings"

	viewstate "github.com/b71729/viewstate"
)

// Fuzz is run by go-fuzz.
func Fuzz(data []byte) int {
	result, err := viewstate.Decode(string(data))
	if err != nil {
		switch err.(type) {
		case *viewstate.BadBase64, *viewstate.EmptyInput:
			return 0
		default:
			return 1
		}
	}

	if result.Value == nil {
		panic("Decode returned a nil Value with no error")
	}

	// walking the tree must not panic for any Kind, and every node must
	// report a Kind from the known set.
	assertWalkable(result.Value)
	return 1
}

func assertWalkable(v viewstate.Value) {
	name := v.Kind().String()
	if name == "" || strings.HasPrefix(name, "Kind(") {
		panic("Value.Kind() is not one of the known kinds: " + name)
	}
	switch val := v.(type) {
	case viewstate.PairValue:
		assertWalkable(val.First)
		assertWalkable(val.Second)
	case viewstate.TripletValue:
		assertWalkable(val.First)
		assertWalkable(val.Second)
		assertWalkable(val.Third)
	case viewstate.ListValue:
		for _, item := range val.Items {
			assertWalkable(item)
		}
	case viewstate.TypedArrayValue:
		for _, item := range val.Items {
			assertWalkable(item)
		}
	case viewstate.MapValue:
		for _, e := range val.Entries {
			assertWalkable(e.Value)
		}
	}
}
