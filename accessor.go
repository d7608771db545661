package viewstate

import "fmt"

// As writes v's content into dst, a pointer to one of the Go types a
// given Value kind can be expressed as. It returns an error when the
// variant can't be expressed as the requested type, the same contract
// shape as the teacher's Element.GetValue reflect-based accessor.
//
// As is a free function rather than a Value method so it can type-switch
// on the concrete variant without every variant needing its own
// (duplicated) accessor implementation.
func As(v Value, dst interface{}) error {
	switch typedDst := dst.(type) {
	case *string:
		switch val := v.(type) {
		case TextValue:
			*typedDst = val.V
			return nil
		case CharValue:
			*typedDst = string(val.V)
			return nil
		case DateTimeValue:
			*typedDst = val.ISO8601()
			return nil
		case ColorValue:
			*typedDst = val.String()
			return nil
		case UnitValue:
			*typedDst = val.String()
			return nil
		}
	case *bool:
		if val, ok := v.(BoolValue); ok {
			*typedDst = val.V
			return nil
		}
	case *byte:
		if val, ok := v.(ByteValue); ok {
			*typedDst = val.V
			return nil
		}
	case *int16:
		if val, ok := v.(Int16Value); ok {
			*typedDst = val.Signed()
			return nil
		}
	case *int32:
		switch val := v.(type) {
		case Int32Value:
			*typedDst = val.V
			return nil
		case ByteValue:
			*typedDst = int32(val.V)
			return nil
		}
	case *float32:
		if val, ok := v.(Float32Value); ok {
			*typedDst = val.V
			return nil
		}
	case *float64:
		switch val := v.(type) {
		case Float64Value:
			*typedDst = val.V
			return nil
		case UnitValue:
			*typedDst = val.N
			return nil
		}
	case *[]Value:
		switch val := v.(type) {
		case ListValue:
			*typedDst = val.Items
			return nil
		case TypedArrayValue:
			*typedDst = val.Items
			return nil
		}
	}
	return fmt.Errorf("As(%T): value of kind %s cannot be expressed as %T", dst, v.Kind(), dst)
}
