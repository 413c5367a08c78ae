package query

import (
	"reflect"

	"golang.org/x/text/collate"
)

// equalValues reports whether two values are equal for filtering purposes.
// Numeric values compare by magnitude across integer and float kinds, so a
// JSON-decoded float64(30) equals an int field holding 30.
func equalValues(a, b any) bool {
	if an, ok := numericOf(a); ok {
		bn, ok := numericOf(b)
		return ok && an == bn
	}
	if as, ok := stringOf(a); ok {
		bs, ok := stringOf(b)
		return ok && as == bs
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two values: -1, 0 or +1. The boolean reports whether
// the values are mutually ordered at all; mixing a string with a number, or
// comparing two booleans, is not an ordering.
func compareValues(a, b any, coll *collate.Collator) (int, bool) {
	if an, ok := numericOf(a); ok {
		bn, ok := numericOf(b)
		if !ok {
			return 0, false
		}
		switch {
		case an < bn:
			return -1, true
		case an > bn:
			return 1, true
		}
		return 0, true
	}
	if as, ok := stringOf(a); ok {
		bs, ok := stringOf(b)
		if !ok {
			return 0, false
		}
		return coll.CompareString(as, bs), true
	}
	return 0, false
}

// numericOf normalizes any integer or float kind to a float64.
func numericOf(value any) (float64, bool) {
	v := indirect(reflect.ValueOf(value))
	if !v.IsValid() {
		return 0, false
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// stringOf unwraps string kinds, including named string types.
func stringOf(value any) (string, bool) {
	v := indirect(reflect.ValueOf(value))
	if v.IsValid() && v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}
