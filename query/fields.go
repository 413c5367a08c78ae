package query

import (
	"reflect"
	"strings"

	"github.com/poiesic/satchel/core"
)

// resolve reads the value at a dot-separated JSON field path of item. The
// boolean reports whether every segment of the path resolved; a nil pointer,
// an absent map key, or an undeclared field all resolve to false.
func resolve(item any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	v := reflect.ValueOf(item)
	for _, segment := range strings.Split(path, ".") {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}
		switch v.Kind() {
		case reflect.Struct:
			index, ok := core.FieldsByJSONName(v.Type())[segment]
			if !ok {
				return nil, false
			}
			field, err := v.FieldByIndexErr(index)
			if err != nil {
				return nil, false
			}
			v = field
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			v = v.MapIndex(reflect.ValueOf(segment).Convert(v.Type().Key()))
			if !v.IsValid() {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	v = indirect(v)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// indirect dereferences pointers and interfaces until a concrete value is
// reached. Nil anywhere along the way yields an invalid value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// stringsOf extracts the searchable text carried by a value: the value itself
// for string kinds, the elements for slices and arrays of string kinds.
func stringsOf(value any) []string {
	v := indirect(reflect.ValueOf(value))
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		return []string{v.String()}
	case reflect.Slice, reflect.Array:
		var out []string
		for i := 0; i < v.Len(); i++ {
			e := indirect(v.Index(i))
			if e.IsValid() && e.Kind() == reflect.String {
				out = append(out, e.String())
			}
		}
		return out
	}
	return nil
}
