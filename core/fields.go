package core

import (
	"reflect"
	"strings"
	"sync"
)

var fieldCache sync.Map // reflect.Type -> map[string][]int

// FieldsByJSONName maps the JSON field names of a struct type to their field
// index paths, following encoding/json promotion rules for embedded structs.
// The returned map is cached per type and must not be mutated.
func FieldsByJSONName(t reflect.Type) map[string][]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string][]int)
	}
	fields := make(map[string][]int)
	collectFields(t, nil, fields)
	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.(map[string][]int)
}

func collectFields(t reflect.Type, prefix []int, out map[string][]int) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, tagged := jsonFieldName(f)
		index := append(append([]int(nil), prefix...), i)
		if f.Anonymous && !tagged {
			embedded := f.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectFields(embedded, index, out)
				continue
			}
		}
		if name == "" {
			continue
		}
		if _, exists := out[name]; !exists {
			out[name] = index
		}
	}
}

// jsonFieldName returns the effective JSON name of a struct field and whether
// the json tag named it explicitly. Fields tagged "-" return an empty name.
func jsonFieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		return f.Name, false
	}
	return name, true
}
