package query

import (
	"reflect"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ApplyFilters returns the items satisfying every criterion. An item on which
// a criterion's field does not resolve fails that criterion and is dropped.
func ApplyFilters[T any](items []T, criteria []Criterion) []T {
	if len(criteria) == 0 {
		return items
	}
	coll := collate.New(language.Und)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, criteria, coll) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, criteria []Criterion, coll *collate.Collator) bool {
	for _, c := range criteria {
		if !matches(item, c, coll) {
			return false
		}
	}
	return true
}

func matches(item any, c Criterion, coll *collate.Collator) bool {
	value, ok := resolve(item, c.Field)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		return equalValues(value, c.Value)
	case OpNeq:
		return !equalValues(value, c.Value)
	case OpContains:
		return containsValue(value, c.Value)
	case OpGte:
		cmp, ordered := compareValues(value, c.Value, coll)
		return ordered && cmp >= 0
	case OpLte:
		cmp, ordered := compareValues(value, c.Value, coll)
		return ordered && cmp <= 0
	case OpIn:
		return inValues(value, c.Value)
	}
	return false
}

// containsValue implements the contains operator: substring match on string
// fields, element membership on slice and array fields.
func containsValue(field, want any) bool {
	v := indirect(reflect.ValueOf(field))
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.String:
		substr, ok := stringOf(want)
		return ok && strings.Contains(v.String(), substr)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			e := indirect(v.Index(i))
			if e.IsValid() && equalValues(e.Interface(), want) {
				return true
			}
		}
	}
	return false
}

// inValues implements the in operator: the field value must equal one of the
// elements of want, which is expected to be a slice or array.
func inValues(field, want any) bool {
	v := indirect(reflect.ValueOf(want))
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		e := indirect(v.Index(i))
		if e.IsValid() && equalValues(field, e.Interface()) {
			return true
		}
	}
	return false
}
