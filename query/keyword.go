package query

import "strings"

// ApplyKeyword returns the items whose searchable fields contain keyword as a
// case-insensitive substring. A blank or whitespace-only keyword is a no-op.
// With no searchable fields declared, a non-blank keyword matches nothing.
func ApplyKeyword[T any](items []T, keyword string, searchable []string) []T {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesKeyword(item, needle, searchable) {
			out = append(out, item)
		}
	}
	return out
}

func matchesKeyword[T any](item T, needle string, searchable []string) bool {
	for _, field := range searchable {
		value, ok := resolve(item, field)
		if !ok {
			continue
		}
		for _, s := range stringsOf(value) {
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	}
	return false
}
