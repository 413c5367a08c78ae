package query

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ApplySort returns a copy of items ordered by the sort specification. The
// sort is stable: ties keep their input order, which keeps pagination
// deterministic. String fields use locale-aware ordering, numeric fields
// numeric ordering. Items on which the field does not resolve sort last
// regardless of direction.
func ApplySort[T any](items []T, s Sort) []T {
	if s.Field == "" {
		return items
	}
	coll := collate.New(language.Und)
	desc := s.Order == OrderDesc

	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := resolve(a, s.Field)
		bv, bok := resolve(b, s.Field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		cmp, ordered := compareValues(av, bv, coll)
		if !ordered {
			return 0
		}
		if desc {
			return -cmp
		}
		return cmp
	})
	return out
}
