package query

// Query combines the four stages of the evaluation pipeline. Any stage may be
// left zero: no filters, no keyword, no sort, default pagination.
type Query struct {
	Filters []Criterion `json:"filters,omitempty"`
	Keyword string      `json:"keyword,omitempty"`
	Sort    Sort        `json:"sort,omitzero"`
	Page    PageRequest `json:"page,omitzero"`
}

// Apply evaluates q over items: filters, then keyword against the searchable
// fields, then sort, then pagination.
func Apply[T any](items []T, q Query, searchable []string) Page[T] {
	matched := ApplyFilters(items, q.Filters)
	matched = ApplyKeyword(matched, q.Keyword, searchable)
	matched = ApplySort(matched, q.Sort)
	return ApplyPage(matched, q.Page)
}
