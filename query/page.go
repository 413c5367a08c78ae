package query

// UnpagedSize is the page size used when a request does not name one. It is
// effectively "everything", which suits collections rendered fully in memory;
// callers with large collections should pass an explicit size.
const UnpagedSize = 1 << 30

// PageRequest selects a 1-based page of a given size. The zero value
// normalizes to page 1 with UnpagedSize.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (r PageRequest) normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Size < 1 {
		r.Size = UnpagedSize
	}
	return r
}

// Page is one page of query results together with the totals describing the
// full filtered set it was sliced from.
type Page[T any] struct {
	Content    []T `json:"content"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
}

// IsEmpty reports whether the page carries no items.
func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}

// ApplyPage slices items into the requested page. A request beyond the last
// page returns empty content with the totals intact; it is not an error.
func ApplyPage[T any](items []T, req PageRequest) Page[T] {
	req = req.normalize()
	total := len(items)

	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Size - 1) / req.Size
	}

	content := []T{}
	if req.Page <= totalPages {
		start := (req.Page - 1) * req.Size
		end := start + req.Size
		if end > total {
			end = total
		}
		content = items[start:end:end]
	}

	return Page[T]{
		Content:    content,
		Total:      total,
		Page:       req.Page,
		Size:       req.Size,
		TotalPages: totalPages,
	}
}
