package livequery

import "reflect"

// Status is the consumer-facing view state of a live query, always derived
// from the most recent settled run. Empty is success with zero results,
// kept distinct so consumers can render an empty-state affordance without
// special-casing.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// Snapshot is one view of a live query: the status, the data behind it, and
// the failure when Status is StatusError. While a run is in flight the
// snapshot keeps the previous data under StatusLoading, leaving stale-data
// display at the consumer's discretion.
type Snapshot[R any] struct {
	Status Status
	Data   R
	Err    error
}

// settle derives the snapshot for a completed run. A non-nil empty predicate
// overrides the default emptiness rule.
func settle[R any](data R, err error, empty func(any) bool) Snapshot[R] {
	if err != nil {
		return Snapshot[R]{Status: StatusError, Err: err}
	}

	isEmptyResult := isEmpty(data)
	if empty != nil {
		isEmptyResult = empty(data)
	}
	if isEmptyResult {
		return Snapshot[R]{Status: StatusEmpty, Data: data}
	}
	return Snapshot[R]{Status: StatusSuccess, Data: data}
}

// isEmpty reports whether a successful result renders as empty: anything
// exposing IsEmpty(), zero-length slices, maps and arrays, nil pointers.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if e, ok := v.(interface{ IsEmpty() bool }); ok {
		return e.IsEmpty()
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
