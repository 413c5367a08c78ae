package query

import (
	"reflect"
	"testing"

	"github.com/poiesic/satchel/core"
)

func TestApplySort(t *testing.T) {
	items := []contact{
		{Name: "Bob", Age: 30},
		{Name: "Amy", Age: 25},
	}

	tests := []struct {
		name string
		sort Sort
		want []string
	}{
		{
			name: "string ascending",
			sort: Asc("name"),
			want: []string{"Amy", "Bob"},
		},
		{
			name: "string descending",
			sort: Desc("name"),
			want: []string{"Bob", "Amy"},
		},
		{
			name: "numeric ascending",
			sort: Asc("age"),
			want: []string{"Amy", "Bob"},
		},
		{
			name: "numeric descending",
			sort: Desc("age"),
			want: []string{"Bob", "Amy"},
		},
		{
			name: "zero sort keeps order",
			sort: Sort{},
			want: []string{"Bob", "Amy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contactNames(ApplySort(items, tt.sort))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplySort(%+v) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestApplySort_Stable(t *testing.T) {
	items := []contact{
		{Name: "Cleo", Age: 30},
		{Name: "Amy", Age: 30},
		{Name: "Bob", Age: 30},
		{Name: "Dan", Age: 25},
	}

	got := contactNames(ApplySort(items, Asc("age")))
	want := []string{"Dan", "Cleo", "Amy", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApplySort() = %v, want %v (ties keep input order)", got, want)
	}
}

func TestApplySort_MissingFieldSortsLast(t *testing.T) {
	items := []contact{
		{Name: "Noor", Address: &address{City: "Utrecht"}},
		{Name: "Bram"},
		{Name: "Ada", Address: &address{City: "Delft"}},
	}

	tests := []struct {
		name string
		sort Sort
		want []string
	}{
		{
			name: "ascending",
			sort: Asc("address.city"),
			want: []string{"Ada", "Noor", "Bram"},
		},
		{
			name: "descending",
			sort: Desc("address.city"),
			want: []string{"Noor", "Ada", "Bram"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contactNames(ApplySort(items, tt.sort))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplySort(%+v) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestApplySort_LocaleAware(t *testing.T) {
	items := []contact{
		{Name: "Zoe"},
		{Name: "Émile"},
		{Name: "Adam"},
	}

	got := contactNames(ApplySort(items, Asc("name")))
	want := []string{"Adam", "Émile", "Zoe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApplySort() = %v, want %v (accented initial orders by base letter)", got, want)
	}
}

func TestApplySort_Timestamps(t *testing.T) {
	items := []contact{
		{Meta: core.Meta{ID: "a", UpdateTime: 200}, Name: "older"},
		{Meta: core.Meta{ID: "b", UpdateTime: 300}, Name: "newest"},
		{Meta: core.Meta{ID: "c", UpdateTime: 100}, Name: "oldest"},
	}

	got := contactNames(ApplySort(items, Desc("updateTime")))
	want := []string{"newest", "older", "oldest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApplySort() = %v, want %v", got, want)
	}
}

func TestApplySort_DoesNotMutateInput(t *testing.T) {
	items := []contact{
		{Name: "Bob"},
		{Name: "Amy"},
	}
	ApplySort(items, Asc("name"))

	if items[0].Name != "Bob" {
		t.Errorf("input mutated: %v", contactNames(items))
	}
}
