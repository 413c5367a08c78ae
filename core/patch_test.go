package core

import (
	"errors"
	"reflect"
	"testing"
)

type patchContact struct {
	Meta
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Age      int      `json:"age"`
	Tags     []string `json:"tags"`
	Favorite bool     `json:"favorite"`
	LastSeen Millis   `json:"lastSeen"`
	Note     string   `json:"-"`
}

func TestPatch_Apply(t *testing.T) {
	tests := []struct {
		name    string
		patch   *Patch
		target  patchContact
		want    patchContact
		wantErr error
	}{
		{
			name:   "set single field",
			patch:  NewPatch().Set("name", "Ada"),
			target: patchContact{Name: "Grace", Email: "g@example.org"},
			want:   patchContact{Name: "Ada", Email: "g@example.org"},
		},
		{
			name:   "set multiple fields",
			patch:  NewPatch().Set("name", "Ada").Set("favorite", true),
			target: patchContact{Name: "Grace"},
			want:   patchContact{Name: "Ada", Favorite: true},
		},
		{
			name:   "unset clears to zero value",
			patch:  NewPatch().Unset("email"),
			target: patchContact{Name: "Grace", Email: "g@example.org"},
			want:   patchContact{Name: "Grace"},
		},
		{
			name:   "nil value behaves like unset",
			patch:  NewPatch().Set("tags", nil),
			target: patchContact{Tags: []string{"work"}},
			want:   patchContact{},
		},
		{
			name:   "later operation wins",
			patch:  NewPatch().Set("name", "Ada").Set("name", "Hopper"),
			target: patchContact{},
			want:   patchContact{Name: "Hopper"},
		},
		{
			name:   "numeric conversion",
			patch:  NewPatch().Set("lastSeen", int64(1717200000000)),
			target: patchContact{},
			want:   patchContact{LastSeen: Millis(1717200000000)},
		},
		{
			name:   "untouched fields survive",
			patch:  NewPatch().Set("age", 42),
			target: patchContact{Name: "Grace", Tags: []string{"navy"}},
			want:   patchContact{Name: "Grace", Age: 42, Tags: []string{"navy"}},
		},
		{
			name:    "unknown field",
			patch:   NewPatch().Set("nickname", "gh"),
			target:  patchContact{},
			wantErr: ErrUnknownField,
		},
		{
			name:    "excluded field is unknown",
			patch:   NewPatch().Set("Note", "private"),
			target:  patchContact{},
			wantErr: ErrUnknownField,
		},
		{
			name:    "id is reserved",
			patch:   NewPatch().Set("id", "custom"),
			target:  patchContact{},
			wantErr: ErrReservedField,
		},
		{
			name:    "createTime is reserved",
			patch:   NewPatch().Unset("createTime"),
			target:  patchContact{},
			wantErr: ErrReservedField,
		},
		{
			name:    "updateTime is reserved",
			patch:   NewPatch().Set("updateTime", NowMillis()),
			target:  patchContact{},
			wantErr: ErrReservedField,
		},
		{
			name:    "incompatible value",
			patch:   NewPatch().Set("age", "forty-two"),
			target:  patchContact{},
			wantErr: ErrIncompatibleValue,
		},
		{
			name:    "string to slice is incompatible",
			patch:   NewPatch().Set("tags", "work"),
			target:  patchContact{},
			wantErr: ErrIncompatibleValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.target
			err := tt.patch.Apply(&got)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Apply() error = %v, does not wrap ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPatch_Fields(t *testing.T) {
	p := NewPatch().Set("name", "Ada").Unset("email").Set("age", 1)

	want := []string{"name", "email", "age"}
	if got := p.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
	if got := p.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestPatch_Apply_NilTarget(t *testing.T) {
	var target *patchContact
	err := NewPatch().Set("name", "Ada").Apply(target)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Apply(nil) error = %v, want ErrValidation", err)
	}
}
