// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"reflect"
)

// reservedPatchFields are the metadata fields the engine manages itself.
var reservedPatchFields = map[string]bool{
	"id":         true,
	"createTime": true,
	"updateTime": true,
}

type patchOp struct {
	field string
	value any
	unset bool
}

// Patch is an explicit description of a partial update: fields to assign and
// fields to clear, addressed by JSON field name. A field the patch does not
// mention is left untouched, and clearing is always explicit through Unset,
// so "omitted" and "cleared" are never ambiguous.
type Patch struct {
	ops []patchOp
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{}
}

// Set records an assignment of value to the named field.
// A nil value is equivalent to Unset.
func (p *Patch) Set(field string, value any) *Patch {
	p.ops = append(p.ops, patchOp{field: field, value: value})
	return p
}

// Unset records an explicit clear of the named field to its zero value.
func (p *Patch) Unset(field string) *Patch {
	p.ops = append(p.ops, patchOp{field: field, unset: true})
	return p
}

// Len returns the number of recorded operations.
func (p *Patch) Len() int {
	return len(p.ops)
}

// Fields returns the field names the patch touches, in recording order.
func (p *Patch) Fields() []string {
	fields := make([]string, len(p.ops))
	for i, op := range p.ops {
		fields[i] = op.field
	}
	return fields
}

// Apply mutates target according to the recorded operations. Operations are
// applied in order and application stops at the first failure, which can
// leave target partially updated. Apply patches to a copy and keep the copy
// only on success, as the collection engine does.
//
// Fails with ErrReservedField for metadata fields, ErrUnknownField for names
// the entity type does not declare, and ErrIncompatibleValue when a value
// cannot be assigned or numerically converted to the target field. All
// failures wrap ErrValidation.
func (p *Patch) Apply(target Entity) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w: patch target must be a non-nil pointer", ErrValidation)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: patch target must point to a struct", ErrValidation)
	}

	fields := FieldsByJSONName(v.Type())
	for _, op := range p.ops {
		if reservedPatchFields[op.field] {
			return fmt.Errorf("%w: %w: %s", ErrValidation, ErrReservedField, op.field)
		}
		index, ok := fields[op.field]
		if !ok {
			return fmt.Errorf("%w: %w: %s", ErrValidation, ErrUnknownField, op.field)
		}
		field := v.FieldByIndex(index)
		if op.unset || op.value == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		if err := assignField(field, reflect.ValueOf(op.value)); err != nil {
			return fmt.Errorf("%w: field %s: %w", ErrValidation, op.field, err)
		}
	}
	return nil
}

// assignField sets dst to src, converting between numeric kinds and between
// named string kinds. Conversions that would reinterpret the value (such as
// integer-to-string) are rejected.
func assignField(dst reflect.Value, src reflect.Value) error {
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}
	if convertibleKinds(dst.Kind(), src.Kind()) {
		dst.Set(src.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("%w: cannot assign %s to %s", ErrIncompatibleValue, src.Type(), dst.Type())
}

func convertibleKinds(dst, src reflect.Kind) bool {
	if dst == reflect.String && src == reflect.String {
		return true
	}
	return isNumericKind(dst) && isNumericKind(src)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
