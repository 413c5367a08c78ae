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

import "errors"

var (
	// ErrValidation indicates a caller-supplied entity or patch failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownField indicates a patch addressed a field the entity type does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrReservedField indicates a patch addressed a metadata field managed by the engine.
	ErrReservedField = errors.New("reserved field")

	// ErrIncompatibleValue indicates a patch value cannot be assigned to the target field.
	ErrIncompatibleValue = errors.New("incompatible value")
)
