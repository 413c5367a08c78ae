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


// Package query evaluates queries against in-memory collections.
//
// All functions are pure: they operate on an already-loaded slice, never
// mutate their input, and perform no I/O. A full query runs as a fixed
// pipeline:
//
//	filters -> keyword -> sort -> pagination
//
// Sorting sees the complete filtered set before the page is sliced, so page
// boundaries stay stable across successive pages of the same query.
//
// Fields are addressed by their JSON names, with dots descending into nested
// values (for example "address.city"). A criterion whose field does not
// resolve on an item is unsatisfied for that item; it is not an error.
package query
