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


// Package domain holds the concrete entity types and services built on the
// generic collection engine: chat sessions, contacts and invoices.
//
// Each service is a thin composition of a collection with its Config
// (storage key, searchable fields, validator) plus query methods expressed
// through FindAll. Services hold no state of their own and never touch
// persistence directly.
//
// Construct all services at application start with New; there are no
// package-level instances.
package domain
