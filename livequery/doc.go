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


// Package livequery keeps a query result synchronized with its collection.
//
// A Query runs a supplied query function, exposes the latest settled view
// (loading, success, empty or error) and re-runs the function whenever the
// bound collection publishes a change, the declared inputs change, or
// Refresh is asked for. Consumers read the current view with Snapshot or
// follow the latest-wins Updates channel.
//
// Completions are ordered by request initiation, not by arrival: when a new
// run is triggered while one is in flight, the older run's result is
// discarded once it lands, so the view can never move backwards to stale
// data. Close tears the query down, unsubscribes it and discards anything
// still in flight.
package livequery
