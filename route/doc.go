// Copyright 2026 The Athena Authors
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

// Package route provides route and action definitions and the compiled
// route table consumed by the dispatch kernel.
//
// This package contains:
//   - Route: a named mapping from method set + path pattern to an Action,
//     with per-placeholder constraints (int, UUID, regex, enum, ...)
//   - Action: an immutable descriptor of a callable endpoint with a typed
//     parameter list
//   - Param: how one action argument is extracted and coerced
//   - Table: the registration surface, compiled once at startup and
//     read-only thereafter
//
// Routes are plain values built through an explicit registration API; no
// reflection-based discovery is involved. A declarative YAML loader is
// available for route tables maintained outside of code (see LoadYAML).
//
// # Route Definition
//
//	show := route.NewAction("user.show", showUser,
//	    route.PathParam("id", route.Int),
//	)
//	r := route.New("user.show", []string{"GET"}, "/users/:id", show).WhereInt("id")
//
//	table := route.NewTable()
//	table.MustRegister(r)
//	table.MustCompile()
//
// All registration happens during a single-threaded configuration phase.
// After Compile the table is immutable and safe for concurrent reads
// without locking.
package route
