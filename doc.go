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

// Package athena is an HTTP request-dispatch kernel: it matches requests
// against a compiled route table, resolves typed action arguments from the
// request, invokes the action, and writes the response — with a listener
// pipeline observing and steering every step.
//
// # Quick Start
//
//	hello := route.NewAction("hello", func(ctx context.Context, args []any) (any, error) {
//	    return "Hello, " + args[0].(string), nil
//	}, route.PathParam("name", route.String))
//
//	table := route.NewTable()
//	table.MustRegister(route.New("hello", []string{"GET"}, "/hello/:name", hello))
//
//	kernel := athena.MustNew(table, athena.WithLogger(logger))
//	log.Fatal(kernel.Serve(":8080"))
//
// # Lifecycle
//
// Every request passes through fixed stages; listeners register per stage
// with a priority (higher runs first):
//
//	RequestStart → RouteMatched → ArgumentsResolving → ActionInvoking
//	    → ResponseReady → RequestEnd
//
// Any failure along the way runs the Exception stage instead, where a
// listener may substitute a recovery response; otherwise the configured
// error formatter renders the failure as {"code": ..., "message": ...}.
// RequestEnd always runs.
//
// A listener can short-circuit later steps by setting a response on the
// context: a RequestStart listener that sets one skips matching and
// invocation entirely, an ActionInvoking listener suppresses the action.
//
// # Matching
//
// Routes are tried in priority order (ties in declaration order). A route
// whose placeholder constraint rejects a segment simply yields to the next
// candidate; a path with no accepting route renders 404, and a path whose
// routes reject only the method renders 405 with an Allow header.
//
// # Packages
//
//   - route: route and action definitions, the compiled table, reverse URLs
//   - binding: typed argument resolution from path, query, body, header,
//     and derived sources
//   - errors: error-to-response formatting
package athena
