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

// Package errors turns failures into wire-ready HTTP error responses.
//
// The package is framework-agnostic: a [Formatter] converts an error into a
// [Response] carrying status, content type, headers, and a body value ready
// for serialization. Errors participate in formatting by implementing the
// optional [ErrorType], [ErrorCode], and [ErrorDetails] interfaces.
//
// The default [Simple] formatter produces compact JSON bodies:
//
//	{"code": 404, "message": "No route found for 'GET /missing'"}
//
// Errors that do not declare a status render as a sanitized 500 with no
// internal detail, unless the formatter runs in debug mode.
package errors
