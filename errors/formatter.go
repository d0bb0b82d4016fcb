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

package errors

import (
	"net/http"
)

// Formatter defines how errors are formatted in HTTP responses.
// Implementations work with any HTTP handler; they never write to the
// network themselves.
//
// Example:
//
//	formatter := errors.NewSimple()
//	response := formatter.Format(req, err)
//	w.Header().Set("Content-Type", response.ContentType)
//	w.WriteHeader(response.Status)
//	json.NewEncoder(w).Encode(response.Body)
type Formatter interface {
	// Format converts an error into HTTP response components.
	//
	// Parameters:
	//   - req: the HTTP request being answered (may inform the body)
	//   - err: the error to format
	//
	// Returns a Response containing status code, content type, and body.
	Format(req *http.Request, err error) Response
}

// Response represents a formatted error response.
// It contains all components needed to write an HTTP error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body (marshaled to JSON by the caller).
	Body any

	// Headers contains additional headers to set (optional).
	// Used for 405 responses to carry the Allow header.
	Headers http.Header
}

// ErrorType allows errors to declare their own HTTP status code.
// Errors that implement this interface are treated as client-facing:
// their status and message are rendered verbatim.
type ErrorType interface {
	HTTPStatus() int
}

// ErrorCode allows errors to declare a stable machine-readable code
// (e.g., "missing_parameter") included alongside the numeric status.
type ErrorCode interface {
	Code() string
}

// ErrorDetails allows errors to attach structured detail to the response
// body, such as a list of violated validation constraints.
type ErrorDetails interface {
	Details() any
}
