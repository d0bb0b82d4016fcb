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
	"errors"
	"net/http"
)

// Simple formats errors as compact JSON objects with a numeric code and a
// message:
//
//	{"code": 400, "message": "parameter \"limit\": expected integer"}
//
// Status resolution order: StatusResolver (if set), the error's own
// [ErrorType] declaration, then 500. Errors without a declared status are
// server faults: their message is replaced by the generic status text so no
// internal detail leaks, unless Debug is enabled.
type Simple struct {
	// Debug, when true, renders server-fault messages and details verbatim
	// instead of the sanitized status text. Never enable in production.
	Debug bool

	// StatusResolver determines the HTTP status from an error.
	// If nil, the ErrorType interface is consulted, defaulting to 500.
	StatusResolver func(err error) int
}

// NewSimple returns a Simple formatter with sanitized server-fault output.
func NewSimple() *Simple {
	return &Simple{}
}

// Format converts an error into a simple JSON response.
// Client-fault errors (those declaring a 4xx status) keep their message;
// machine codes and structured details are included when the error provides
// them via [ErrorCode] and [ErrorDetails].
func (f *Simple) Format(req *http.Request, err error) Response {
	status := f.determineStatus(err)

	message := err.Error()
	if status >= http.StatusInternalServerError && !f.Debug {
		// Server fault: never leak internals to the client.
		message = http.StatusText(status)
	}

	body := map[string]any{
		"code":    status,
		"message": message,
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		body["error"] = coded.Code()
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		if status < http.StatusInternalServerError || f.Debug {
			body["details"] = detailed.Details()
		}
	}

	var headers http.Header
	var headered ErrorHeaders
	if errors.As(err, &headered) {
		headers = headered.Headers()
	}

	return Response{
		Status:      status,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
		Headers:     headers,
	}
}

// determineStatus resolves the HTTP status code for an error.
func (f *Simple) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}

	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}

// ErrorHeaders allows errors to attach response headers, such as the Allow
// header on a 405.
type ErrorHeaders interface {
	Headers() http.Header
}

// Compile-time check that Simple implements Formatter.
var _ Formatter = (*Simple)(nil)
