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
	"fmt"
	"net/http"
)

// HTTPError is a client-facing error with a declared status code.
// Actions raise it to produce a specific status instead of a generic 500.
//
// Example:
//
//	return nil, errors.NewHTTP(http.StatusForbidden, "account suspended")
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error // optional wrapped cause
}

// NewHTTP creates an HTTPError with the given status and message.
func NewHTTP(status int, message string) *HTTPError {
	return &HTTPError{StatusCode: status, Message: message}
}

// NewHTTPf creates an HTTPError with a formatted message.
func NewHTTPf(status int, format string, args ...any) *HTTPError {
	return &HTTPError{StatusCode: status, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an HTTPError wrapping an underlying cause.
// The cause is available via errors.Unwrap but never rendered to the client.
func Wrap(status int, message string, err error) *HTTPError {
	return &HTTPError{StatusCode: status, Message: message, Err: err}
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return http.StatusText(e.StatusCode)
}

// HTTPStatus implements ErrorType.
func (e *HTTPError) HTTPStatus() int {
	return e.StatusCode
}

// Unwrap returns the wrapped cause for errors.Is/As compatibility.
func (e *HTTPError) Unwrap() error {
	return e.Err
}
