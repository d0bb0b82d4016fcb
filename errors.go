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

package athena

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrStreamedContent is returned by Response.SetContent when replacing
	// the content of a streamed response with anything but nil.
	ErrStreamedContent = errors.New("cannot replace content of a streamed response")

	// ErrNoResponse is rendered when the pipeline completes without any
	// stage producing a response. Indicates a misbehaving action or
	// listener chain.
	ErrNoResponse = errors.New("pipeline produced no response")

	// ErrServerClosed is returned by Serve after Shutdown completes.
	ErrServerClosed = http.ErrServerClosed
)

// NotFoundError indicates no route matched the request path.
type NotFoundError struct {
	Method string
	Path   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No route found for '%s %s'", e.Method, e.Path)
}

// HTTPStatus returns 404.
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// MethodNotAllowedError indicates the path matched routes, but none accepts
// the request method.
type MethodNotAllowedError struct {
	Method  string
	Path    string
	Allowed []string // sorted, deduplicated
}

// Error implements the error interface.
func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("No route found for '%s %s': Method Not Allowed (Allow: %s)",
		e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

// HTTPStatus returns 405.
func (e *MethodNotAllowedError) HTTPStatus() int { return http.StatusMethodNotAllowed }

// Headers returns the Allow header advertised to the client.
func (e *MethodNotAllowedError) Headers() http.Header {
	h := make(http.Header, 1)
	h.Set("Allow", strings.Join(e.Allowed, ", "))

	return h
}

// PanicError wraps a panic recovered during action invocation or listener
// dispatch. The recovered value and stack are preserved for logging; the
// client sees a sanitized 500.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// HTTPStatus returns 500.
func (e *PanicError) HTTPStatus() int { return http.StatusInternalServerError }
