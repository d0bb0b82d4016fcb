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

package binding

import (
	"fmt"
	"net/http"
	"strings"
)

// MissingParameterError indicates a required parameter was absent from the
// request. Rendered as 400.
type MissingParameterError struct {
	Param  string
	Source string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required %s parameter %q", e.Source, e.Param)
}

// HTTPStatus returns the status code this error renders as.
func (e *MissingParameterError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns a machine-readable error code.
func (e *MissingParameterError) Code() string { return "missing_parameter" }

// Details returns structured information for the response body.
func (e *MissingParameterError) Details() any {
	return map[string]string{"parameter": e.Param, "source": e.Source}
}

// TypeError indicates a parameter value could not be coerced to its
// declared kind. Rendered as 400.
type TypeError struct {
	Param string
	Kind  string
	Value string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("parameter %q: cannot convert %q to %s", e.Param, e.Value, e.Kind)
}

// HTTPStatus returns the status code this error renders as.
func (e *TypeError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns a machine-readable error code.
func (e *TypeError) Code() string { return "invalid_parameter_type" }

// Details returns structured information for the response body.
func (e *TypeError) Details() any {
	return map[string]string{"parameter": e.Param, "expected": e.Kind, "value": e.Value}
}

// IncompatibleParamsError indicates two mutually exclusive parameters were
// both supplied. Rendered as 400.
type IncompatibleParamsError struct {
	Params []string
}

// Error implements the error interface.
func (e *IncompatibleParamsError) Error() string {
	return fmt.Sprintf("parameters %s are mutually exclusive", strings.Join(e.Params, " and "))
}

// HTTPStatus returns the status code this error renders as.
func (e *IncompatibleParamsError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns a machine-readable error code.
func (e *IncompatibleParamsError) Code() string { return "incompatible_parameters" }

// Details returns structured information for the response body.
func (e *IncompatibleParamsError) Details() any {
	return map[string][]string{"parameters": e.Params}
}

// ValidationError indicates a coerced value failed its declared validation
// rules. Rendered as 422.
type ValidationError struct {
	Param string
	Rule  string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q failed validation rule %q", e.Param, e.Rule)
}

// HTTPStatus returns the status code this error renders as.
func (e *ValidationError) HTTPStatus() int { return http.StatusUnprocessableEntity }

// Code returns a machine-readable error code.
func (e *ValidationError) Code() string { return "validation_failed" }

// Details returns structured information for the response body.
func (e *ValidationError) Details() any {
	return map[string]string{"parameter": e.Param, "rule": e.Rule}
}

// Unwrap returns the underlying validator error.
func (e *ValidationError) Unwrap() error { return e.Err }

// MalformedBodyError indicates the request body could not be parsed under
// its declared Content-Type. The client sent it, the client fixes it:
// rendered as 400.
type MalformedBodyError struct {
	Err error
}

// Error implements the error interface.
func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Err)
}

// HTTPStatus returns the status code this error renders as.
func (e *MalformedBodyError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns a machine-readable error code.
func (e *MalformedBodyError) Code() string { return "malformed_body" }

// Unwrap returns the underlying parse error.
func (e *MalformedBodyError) Unwrap() error { return e.Err }

// UnknownProviderError indicates a derived parameter referenced a provider
// that was never registered. This is a configuration mistake, rendered as
// 500.
type UnknownProviderError struct {
	Param string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("no provider registered for derived parameter %q", e.Param)
}

// HTTPStatus returns the status code this error renders as.
func (e *UnknownProviderError) HTTPStatus() int { return http.StatusInternalServerError }
