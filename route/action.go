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

package route

import "context"

// Source identifies where a parameter value is extracted from.
type Source int

const (
	// SourcePath reads from the matched path placeholder values.
	SourcePath Source = iota

	// SourceQuery reads from the parsed URL query string.
	SourceQuery

	// SourceBody reads from the request body: a form-encoded field, or a
	// top-level field of a JSON body.
	SourceBody

	// SourceHeader reads from request headers.
	SourceHeader

	// SourceDerived resolves via an externally supplied provider registered
	// with the resolver; the request is not consulted directly.
	SourceDerived
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceQuery:
		return "query"
	case SourceBody:
		return "body"
	case SourceHeader:
		return "header"
	case SourceDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Kind is the semantic type a raw parameter value is coerced into.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Enum
	Time
	Duration
	StringSlice
	IntSlice
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case Enum:
		return "enum"
	case Time:
		return "time"
	case Duration:
		return "duration"
	case StringSlice:
		return "[]string"
	case IntSlice:
		return "[]integer"
	default:
		return "unknown"
	}
}

// IsSlice reports whether the kind gathers all values for a repeated key
// rather than the first.
func (k Kind) IsSlice() bool {
	return k == StringSlice || k == IntSlice
}

// Param describes how to extract and coerce one action argument.
//
// Strictness: a Required param that is absent from the request fails
// resolution; a non-Required absent param resolves to Default (which may be
// nil). Excludes lists parameter names that must not co-occur with this one.
// Validate carries constraint rules in go-playground/validator tag syntax
// (e.g. "min=1,max=100"), evaluated after coercion.
type Param struct {
	Name     string
	Source   Source
	Kind     Kind
	Required bool
	Default  any
	Enum     []string // allowed values when Kind == Enum
	Excludes []string // mutually exclusive parameter names
	Validate string   // validator tag string, empty for none
}

// PathParam declares a required parameter read from a path placeholder.
func PathParam(name string, kind Kind) Param {
	return Param{Name: name, Source: SourcePath, Kind: kind, Required: true}
}

// QueryParam declares an optional query-string parameter with a default.
func QueryParam(name string, kind Kind, def any) Param {
	return Param{Name: name, Source: SourceQuery, Kind: kind, Default: def}
}

// RequiredQueryParam declares a query-string parameter that must be present.
func RequiredQueryParam(name string, kind Kind) Param {
	return Param{Name: name, Source: SourceQuery, Kind: kind, Required: true}
}

// BodyParam declares an optional body field parameter with a default.
func BodyParam(name string, kind Kind, def any) Param {
	return Param{Name: name, Source: SourceBody, Kind: kind, Default: def}
}

// HeaderParam declares an optional header parameter with a default.
func HeaderParam(name string, kind Kind, def any) Param {
	return Param{Name: name, Source: SourceHeader, Kind: kind, Default: def}
}

// DerivedParam declares a parameter resolved by a registered provider.
func DerivedParam(name string) Param {
	return Param{Name: name, Source: SourceDerived, Required: true}
}

// ActionFunc is the callable unit bound to a route. Arguments arrive in the
// action's declared parameter order, one value per Param.
type ActionFunc func(ctx context.Context, args []any) (any, error)

// Action is an immutable descriptor of a callable endpoint.
// It is owned by the route table and never mutated after registration.
type Action struct {
	// Name identifies the action in logs and introspection output.
	Name string

	// Params is the ordered parameter list; the resolver produces exactly
	// one argument per entry.
	Params []Param

	// Format is an optional response-format hint ("json", "text") consulted
	// before Accept negotiation when wrapping a non-Response return value.
	Format string

	// Func is invoked with the resolved argument list.
	Func ActionFunc
}

// NewAction creates an action descriptor with the given parameter specs.
func NewAction(name string, fn ActionFunc, params ...Param) *Action {
	return &Action{Name: name, Params: params, Func: fn}
}

// WithFormat sets the response-format hint and returns the action for
// chaining during registration.
func (a *Action) WithFormat(format string) *Action {
	a.Format = format
	return a
}
