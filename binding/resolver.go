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
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Tubbz-alt/athena-2/route"
)

// Resolver produces action argument lists from HTTP requests.
//
// A Resolver is safe for concurrent use after configuration: register all
// providers during startup, before serving requests.
type Resolver struct {
	providers map[string]Provider
	validate  *validator.Validate
}

// NewResolver creates a resolver with no providers registered.
func NewResolver() *Resolver {
	return &Resolver{
		providers: make(map[string]Provider),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterProvider binds a provider to a derived parameter name. The last
// registration for a name wins.
func (r *Resolver) RegisterProvider(name string, p Provider) {
	r.providers[name] = p
}

// Resolve produces one argument per declared parameter, in declaration
// order. pathParams carries the matcher's placeholder captures.
//
// Resolution stops at the first failing parameter; the returned error
// carries its own HTTP status (400 for missing/mistyped/incompatible
// parameters, 422 for validation failures).
func (r *Resolver) Resolve(ctx context.Context, req *http.Request, pathParams map[string]string, act *route.Action) ([]any, error) {
	args := make([]any, 0, len(act.Params))
	present := make(map[string]bool, len(act.Params))

	// The body getter is built once, on first use: body parsing consumes
	// the request body and is wasted work for body-free actions.
	var body ValueGetter

	for _, p := range act.Params {
		if p.Source == route.SourceDerived {
			val, err := r.provide(ctx, req, p)
			if err != nil {
				return nil, err
			}
			args = append(args, val)
			present[p.Name] = true

			continue
		}

		getter, err := r.getter(req, pathParams, p.Source, &body)
		if err != nil {
			return nil, err
		}

		val, ok, err := resolveOne(p, getter)
		if err != nil {
			return nil, err
		}
		if ok {
			present[p.Name] = true
		}

		if err := r.checkValidation(p, val, ok); err != nil {
			return nil, err
		}

		args = append(args, val)
	}

	for _, p := range act.Params {
		if !present[p.Name] {
			continue
		}
		for _, other := range p.Excludes {
			if present[other] {
				return nil, &IncompatibleParamsError{Params: []string{p.Name, other}}
			}
		}
	}

	return args, nil
}

func (r *Resolver) provide(ctx context.Context, req *http.Request, p route.Param) (any, error) {
	provider, ok := r.providers[p.Name]
	if !ok {
		return nil, &UnknownProviderError{Param: p.Name}
	}

	val, err := provider.Provide(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resolving derived parameter %q: %w", p.Name, err)
	}

	return val, nil
}

func (r *Resolver) getter(req *http.Request, pathParams map[string]string, src route.Source, body *ValueGetter) (ValueGetter, error) {
	switch src {
	case route.SourcePath:
		return mapGetter(pathParams), nil
	case route.SourceQuery:
		return valuesGetter(req.URL.Query()), nil
	case route.SourceHeader:
		return headerGetter(req.Header), nil
	case route.SourceBody:
		if *body == nil {
			g, err := bodyGetter(req)
			if err != nil {
				return nil, &MalformedBodyError{Err: err}
			}
			*body = g
		}

		return *body, nil
	default:
		return emptyGetter{}, nil
	}
}

// resolveOne extracts and coerces a single parameter. The bool result
// reports whether the parameter was present in the request.
func resolveOne(p route.Param, getter ValueGetter) (any, bool, error) {
	if p.Kind.IsSlice() {
		raws := getter.GetAll(p.Name)
		if len(raws) == 0 {
			return absent(p)
		}

		val, err := coerceSlice(p, raws)

		return val, true, err
	}

	raw, ok := getter.Get(p.Name)
	if !ok {
		return absent(p)
	}

	val, err := coerce(p, raw)

	return val, true, err
}

func absent(p route.Param) (any, bool, error) {
	if p.Required {
		return nil, false, &MissingParameterError{Param: p.Name, Source: p.Source.String()}
	}

	return p.Default, false, nil
}

// checkValidation runs the parameter's validator tag against the coerced
// value. Absent optional parameters are not validated; their defaults are
// trusted configuration.
func (r *Resolver) checkValidation(p route.Param, val any, wasPresent bool) error {
	if p.Validate == "" || !wasPresent || val == nil {
		return nil
	}

	if err := r.validate.Var(val, p.Validate); err != nil {
		return &ValidationError{Param: p.Name, Rule: p.Validate, Err: err}
	}

	return nil
}
