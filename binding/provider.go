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
	"net/http"
)

// Provider resolves a derived parameter: a value computed from the request
// or the surrounding environment rather than extracted from a single field.
// Typical providers derive client IPs, authenticated principals, locales,
// or request-scoped services.
//
// A provider error aborts resolution and is rendered through the exception
// path; return values are passed to the action as-is.
type Provider interface {
	Provide(ctx context.Context, req *http.Request) (any, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, req *http.Request) (any, error)

// Provide implements Provider.
func (f ProviderFunc) Provide(ctx context.Context, req *http.Request) (any, error) {
	return f(ctx, req)
}
