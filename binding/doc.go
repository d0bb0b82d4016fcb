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

// Package binding resolves typed action arguments from HTTP requests.
//
// A Resolver walks an action's declared parameter list and produces one
// value per parameter, extracting raw strings from the request (path
// placeholders, query string, body fields, headers) or from registered
// providers, then coercing them to the declared kind.
//
// # Resolution Rules
//
// Each parameter resolves independently:
//   - A present value is coerced to the parameter's kind; coercion failure
//     is a TypeError (400).
//   - An absent required parameter is a MissingParameterError (400).
//   - An absent optional parameter resolves to its default, which may be nil.
//   - Parameters listing each other in Excludes must not both be present;
//     violation is an IncompatibleParamsError (400).
//   - A parameter with a Validate tag is checked after coercion with
//     go-playground/validator; violation is a ValidationError (422).
//
// Slice kinds gather every value supplied for the key, preserving request
// order; scalar kinds take the first.
//
// # Example
//
//	resolver := binding.NewResolver()
//	resolver.RegisterProvider("clientIP", binding.ProviderFunc(clientIP))
//
//	args, err := resolver.Resolve(ctx, req, pathParams, action)
package binding
