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
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// ValueGetter abstracts raw string extraction from one request source.
// Implementations exist for path placeholders, query strings, bodies, and
// headers; all return values as they appeared on the wire, before coercion.
type ValueGetter interface {
	// Get returns the first value for the key and whether it was present.
	Get(key string) (string, bool)

	// GetAll returns every value for the key in request order.
	GetAll(key string) []string

	// Has reports whether the key is present, even with an empty value.
	Has(key string) bool
}

// mapGetter serves path placeholder values from the matcher's output.
type mapGetter map[string]string

func (m mapGetter) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapGetter) GetAll(key string) []string {
	if v, ok := m[key]; ok {
		return []string{v}
	}

	return nil
}

func (m mapGetter) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// valuesGetter serves url.Values: query strings and form bodies.
type valuesGetter url.Values

func (v valuesGetter) Get(key string) (string, bool) {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return "", ok
	}

	return vals[0], true
}

func (v valuesGetter) GetAll(key string) []string {
	return v[key]
}

func (v valuesGetter) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// headerGetter serves request headers with canonical key lookup.
type headerGetter http.Header

func (h headerGetter) Get(key string) (string, bool) {
	vals := http.Header(h).Values(key)
	if len(vals) == 0 {
		return "", false
	}

	return vals[0], true
}

func (h headerGetter) GetAll(key string) []string {
	return http.Header(h).Values(key)
}

func (h headerGetter) Has(key string) bool {
	return len(http.Header(h).Values(key)) > 0
}

// emptyGetter serves no values. Used when a request has no body or the
// body's content type is not understood.
type emptyGetter struct{}

func (emptyGetter) Get(string) (string, bool) { return "", false }
func (emptyGetter) GetAll(string) []string    { return nil }
func (emptyGetter) Has(string) bool           { return false }

// maxBodyBytes caps how much of a request body the resolver will read
// when extracting body parameters.
const maxBodyBytes = 10 << 20 // 10 MiB

// bodyGetter builds a ValueGetter over the request body based on its
// Content-Type: form-encoded bodies are parsed as url.Values, JSON bodies
// are served field-by-field. Unknown content types yield no values.
//
// The body is consumed; callers needing it afterwards must buffer first.
func bodyGetter(req *http.Request) (ValueGetter, error) {
	if req.Body == nil || req.ContentLength == 0 {
		return emptyGetter{}, nil
	}

	ct := req.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = ct
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := req.ParseForm(); err != nil {
			return nil, err
		}

		return valuesGetter(req.PostForm), nil

	case mediaType == "multipart/form-data":
		if err := req.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}

		return valuesGetter(req.PostForm), nil

	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		data, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}

		return newJSONGetter(data), nil

	default:
		return emptyGetter{}, nil
	}
}
