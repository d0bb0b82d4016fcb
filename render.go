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
	"fmt"
	"net/http"

	"github.com/Tubbz-alt/athena-2/errors"
)

// Renderer turns an action's return value into a Response for one
// negotiated format. Register with WithRenderer to support formats beyond
// the built-in "json" and "text".
type Renderer interface {
	Render(status int, view any) (*Response, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(status int, view any) (*Response, error)

// Render implements Renderer.
func (f RendererFunc) Render(status int, view any) (*Response, error) {
	return f(status, view)
}

func jsonRenderer(status int, view any) (*Response, error) {
	return NewJSONResponse(status, view)
}

func textRenderer(status int, view any) (*Response, error) {
	return NewTextResponse(status, fmt.Sprintf("%v", view)), nil
}

// buildResponse wraps an action's return value in a Response:
//
//   - nil becomes 204 No Content
//   - *Response passes through untouched
//   - string becomes 200 text/plain
//   - []byte becomes 200 application/octet-stream
//   - anything else is serialized per the action's format hint, then the
//     request's Accept header, defaulting to JSON
func (k *Kernel) buildResponse(c *Context, result any) (*Response, error) {
	switch v := result.(type) {
	case nil:
		return NewResponse(http.StatusNoContent), nil

	case *Response:
		return v, nil

	case string:
		return NewTextResponse(http.StatusOK, v), nil

	case []byte:
		return NewBytesResponse(http.StatusOK, "application/octet-stream", v), nil

	default:
		format := ""
		if c.matched != nil && c.matched.Action() != nil {
			format = c.matched.Action().Format
		}
		if format == "" {
			format = negotiateFormat(c.req.Header.Get("Accept"))
		}
		if format == "" {
			format = k.defaultFormat
		}

		renderer, ok := k.renderers[format]
		if !ok {
			renderer = RendererFunc(jsonRenderer)
		}

		return renderer.Render(http.StatusOK, v)
	}
}

// renderError converts a pipeline failure into a client-facing Response
// through the configured formatter.
func (k *Kernel) renderError(c *Context, err error) *Response {
	formatted := k.formatter.Format(c.req, err)

	resp := k.responseFromFormatted(formatted)
	for key, vals := range formatted.Headers {
		resp.Header()[key] = vals
	}

	return resp
}

func (k *Kernel) responseFromFormatted(formatted errors.Response) *Response {
	switch body := formatted.Body.(type) {
	case nil:
		resp := NewResponse(formatted.Status)
		if formatted.ContentType != "" {
			resp.Header().Set("Content-Type", formatted.ContentType)
		}

		return resp

	case []byte:
		return NewBytesResponse(formatted.Status, formatted.ContentType, body)

	case string:
		resp := NewTextResponse(formatted.Status, body)
		if formatted.ContentType != "" {
			resp.Header().Set("Content-Type", formatted.ContentType)
		}

		return resp

	default:
		resp, err := NewJSONResponse(formatted.Status, body)
		if err != nil {
			// The formatter produced an unencodable body. Fall back to a
			// bare status so the client at least sees the right code.
			k.logger.Error("error body failed to encode", "error", err)

			return NewResponse(formatted.Status)
		}
		resp.SetStatus(formatted.Status)
		if formatted.ContentType != "" {
			resp.Header().Set("Content-Type", formatted.ContentType)
		}

		return resp
	}
}
