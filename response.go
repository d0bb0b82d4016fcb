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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// ContentFunc produces a response body by writing to dst. Buffered
// responses use a closure over a byte slice; streamed responses write
// directly from their source.
type ContentFunc func(dst io.Writer) error

// ContentWriter is the strategy that moves response content onto the wire.
// The default implementation invokes the content function against the
// destination directly; alternatives can frame, compress, or append
// trailers around it.
type ContentWriter interface {
	WriteContent(dst io.Writer, content ContentFunc) error
}

// ContentWriterFunc adapts a function to the ContentWriter interface.
type ContentWriterFunc func(dst io.Writer, content ContentFunc) error

// WriteContent implements ContentWriter.
func (f ContentWriterFunc) WriteContent(dst io.Writer, content ContentFunc) error {
	return f(dst, content)
}

// passthroughWriter is the default content writer.
type passthroughWriter struct{}

func (passthroughWriter) WriteContent(dst io.Writer, content ContentFunc) error {
	if content == nil {
		return nil
	}

	return content(dst)
}

// Response is an HTTP response under construction. Status, headers, and
// content remain mutable until Write, which sends them exactly once:
// repeated Write calls after a successful write are no-ops.
//
// A streamed response's content can only be replaced by nil (dropping the
// body); swapping one stream for another is rejected because the original
// source may already be partially consumed.
type Response struct {
	status   int
	header   http.Header
	content  ContentFunc
	writer   ContentWriter
	streamed bool
	written  atomic.Bool
}

// NewResponse creates an empty response with the given status and the
// default content writer.
func NewResponse(status int) *Response {
	return &Response{
		status: status,
		header: make(http.Header),
		writer: passthroughWriter{},
	}
}

// NewTextResponse creates a text/plain response over a buffered string.
func NewTextResponse(status int, body string) *Response {
	r := NewResponse(status)
	r.header.Set("Content-Type", "text/plain; charset=utf-8")
	r.content = func(dst io.Writer) error {
		_, err := io.WriteString(dst, body)
		return err
	}

	return r
}

// NewBytesResponse creates a response over a buffered byte slice with the
// given content type.
func NewBytesResponse(status int, contentType string, body []byte) *Response {
	r := NewResponse(status)
	r.header.Set("Content-Type", contentType)
	r.content = func(dst io.Writer) error {
		_, err := dst.Write(body)
		return err
	}

	return r
}

// NewJSONResponse creates an application/json response. The value is
// encoded eagerly so an unmarshalable value fails at construction, not
// halfway through writing.
func NewJSONResponse(status int, v any) (*Response, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding response body: %w", err)
	}

	return NewBytesResponse(status, "application/json; charset=utf-8", buf.Bytes()), nil
}

// MustJSONResponse is like NewJSONResponse but panics on encoding failure.
// Intended for values known to encode, such as static error bodies.
func MustJSONResponse(status int, v any) *Response {
	r, err := NewJSONResponse(status, v)
	if err != nil {
		panic(err)
	}

	return r
}

// NewStreamedResponse creates a response whose body is produced on demand
// during Write. The content function runs at most once.
func NewStreamedResponse(status int, content ContentFunc) *Response {
	r := NewResponse(status)
	r.content = content
	r.streamed = true

	return r
}

// Status returns the response status code.
func (r *Response) Status() int { return r.status }

// SetStatus replaces the status code. No effect after Write.
func (r *Response) SetStatus(status int) { r.status = status }

// Header returns the response header map for mutation before Write.
func (r *Response) Header() http.Header { return r.header }

// Streamed reports whether the response body is produced on demand.
func (r *Response) Streamed() bool { return r.streamed }

// Written reports whether the response has been sent.
func (r *Response) Written() bool { return r.written.Load() }

// SetContent replaces the response content. Streamed content can only be
// cleared (content == nil), never swapped: the original stream may already
// be partially consumed and silently dropping it would corrupt the body.
func (r *Response) SetContent(content ContentFunc) error {
	if r.streamed && content != nil {
		return ErrStreamedContent
	}
	if content == nil {
		r.streamed = false
	}
	r.content = content

	return nil
}

// SetContentWriter replaces the write strategy used by Write.
func (r *Response) SetContentWriter(w ContentWriter) {
	r.writer = w
}

// Write sends the response: headers first, then the body through the
// content writer. Write is idempotent; only the first call writes, later
// calls return nil without touching dst. A body write error is returned
// but the response still counts as written, since headers are on the wire.
func (r *Response) Write(dst http.ResponseWriter) error {
	if !r.written.CompareAndSwap(false, true) {
		return nil
	}

	h := dst.Header()
	for key, vals := range r.header {
		h[key] = vals
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	dst.WriteHeader(status)

	writer := r.writer
	if writer == nil {
		writer = passthroughWriter{}
	}

	if err := writer.WriteContent(dst, r.content); err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}

	return nil
}
