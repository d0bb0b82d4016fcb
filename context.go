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
	"log/slog"
	"net/http"
	"time"

	"github.com/Tubbz-alt/athena-2/route"
)

// maxStackParams is the number of path parameters stored inline before
// falling back to a map. Eight covers real-world route depth; deeper
// patterns still work, they just allocate.
const maxStackParams = 8

// Context carries one request through the dispatch pipeline: the matched
// route, captured path parameters, request attributes, and the response
// under construction.
//
// Contexts are pooled by the kernel and must not be retained after the
// request ends. Listeners needing values beyond the request must copy them.
type Context struct {
	req     *http.Request
	matched *route.Route

	paramCount  int
	paramKeys   [maxStackParams]string
	paramValues [maxStackParams]string
	paramExtra  map[string]string // overflow beyond maxStackParams

	attrs map[string]Attr // lazy

	response *Response
	args     []any

	start      time.Time
	routeLabel string // route name or a not-matched sentinel, for observability
	logger     *slog.Logger
}

// Request returns the HTTP request being dispatched.
func (c *Context) Request() *http.Request { return c.req }

// Route returns the matched route, or nil before matching succeeds.
func (c *Context) Route() *route.Route { return c.matched }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// StartTime returns when the kernel began dispatching this request.
func (c *Context) StartTime() time.Time { return c.start }

// Param returns the captured value of a path placeholder.
func (c *Context) Param(name string) string {
	for i := 0; i < c.paramCount; i++ {
		if c.paramKeys[i] == name {
			return c.paramValues[i]
		}
	}
	if c.paramExtra != nil {
		return c.paramExtra[name]
	}

	return ""
}

// Params returns all captured path parameters as a map. The map is built
// per call; hot paths should prefer Param.
func (c *Context) Params() map[string]string {
	params := make(map[string]string, c.paramCount+len(c.paramExtra))
	for i := 0; i < c.paramCount; i++ {
		params[c.paramKeys[i]] = c.paramValues[i]
	}
	for k, v := range c.paramExtra {
		params[k] = v
	}

	return params
}

// addParam records a placeholder capture from the matcher.
func (c *Context) addParam(key, value string) {
	if c.paramCount < maxStackParams {
		c.paramKeys[c.paramCount] = key
		c.paramValues[c.paramCount] = value
		c.paramCount++

		return
	}

	if c.paramExtra == nil {
		c.paramExtra = make(map[string]string)
	}
	c.paramExtra[key] = value
}

// SetAttr stores a request attribute visible to later pipeline stages.
func (c *Context) SetAttr(key string, value Attr) {
	if c.attrs == nil {
		c.attrs = make(map[string]Attr, 4)
	}
	c.attrs[key] = value
}

// Attr returns a request attribute. The zero Attr is returned for unset
// keys; check with IsSet.
func (c *Context) Attr(key string) Attr {
	return c.attrs[key]
}

// Response returns the response under construction, or nil if no stage has
// produced one yet.
func (c *Context) Response() *Response { return c.response }

// SetResponse installs a response, replacing any previous one. Listeners
// use this to short-circuit the pipeline (a RequestStart listener setting a
// response skips matching and invocation) or to substitute the action's
// result.
func (c *Context) SetResponse(resp *Response) {
	c.response = resp
}

// Args returns the resolved action arguments. Populated after the
// arguments-resolving stage; nil before.
func (c *Context) Args() []any { return c.args }

// reset clears the context for pool reuse.
func (c *Context) reset() {
	c.req = nil
	c.matched = nil
	for i := 0; i < c.paramCount; i++ {
		c.paramKeys[i] = ""
		c.paramValues[i] = ""
	}
	c.paramCount = 0
	c.paramExtra = nil
	c.attrs = nil
	c.response = nil
	c.args = nil
	c.start = time.Time{}
	c.routeLabel = ""
	c.logger = nil
}
