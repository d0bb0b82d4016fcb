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

	"github.com/Tubbz-alt/athena-2/binding"
	"github.com/Tubbz-alt/athena-2/errors"
)

// Option defines functional options for kernel configuration.
type Option func(*Kernel)

// WithLogger sets the structured logger used for pipeline diagnostics and
// the default access log. Without it the kernel logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kernel) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// WithDebug enables debug behavior: server-fault error messages are
// rendered verbatim instead of sanitized. Never enable in production.
func WithDebug() Option {
	return func(k *Kernel) {
		k.debug = true
	}
}

// WithErrorFormatter replaces the error formatter. The default is
// errors.NewSimple, producing {"code": ..., "message": ...} bodies.
func WithErrorFormatter(f errors.Formatter) Option {
	return func(k *Kernel) {
		if f != nil {
			k.formatter = f
		}
	}
}

// WithResolver replaces the argument resolver. Use it to share a resolver
// with registered providers across kernels.
func WithResolver(r *binding.Resolver) Option {
	return func(k *Kernel) {
		if r != nil {
			k.resolver = r
		}
	}
}

// WithObservability installs a recorder for request metrics, tracing, and
// access logging hooks.
func WithObservability(rec ObservabilityRecorder) Option {
	return func(k *Kernel) {
		k.observability = rec
	}
}

// WithCaseInsensitiveRouting makes literal path segments match regardless
// of case. Placeholder constraints still see the raw segment.
func WithCaseInsensitiveRouting() Option {
	return func(k *Kernel) {
		k.foldCase = true
	}
}

// WithIgnoreTrailingSlash makes "/users/" match a route registered as
// "/users". Error messages still report the path as requested.
func WithIgnoreTrailingSlash() Option {
	return func(k *Kernel) {
		k.trimSlash = true
	}
}

// WithRenderer registers (or replaces) the renderer for a format string,
// extending the built-in "json" and "text" handlers. Together with an
// action's format hint this supports custom representations:
//
//	kernel := athena.MustNew(table,
//	    athena.WithRenderer("csv", csvRenderer),
//	)
func WithRenderer(format string, r Renderer) Option {
	return func(k *Kernel) {
		if format != "" && r != nil {
			k.renderers[format] = r
		}
	}
}

// WithDefaultFormat sets the serialization format ("json" or "text") used
// for action return values when neither the action nor the Accept header
// expresses a preference. The default is "json".
func WithDefaultFormat(format string) Option {
	return func(k *Kernel) {
		if format != "" {
			k.defaultFormat = format
		}
	}
}
