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
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// defaultServerTimeouts returns production-safe timeouts that prevent
// slowloris attacks and resource exhaustion.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 10 * time.Second,
		read:       30 * time.Second,
		write:      30 * time.Second,
		idle:       120 * time.Second,
	}
}

// WithServerTimeouts overrides the default HTTP server timeouts used by
// Serve and ServeTLS.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(k *Kernel) {
		k.timeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// WithH2C enables cleartext HTTP/2 on Serve. Use only in development or
// behind a trusted load balancer that speaks h2c upstream; public-facing
// servers should use ServeTLS, where HTTP/2 is negotiated via ALPN.
func WithH2C() Option {
	return func(k *Kernel) {
		k.enableH2C = true
	}
}

// serveState tracks the running server for Shutdown.
type serveState struct {
	mu  sync.Mutex
	srv *http.Server
}

func (s *serveState) set(srv *http.Server) {
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()
}

func (s *serveState) get() *http.Server {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.srv
}

// Serve starts an HTTP server on the address and blocks until the server
// stops. The route table is compiled before listening so configuration
// errors surface immediately. Returns http.ErrServerClosed after Shutdown.
//
// Example:
//
//	kernel := athena.MustNew(table)
//	if err := kernel.Serve(":8080"); err != http.ErrServerClosed {
//	    log.Fatal(err)
//	}
func (k *Kernel) Serve(addr string) error {
	if err := k.Prepare(); err != nil {
		return err
	}

	h := http.Handler(k)
	if k.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		k.logger.Warn("h2c enabled; use only in dev or behind a trusted LB")
	}

	srv := k.newServer(addr, h)
	k.serving.set(srv)

	return srv.ListenAndServe()
}

// ServeTLS starts an HTTPS server. HTTP/2 is enabled automatically via
// ALPN.
func (k *Kernel) ServeTLS(addr, certFile, keyFile string) error {
	if err := k.Prepare(); err != nil {
		return err
	}

	srv := k.newServer(addr, k)
	k.serving.set(srv)

	return srv.ListenAndServeTLS(certFile, keyFile)
}

// Shutdown gracefully stops a server started by Serve or ServeTLS: the
// listener closes immediately, in-flight requests run to completion or
// until the context expires. No-op if no server is running.
func (k *Kernel) Shutdown(ctx context.Context) error {
	srv := k.serving.get()
	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

func (k *Kernel) newServer(addr string, h http.Handler) *http.Server {
	timeouts := k.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}
}
