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

// Command athena runs a demo dispatch server and inspects route tables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	athena "github.com/Tubbz-alt/athena-2"
	"github.com/Tubbz-alt/athena-2/route"
)

func main() {
	root := &cobra.Command{
		Use:           "athena",
		Short:         "HTTP request-dispatch kernel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), routesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var (
		addr       string
		routesFile string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo dispatch server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			table, err := buildTable(routesFile)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			opts := []athena.Option{
				athena.WithLogger(logger),
				athena.WithObservability(athena.NewMetrics(registry,
					athena.WithExcludedPaths("/metrics", "/healthz"),
				)),
			}
			if debug {
				opts = append(opts, athena.WithDebug())
			}

			kernel, err := athena.New(table, opts...)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			mux.Handle("/", kernel)

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", slog.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down")

			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&routesFile, "routes", "", "declarative route file (YAML)")
	cmd.Flags().BoolVar(&debug, "debug", false, "render server-fault error details")

	return cmd
}

func routesCmd() *cobra.Command {
	var routesFile string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := buildTable(routesFile)
			if err != nil {
				return err
			}
			table.MustCompile()

			for _, info := range table.Routes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-30s -> %s (priority %d)\n",
					strings.Join(info.Methods, ","), info.Path, info.Action, info.Priority)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&routesFile, "routes", "", "declarative route file (YAML)")

	return cmd
}

// buildTable assembles the demo routes, plus any declarative file.
func buildTable(routesFile string) (*route.Table, error) {
	echo := route.NewAction("echo", func(ctx context.Context, args []any) (any, error) {
		return fmt.Sprintf("%v:%v:%v", args[0], args[1], args[2]), nil
	},
		route.PathParam("a", route.Int),
		route.PathParam("b", route.Int),
		route.PathParam("c", route.Int),
	)

	greet := route.NewAction("greet", func(ctx context.Context, args []any) (any, error) {
		return map[string]any{"hello": args[0]}, nil
	}, route.PathParam("name", route.String))

	table := route.NewTable()
	table.MustRegister(route.New("echo", []string{"GET"}, "/echo/:a/:b/:c", echo).
		WhereInt("a").WhereInt("b").WhereInt("c"))
	table.MustRegister(route.New("greet", []string{"GET"}, "/greet/:name", greet))

	if routesFile != "" {
		actions := route.ActionRegistry{"echo": echo, "greet": greet}
		if err := route.LoadYAMLFile(table, routesFile, actions); err != nil {
			return nil, err
		}
	}

	return table, nil
}
