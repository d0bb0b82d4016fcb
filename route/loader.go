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

package route

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrUnknownAction is returned by the YAML loader when a route references
// an action name absent from the registry.
var ErrUnknownAction = errors.New("unknown action")

// ActionRegistry maps action names referenced by declarative route files to
// registered Action descriptors.
type ActionRegistry map[string]*Action

// routeFile is the top-level shape of a declarative route file.
type routeFile struct {
	Routes []routeEntry `yaml:"routes"`
}

type routeEntry struct {
	Name        string            `yaml:"name"`
	Methods     []string          `yaml:"methods"`
	Path        string            `yaml:"path"`
	Action      string            `yaml:"action"`
	Priority    int               `yaml:"priority"`
	Defaults    map[string]string `yaml:"defaults"`
	Constraints map[string]string `yaml:"constraints"`
}

// LoadYAML reads a declarative route file and registers its routes into the
// table. Actions are looked up by name in the registry. Constraint values
// are either a shorthand keyword (int, float, uuid, date, datetime) or a
// regex pattern.
//
// File format:
//
//	routes:
//	  - name: user.show
//	    methods: [GET]
//	    path: /users/:id
//	    action: user.show
//	    constraints:
//	      id: int
//	  - name: report.range
//	    methods: [GET]
//	    path: /reports/:from/:to
//	    action: report.range
//	    priority: 5
//	    constraints:
//	      from: date
//	      to: date
func LoadYAML(t *Table, r io.Reader, actions ActionRegistry) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading route file: %w", err)
	}

	var file routeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing route file: %w", err)
	}

	for _, entry := range file.Routes {
		act, ok := actions[entry.Action]
		if !ok {
			return fmt.Errorf("%w: %q referenced by route %q", ErrUnknownAction, entry.Action, entry.Name)
		}

		rt := New(entry.Name, entry.Methods, entry.Path, act)
		rt.SetPriority(entry.Priority)

		for param, value := range entry.Defaults {
			rt.SetDefault(param, value)
		}

		for param, spec := range entry.Constraints {
			applyConstraintSpec(rt, param, spec)
		}

		if err := t.Register(rt); err != nil {
			return err
		}
	}

	return nil
}

// LoadYAMLFile is a convenience wrapper around LoadYAML for a file path.
func LoadYAMLFile(t *Table, path string, actions ActionRegistry) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening route file: %w", err)
	}
	defer f.Close()

	return LoadYAML(t, f, actions)
}

func applyConstraintSpec(rt *Route, param, spec string) {
	switch spec {
	case "int":
		rt.WhereInt(param)
	case "float":
		rt.WhereFloat(param)
	case "uuid":
		rt.WhereUUID(param)
	case "date":
		rt.ensureTyped()
		rt.typed[param] = ParamConstraint{Kind: ConstraintDate}
	case "datetime":
		rt.ensureTyped()
		rt.typed[param] = ParamConstraint{Kind: ConstraintDateTime}
	default:
		rt.Where(param, spec)
	}
}
