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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routesYAML = `
routes:
  - name: user.show
    methods: [GET]
    path: /users/:id
    action: user.show
    constraints:
      id: int
  - name: report.range
    methods: [GET]
    path: /reports/:from/:to
    action: report.range
    priority: 5
    constraints:
      from: date
      to: date
  - name: search
    methods: [GET]
    path: /search/:scope
    action: search
    defaults:
      scope: all
    constraints:
      scope: "[a-z]+"
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	actions := ActionRegistry{
		"user.show":    testAction("user.show"),
		"report.range": testAction("report.range"),
		"search":       testAction("search"),
	}

	table := NewTable()
	require.NoError(t, LoadYAML(table, strings.NewReader(routesYAML), actions))
	require.NoError(t, table.Compile())

	assert.Equal(t, 3, table.Len())

	report, err := table.ByName("report.range")
	require.NoError(t, err)
	assert.Equal(t, 5, report.Priority())

	u, err := table.URL("search", nil)
	require.NoError(t, err)
	assert.Equal(t, "/search/all", u)

	infos := table.Routes()
	assert.Contains(t, infos[1].Constraints["from"], `\d{4}-\d{2}-\d{2}`)
}

func TestLoadYAMLUnknownAction(t *testing.T) {
	t.Parallel()

	table := NewTable()
	err := LoadYAML(table, strings.NewReader(routesYAML), ActionRegistry{})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestLoadYAMLMalformed(t *testing.T) {
	t.Parallel()

	table := NewTable()
	err := LoadYAML(table, strings.NewReader("routes: [\n"), ActionRegistry{})
	require.Error(t, err)
}
