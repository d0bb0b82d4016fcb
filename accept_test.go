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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"empty", "", ""},
		{"json", "application/json", "json"},
		{"text", "text/plain", "text"},
		{"wildcard only", "*/*", ""},
		{"quality picks text", "application/json;q=0.1, text/plain;q=0.9", "text"},
		{"zero quality excluded", "application/json;q=0, text/plain", "text"},
		{"subtype wildcard", "text/*", "text"},
		{"unknown types ignored", "image/png, application/json", "json"},
		{"garbage", ";;;", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, negotiateFormat(tt.accept))
		})
	}
}
