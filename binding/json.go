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

import "github.com/tidwall/gjson"

// jsonGetter serves fields of a JSON request body. Keys are gjson paths,
// so nested fields ("user.name") and array elements ("tags.0") work, but
// plain top-level field names are the common case.
//
// Field extraction never decodes the whole document into an intermediate
// map; gjson scans the raw bytes per lookup.
type jsonGetter struct {
	body []byte
}

func newJSONGetter(body []byte) *jsonGetter {
	return &jsonGetter{body: body}
}

func (j *jsonGetter) Get(key string) (string, bool) {
	result := gjson.GetBytes(j.body, key)
	if !result.Exists() {
		return "", false
	}

	return result.String(), true
}

func (j *jsonGetter) GetAll(key string) []string {
	result := gjson.GetBytes(j.body, key)
	if !result.Exists() {
		return nil
	}

	if result.IsArray() {
		arr := result.Array()
		vals := make([]string, 0, len(arr))
		for _, item := range arr {
			vals = append(vals, item.String())
		}

		return vals
	}

	return []string{result.String()}
}

func (j *jsonGetter) Has(key string) bool {
	return gjson.GetBytes(j.body, key).Exists()
}
