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
	"sort"
	"strconv"
	"strings"
)

// acceptEntry is one parsed media range from an Accept header.
type acceptEntry struct {
	mediaType string
	quality   float64
	order     int
}

// negotiateFormat picks a response format ("json" or "text") from an
// Accept header. Supports quality factors and wildcards; unparseable
// entries are skipped. Returns "" when the header expresses no usable
// preference, leaving the choice to the caller's default.
func negotiateFormat(accept string) string {
	if accept == "" {
		return ""
	}

	entries := parseAccept(accept)
	for _, e := range entries {
		switch e.mediaType {
		case "application/json":
			return "json"
		case "text/plain":
			return "text"
		case "application/*":
			return "json"
		case "text/*":
			return "text"
		case "*/*":
			return ""
		}
	}

	return ""
}

// parseAccept splits an Accept header into media ranges ordered by quality
// descending, header order ascending.
func parseAccept(accept string) []acceptEntry {
	parts := strings.Split(accept, ",")
	entries := make([]acceptEntry, 0, len(parts))

	for i, part := range parts {
		fields := strings.Split(part, ";")
		mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
		if mediaType == "" {
			continue
		}

		quality := 1.0
		for _, field := range fields[1:] {
			field = strings.TrimSpace(field)
			if val, ok := strings.CutPrefix(field, "q="); ok {
				if q, err := strconv.ParseFloat(val, 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}
		if quality == 0 {
			continue
		}

		entries = append(entries, acceptEntry{mediaType: mediaType, quality: quality, order: i})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].quality != entries[j].quality {
			return entries[i].quality > entries[j].quality
		}

		return entries[i].order < entries[j].order
	})

	return entries
}
