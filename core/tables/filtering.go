/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Jadwal Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"strings"

	"github.com/jadwal/jadwal/core/columns"
)

// NormalizeQuery lowercases and trims a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Filtered returns a copy of the table keeping the header and every data
// row where at least one cell contains query, ignoring case. An empty
// query keeps all rows.
func (t *Table) Filtered(query string) *Table {
	query = NormalizeQuery(query)
	if query == "" {
		return t.Clone()
	}

	out := &Table{}
	if t == nil {
		return out
	}
	out.Header = t.Header
	for _, row := range t.Rows {
		if rowContains(row, query) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// rowContains expects query to be normalized already.
func rowContains(row []columns.Cell, query string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell.String()), query) {
			return true
		}
	}
	return false
}
