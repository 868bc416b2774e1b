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
	"github.com/jadwal/jadwal/core/columns"
)

// Table is a loaded sheet: a header row followed by data rows.
// Tables are never modified in place; sorting and filtering build new ones.
type Table struct {
	Header []columns.Cell
	Rows   [][]columns.Cell
}

// NewTable splits raw rows into header and data rows.
// A nil or empty input yields an empty table.
func NewTable(values [][]columns.Cell) *Table {
	if len(values) == 0 {
		return &Table{}
	}
	return &Table{
		Header: values[0],
		Rows:   values[1:],
	}
}

// Empty reports whether the table has no rows at all, header included.
func (t *Table) Empty() bool {
	return t == nil || (len(t.Header) == 0 && len(t.Rows) == 0)
}

// Length returns the number of data rows.
func (t *Table) Length() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Width returns the number of header columns.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Header)
}

// Clone returns a table with its own row slice. Row contents are shared
// since cells are values and rows are never written to.
func (t *Table) Clone() *Table {
	if t == nil {
		return &Table{}
	}
	rows := make([][]columns.Cell, len(t.Rows))
	copy(rows, t.Rows)
	return &Table{
		Header: t.Header,
		Rows:   rows,
	}
}

// Cell returns the cell at row i, column col, or a null cell when the row
// is too short.
func (t *Table) Cell(i, col int) columns.Cell {
	row := t.Rows[i]
	if col < 0 || col >= len(row) {
		return columns.Null()
	}
	return row[col]
}

// View derives the displayed table: the stored rows, sorted by the
// active sort, then filtered by the query. The order is fixed so that a
// change to either input yields the same result.
func (t *Table) View(sort SortState, query string) *Table {
	return t.Sorted(sort).Filtered(query)
}
