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
	"errors"
	"slices"

	"github.com/jadwal/jadwal/core/columns"
)

// ErrInvalidSortColumn is returned when a sort column is outside the header.
var ErrInvalidSortColumn = errors.New("invalid sort column")

// Sort direction indicators shown in header cells.
const (
	IndicatorNeutral    = "↕️"
	IndicatorAscending  = "↑"
	IndicatorDescending = "↓"
)

// SortState is the active sort column and direction. The zero value means
// no sort is applied and rows keep their loaded order.
type SortState struct {
	Column    int
	Active    bool
	Ascending bool
}

// Toggle applies a header click: clicking the active column flips the
// direction, any other column becomes active in ascending order.
func (s SortState) Toggle(col int) SortState {
	if s.Active && s.Column == col {
		s.Ascending = !s.Ascending
		return s
	}
	return SortState{Column: col, Active: true, Ascending: true}
}

// IsColumn reports whether col is the active sort column.
func (s SortState) IsColumn(col int) bool {
	return s.Active && s.Column == col
}

// Indicator returns the glyph for a header cell.
func (s SortState) Indicator(col int) string {
	if !s.IsColumn(col) {
		return IndicatorNeutral
	}
	if s.Ascending {
		return IndicatorAscending
	}
	return IndicatorDescending
}

// ValidateColumn checks that col addresses a header column.
func (t *Table) ValidateColumn(col int) error {
	if col < 0 || col >= t.Width() {
		return ErrInvalidSortColumn
	}
	return nil
}

// Sorted returns a copy of the table with data rows ordered by s.
// The header is never sorted and the receiver is left untouched.
func (t *Table) Sorted(s SortState) *Table {
	out := t.Clone()
	if !s.Active || len(out.Rows) < 2 {
		return out
	}

	collator := columns.NewCollator()
	col := s.Column
	slices.SortStableFunc(out.Rows, func(a, b []columns.Cell) int {
		cmp := columns.Compare(cellAt(a, col), cellAt(b, col), collator)
		if !s.Ascending {
			return -cmp
		}
		return cmp
	})
	return out
}

func cellAt(row []columns.Cell, col int) columns.Cell {
	if col < 0 || col >= len(row) {
		return columns.Null()
	}
	return row[col]
}
