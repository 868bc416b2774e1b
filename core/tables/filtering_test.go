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
	"testing"
)

func scheduleTable() *Table {
	return newTestTable(
		[]string{"Minggu", "Tanggal", "Materi"},
		[]string{"3", "2024-01-24", "Basis Data"},
		[]string{"1", "2024-01-10", "<Intro>"},
		[]string{"2", "2024-01-17", "Lab Jaringan"},
		[]string{"4", "<nil>", "Ujian"},
	)
}

func TestNormalizeQuery(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"   ":       "",
		" Lab ":     "lab",
		"BASIS dat": "basis dat",
	}
	for in, want := range tests {
		if got := NormalizeQuery(in); got != want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFiltered(t *testing.T) {
	table := scheduleTable()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"3", "1", "2", "4"}},
		{"  ", []string{"3", "1", "2", "4"}},
		{"lab", []string{"2"}},
		{"  DATA ", []string{"3"}},
		{"2024-01", []string{"3", "1", "2"}},
		{"<intro>", []string{"1"}},
		{"tidak ada", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := table.Filtered(tt.query)
			if len(got.Header) != 3 {
				t.Fatalf("header must always be kept, got %d cells", len(got.Header))
			}
			if vals := columnValues(got, 0); !equalStringSlices(vals, tt.want) {
				t.Errorf("Filtered(%q) = %v, want %v", tt.query, vals, tt.want)
			}
		})
	}
}

func TestFilteredSubsetProperty(t *testing.T) {
	table := scheduleTable()
	for _, q := range []string{"a", "1", "lab", "ujian", "x"} {
		got := table.Filtered(q)
		kept := map[int]bool{}
		for _, row := range got.Rows {
			if !rowContains(row, q) {
				t.Errorf("query %q: retained row %v does not contain it", q, row)
			}
			for i, orig := range table.Rows {
				if &orig[0] == &row[0] {
					kept[i] = true
				}
			}
		}
		if len(kept) != len(got.Rows) {
			t.Errorf("query %q: result rows are not a subset of the original", q)
		}
		for i, row := range table.Rows {
			if !kept[i] && rowContains(row, strings.ToLower(q)) {
				t.Errorf("query %q: rejected row %d contains it", q, i)
			}
		}
	}
}

func TestFilteredEmptyRestoresAll(t *testing.T) {
	table := scheduleTable()
	_ = table.Filtered("lab")
	if got := table.Filtered(""); got.Length() != table.Length() {
		t.Errorf("empty query kept %d rows, want %d", got.Length(), table.Length())
	}
}

func TestViewSortThenFilter(t *testing.T) {
	table := scheduleTable()
	sort := SortState{Column: 0, Active: true, Ascending: false}

	got := table.View(sort, "2024")
	if vals := columnValues(got, 0); !equalStringSlices(vals, []string{"3", "2", "1"}) {
		t.Errorf("View = %v, want [3 2 1]", vals)
	}

	all := table.View(sort, "")
	if vals := columnValues(all, 0); !equalStringSlices(vals, []string{"4", "3", "2", "1"}) {
		t.Errorf("View without query = %v, want [4 3 2 1]", vals)
	}
}

func TestEmptyTable(t *testing.T) {
	empty := NewTable(nil)
	if !empty.Empty() {
		t.Error("NewTable(nil) should be empty")
	}
	if got := empty.View(SortState{Column: 0, Active: true}, "x"); !got.Empty() {
		t.Error("view of an empty table should be empty")
	}
	var nilTable *Table
	if !nilTable.Empty() || nilTable.Length() != 0 {
		t.Error("nil table should be empty")
	}

	headerOnly := newTestTable([]string{"a"})
	if headerOnly.Empty() {
		t.Error("header-only table is not empty")
	}
	if headerOnly.Length() != 0 {
		t.Errorf("header-only table has %d data rows", headerOnly.Length())
	}
}
