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

package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// URL parameter names.
const (
	ParamSheet  = "sheet"
	ParamColumn = "col"
	ParamSearch = "q"
)

// Endpoint paths served by the server. Fragment endpoints return only the
// table container markup.
const (
	PathPage   = "/"
	PathTable  = "/table"
	PathLoad   = "/table/load"
	PathSort   = "/table/sort"
	PathSearch = "/table/search"
	PathTheme  = "/theme"
)

// Query represents the parsed state of a request URL
type Query struct {
	// Base path (e.g., "/table/sort")
	Path string

	Sheet     string // Selected sheet identifier
	Column    int    // Column index of a sort request
	HasColumn bool   // True if the col parameter was present and valid
	Search    string // Raw search text as typed
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path: u.Path,
	}

	q := u.Query()

	state.Sheet = strings.TrimSpace(q.Get(ParamSheet))
	state.Search = q.Get(ParamSearch)

	if colStr := q.Get(ParamColumn); colStr != "" {
		if col, err := strconv.Atoi(colStr); err == nil && col >= 0 {
			state.Column = col
			state.HasColumn = true
		}
	}

	return state
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	if s.Sheet != "" {
		q.Set(ParamSheet, s.Sheet)
	}
	if s.HasColumn {
		q.Set(ParamColumn, strconv.Itoa(s.Column))
	}
	if s.Search != "" {
		q.Set(ParamSearch, s.Search)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(s.ToURL())
}

// SortURL returns the URL of the sort affordance for a header column.
func SortURL(col int) safehtml.URL {
	q := &Query{Path: PathSort, Column: col, HasColumn: true}
	return q.ToSafeURL()
}

// LoadURL returns the URL that loads a sheet into the container.
func LoadURL(sheet string) safehtml.URL {
	q := &Query{Path: PathLoad, Sheet: sheet}
	return q.ToSafeURL()
}

// SearchURL returns the URL that applies a search query.
func SearchURL(search string) safehtml.URL {
	q := &Query{Path: PathSearch, Search: search}
	return q.ToSafeURL()
}
