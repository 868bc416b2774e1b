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

package views

import (
	"time"

	"github.com/google/safehtml"

	"github.com/jadwal/jadwal/core/columns"
	"github.com/jadwal/jadwal/core/controller"
	"github.com/jadwal/jadwal/core/query"
	"github.com/jadwal/jadwal/core/tables"
	"github.com/jadwal/jadwal/core/theme"
	"github.com/jadwal/jadwal/datasources"
)

// Fixed texts of the container states.
const (
	LoadingMessage = "Memuat data..."
	EmptyMessage   = "Tidak ada data yang ditemukan"
	ErrorPrefix    = "❌ "
)

// ContainerState selects which markup the container shows.
type ContainerState int

const (
	StateLoading ContainerState = iota
	StateError
	StateEmpty
	StateTable
)

// ContainerViewModel is everything the table container template needs.
// Cell text is plain and is escaped by the template.
type ContainerViewModel struct {
	State   ContainerState
	Message string

	Headers []HeaderCell
	Rows    []RowViewModel

	DisplayedRows int // Rows after filtering
	TotalRows     int // Rows in the loaded sheet
}

// IsLoading, IsError, IsEmpty and IsTable are used by the template.
func (vm ContainerViewModel) IsLoading() bool { return vm.State == StateLoading }
func (vm ContainerViewModel) IsError() bool   { return vm.State == StateError }
func (vm ContainerViewModel) IsEmpty() bool   { return vm.State == StateEmpty }
func (vm ContainerViewModel) IsTable() bool   { return vm.State == StateTable }

// HeaderCell is one column header with its sort affordance.
type HeaderCell struct {
	Label     string
	Index     int
	SortURL   safehtml.URL
	Indicator string
	Active    bool
}

// RowViewModel is one data row of formatted cells.
type RowViewModel struct {
	Cells []string
}

// PageViewModel contains the full page around the container.
type PageViewModel struct {
	Title      string
	Sheets     []SheetOption
	Search     string       // Search text as the user typed it
	SearchURL  safehtml.URL // Target of the search box
	LoadURL    safehtml.URL // Load URL of the selected sheet, fetched on page load
	Dark       bool
	ThemeIcon  string
	ThemeLabel string
	Container  ContainerViewModel
}

// SheetOption is one entry of the sheet select.
type SheetOption struct {
	ID       string
	Label    string
	Selected bool
}

// LoadingViewModel returns the container shown while a load is pending.
func LoadingViewModel() ContainerViewModel {
	return ContainerViewModel{State: StateLoading, Message: LoadingMessage}
}

// BuildContainerViewModel turns a controller snapshot into the container
// view model. Dates are shown in loc.
func BuildContainerViewModel(snap controller.Snapshot, loc *time.Location) ContainerViewModel {
	switch snap.Status {
	case controller.StatusLoading, controller.StatusIdle:
		return LoadingViewModel()
	case controller.StatusError:
		return ContainerViewModel{State: StateError, Message: ErrorPrefix + snap.Message}
	}
	return BuildTableViewModel(snap.View, snap.Sort, snap.Total, loc)
}

// BuildTableViewModel renders a derived table. An empty table gives the
// empty state, never a table without rows and header.
func BuildTableViewModel(view *tables.Table, sort tables.SortState, total int, loc *time.Location) ContainerViewModel {
	if view.Empty() {
		return ContainerViewModel{State: StateEmpty, Message: EmptyMessage}
	}

	vm := ContainerViewModel{
		State:         StateTable,
		Headers:       make([]HeaderCell, len(view.Header)),
		Rows:          make([]RowViewModel, 0, len(view.Rows)),
		DisplayedRows: view.Length(),
		TotalRows:     total,
	}

	for i, h := range view.Header {
		vm.Headers[i] = HeaderCell{
			Label:     h.String(),
			Index:     i,
			SortURL:   query.SortURL(i),
			Indicator: sort.Indicator(i),
			Active:    sort.IsColumn(i),
		}
	}

	width := view.Width()
	for i, row := range view.Rows {
		n := len(row)
		if n < width {
			n = width
		}
		cells := make([]string, n)
		for j := 0; j < n; j++ {
			// Missing cells of short rows are null and show a dash.
			cells[j] = columns.Format(view.Cell(i, j), loc)
		}
		vm.Rows = append(vm.Rows, RowViewModel{Cells: cells})
	}
	return vm
}

// BuildPageViewModel builds the page shell. The container starts in the
// state of snap, or loading when nothing was loaded yet.
func BuildPageViewModel(title string, sheets []datasources.Sheet, selected string, snap controller.Snapshot, t theme.Theme, loc *time.Location) PageViewModel {
	if selected == "" && len(sheets) > 0 {
		selected = sheets[0].ID
	}

	vm := PageViewModel{
		Title:      title,
		Search:     snap.Input,
		SearchURL:  query.SearchURL(""),
		LoadURL:    query.LoadURL(selected),
		Dark:       t.IsDark(),
		ThemeIcon:  t.ButtonIcon(),
		ThemeLabel: t.ButtonLabel(),
		Container:  BuildContainerViewModel(snap, loc),
	}
	for _, s := range sheets {
		label := s.Label
		if label == "" {
			label = s.ID
		}
		vm.Sheets = append(vm.Sheets, SheetOption{
			ID:       s.ID,
			Label:    label,
			Selected: s.ID == selected,
		})
	}
	return vm
}
