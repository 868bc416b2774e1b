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

// Package controller owns the state behind one schedule view: the loaded
// table, the active sort, the active search and the theme preference.
package controller

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jadwal/jadwal/core/tables"
	"github.com/jadwal/jadwal/core/theme"
	"github.com/jadwal/jadwal/datasources"
)

// MessageLoadFailed is shown for every load failure that is not an
// explicit error from the data source.
const MessageLoadFailed = "Gagal mengambil data. Silakan coba lagi."

// ErrSuperseded is returned by Load when a newer load was started before
// this one finished. Its result was discarded.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Status is the state of the table container.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the controller state with the derived
// view already computed.
type Snapshot struct {
	Sheet   string
	Status  Status
	Message string           // User-facing error message (StatusError only)
	Sort    tables.SortState // Active sort
	Query   string           // Normalized search query
	Input   string           // Search text as typed
	View    *tables.Table    // Dataset, sorted then filtered
	Total   int              // Data rows in the stored dataset
	Theme   theme.Theme
}

// Controller holds the state of one view. All methods are safe for
// concurrent use; a load waits for the data source without holding the lock.
type Controller struct {
	mu sync.Mutex

	loader datasources.DataSourceLoader

	dataset *tables.Table
	sort    tables.SortState
	query   string
	input   string
	sheet   string
	status  Status
	message string
	theme   theme.Theme

	// generation counts started loads; only the latest may store its result.
	generation uint64

	// loaded is closed when the latest load completes; nil when idle.
	loaded chan struct{}
}

// New creates a controller that loads sheets with loader.
func New(loader datasources.DataSourceLoader) *Controller {
	return &Controller{
		loader:  loader,
		dataset: &tables.Table{},
		theme:   theme.Light,
	}
}

// Load fetches sheetID and makes it the dataset. Sort and search are reset.
// If another Load starts before this one completes, this result is dropped
// and ErrSuperseded is returned. Load failures are reflected in the
// snapshot and also returned.
func (c *Controller) Load(ctx context.Context, sheetID string) (Snapshot, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.sheet = sheetID
	c.status = StatusLoading
	c.message = ""
	c.sort = tables.SortState{}
	c.query = ""
	c.input = ""
	if c.loaded == nil {
		c.loaded = make(chan struct{})
	}
	c.mu.Unlock()

	table, err := c.loader.Load(ctx, sheetID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return c.snapshotLocked(), ErrSuperseded
	}
	close(c.loaded)
	c.loaded = nil

	if err != nil {
		c.dataset = &tables.Table{}
		c.status = StatusError
		if msg, ok := datasources.IsSourceError(err); ok {
			c.message = msg
		} else {
			c.message = MessageLoadFailed
		}
		log.Printf("Load of sheet %q failed: %v", sheetID, err)
		return c.snapshotLocked(), err
	}

	if table == nil {
		table = &tables.Table{}
	}
	c.dataset = table
	c.status = StatusReady
	return c.snapshotLocked(), nil
}

// SortBy toggles the sort on column col and returns the new view.
// Columns outside the header return tables.ErrInvalidSortColumn and leave
// the state unchanged.
func (c *Controller) SortBy(col int) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dataset.ValidateColumn(col); err != nil {
		return c.snapshotLocked(), err
	}
	c.sort = c.sort.Toggle(col)
	return c.snapshotLocked(), nil
}

// Search sets the search query and returns the new view. Rows are
// matched against the normalized query; the typed text is kept for
// display.
func (c *Controller) Search(q string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = q
	c.query = tables.NormalizeQuery(q)
	return c.snapshotLocked()
}

// WaitLoaded blocks until no load is pending or ctx is done.
func (c *Controller) WaitLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()

	if loaded == nil {
		return nil
	}
	select {
	case <-loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetTheme sets the theme read from persisted storage at startup.
func (c *Controller) SetTheme(t theme.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = t
}

// ToggleTheme flips the theme and returns the new value. The caller
// persists it.
func (c *Controller) ToggleTheme() theme.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = c.theme.Toggle()
	return c.theme
}

// Snapshot returns the current state and view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Sheet:   c.sheet,
		Status:  c.status,
		Message: c.message,
		Sort:    c.sort,
		Query:   c.query,
		Input:   c.input,
		View:    c.dataset.View(c.sort, c.query),
		Total:   c.dataset.Length(),
		Theme:   c.theme,
	}
}
