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

package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadwal/jadwal/core/columns"
	"github.com/jadwal/jadwal/core/tables"
	"github.com/jadwal/jadwal/core/theme"
	"github.com/jadwal/jadwal/datasources"
)

func textTable(rows ...[]string) *tables.Table {
	values := make([][]columns.Cell, len(rows))
	for i, row := range rows {
		for _, v := range row {
			values[i] = append(values[i], columns.Text(v))
		}
	}
	return tables.NewTable(values)
}

func schedule() *tables.Table {
	return textTable(
		[]string{"Minggu", "Tanggal", "Materi"},
		[]string{"3", "2024-01-24", "Basis Data"},
		[]string{"1", "2024-01-10", "Intro"},
		[]string{"2", "2024-01-17", "Lab"},
	)
}

// fakeLoader answers from a map of sheets; missing sheets return a source error.
type fakeLoader struct {
	sheets map[string]*tables.Table
	errs   map[string]error
}

func (f *fakeLoader) SourceType() string { return "fake" }

func (f *fakeLoader) Load(ctx context.Context, sheetID string) (*tables.Table, error) {
	if err, ok := f.errs[sheetID]; ok {
		return nil, err
	}
	if t, ok := f.sheets[sheetID]; ok {
		return t, nil
	}
	return nil, &datasources.SourceError{Sheet: sheetID, Message: "not found"}
}

func weeks(s Snapshot) []string {
	out := make([]string, 0, s.View.Length())
	for _, row := range s.View.Rows {
		out = append(out, row[0].Raw)
	}
	return out
}

func TestLoadSortSearch(t *testing.T) {
	c := New(&fakeLoader{sheets: map[string]*tables.Table{"A": schedule()}})

	snap, err := c.Load(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, snap.Status)
	assert.Equal(t, "A", snap.Sheet)
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, []string{"3", "1", "2"}, weeks(snap))

	snap, err = c.SortBy(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, weeks(snap))
	assert.True(t, snap.Sort.Ascending)

	snap, err = c.SortBy(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, weeks(snap))
	assert.False(t, snap.Sort.Ascending)

	// Search keeps the active sort.
	snap = c.Search("  2024-01-1 ")
	assert.Equal(t, "2024-01-1", snap.Query)
	assert.Equal(t, "  2024-01-1 ", snap.Input, "the typed text is kept for display")
	assert.Equal(t, []string{"2", "1"}, weeks(snap))

	// Clearing the search restores every row, still sorted.
	snap = c.Search("")
	assert.Equal(t, []string{"3", "2", "1"}, weeks(snap))
}

func TestLoadResetsSortAndSearch(t *testing.T) {
	c := New(&fakeLoader{sheets: map[string]*tables.Table{"A": schedule(), "B": schedule()}})

	_, err := c.Load(context.Background(), "A")
	require.NoError(t, err)
	_, err = c.SortBy(2)
	require.NoError(t, err)
	c.Search("lab")

	snap, err := c.Load(context.Background(), "B")
	require.NoError(t, err)
	assert.False(t, snap.Sort.Active)
	assert.Empty(t, snap.Query)
	assert.Empty(t, snap.Input)
	assert.Equal(t, 3, snap.View.Length())
}

func TestSortByInvalidColumn(t *testing.T) {
	c := New(&fakeLoader{sheets: map[string]*tables.Table{"A": schedule()}})
	_, err := c.Load(context.Background(), "A")
	require.NoError(t, err)

	snap, err := c.SortBy(7)
	assert.ErrorIs(t, err, tables.ErrInvalidSortColumn)
	assert.False(t, snap.Sort.Active)

	empty := New(&fakeLoader{})
	_, err = empty.SortBy(0)
	assert.ErrorIs(t, err, tables.ErrInvalidSortColumn)
}

func TestLoadSourceErrorThenRecover(t *testing.T) {
	c := New(&fakeLoader{sheets: map[string]*tables.Table{"B": schedule()}})

	snap, err := c.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "not found", snap.Message)
	assert.True(t, snap.View.Empty())
	assert.Equal(t, 0, snap.Total)

	snap, err = c.Load(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, snap.Status)
	assert.Empty(t, snap.Message)
	assert.Equal(t, 3, snap.View.Length())
}

func TestLoadTransportErrorUsesGenericMessage(t *testing.T) {
	c := New(&fakeLoader{
		sheets: map[string]*tables.Table{"A": schedule()},
		errs:   map[string]error{"broken": errors.New("dial tcp: connection refused")},
	})
	_, err := c.Load(context.Background(), "A")
	require.NoError(t, err)

	snap, err := c.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, MessageLoadFailed, snap.Message)
	assert.NotContains(t, snap.Message, "dial tcp")
	assert.True(t, snap.View.Empty(), "dataset must be cleared on failure")
}

// gatedLoader blocks each sheet until its gate is released.
type gatedLoader struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	tables  map[string]*tables.Table
}

func (g *gatedLoader) SourceType() string { return "gated" }

func (g *gatedLoader) Load(ctx context.Context, sheetID string) (*tables.Table, error) {
	g.mu.Lock()
	gate := g.gates[sheetID]
	g.mu.Unlock()
	g.started <- sheetID
	<-gate
	return g.tables[sheetID], nil
}

func TestLoadLastRequestWins(t *testing.T) {
	loader := &gatedLoader{
		gates:   map[string]chan struct{}{"slow": make(chan struct{}), "fast": make(chan struct{})},
		started: make(chan string, 2),
		tables: map[string]*tables.Table{
			"slow": textTable([]string{"h"}, []string{"old"}),
			"fast": textTable([]string{"h"}, []string{"new"}),
		},
	}
	c := New(loader)

	slowDone := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "slow")
		slowDone <- err
	}()
	require.Equal(t, "slow", <-loader.started)

	fastDone := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "fast")
		fastDone <- err
	}()
	require.Equal(t, "fast", <-loader.started)

	assert.Equal(t, StatusLoading, c.Snapshot().Status)

	close(loader.gates["fast"])
	require.NoError(t, <-fastDone)

	// The older request finishes last and must not overwrite the newer result.
	close(loader.gates["slow"])
	assert.ErrorIs(t, <-slowDone, ErrSuperseded)

	snap := c.Snapshot()
	assert.Equal(t, "fast", snap.Sheet)
	assert.Equal(t, StatusReady, snap.Status)
	assert.Equal(t, []string{"new"}, weeks(snap))
}

func TestWaitLoadedBlocksUntilLatestLoad(t *testing.T) {
	loader := &gatedLoader{
		gates:   map[string]chan struct{}{"old": make(chan struct{}), "new": make(chan struct{})},
		started: make(chan string, 2),
		tables: map[string]*tables.Table{
			"old": textTable([]string{"h"}, []string{"old"}),
			"new": textTable([]string{"h"}, []string{"new"}),
		},
	}
	c := New(loader)
	require.NoError(t, c.WaitLoaded(context.Background()), "nothing pending")

	go func() { _, _ = c.Load(context.Background(), "old") }()
	require.Equal(t, "old", <-loader.started)
	go func() { _, _ = c.Load(context.Background(), "new") }()
	require.Equal(t, "new", <-loader.started)

	waited := make(chan error, 1)
	go func() { waited <- c.WaitLoaded(context.Background()) }()

	// A superseded load finishing does not release the wait.
	close(loader.gates["old"])
	select {
	case <-waited:
		t.Fatal("WaitLoaded returned before the latest load finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(loader.gates["new"])
	select {
	case err := <-waited:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitLoaded did not return after the load finished")
	}

	snap := c.Search("new")
	assert.Equal(t, StatusReady, snap.Status)
	assert.Equal(t, []string{"new"}, weeks(snap))
}

func TestWaitLoadedHonorsContext(t *testing.T) {
	loader := &gatedLoader{
		gates:   map[string]chan struct{}{"A": make(chan struct{})},
		started: make(chan string, 1),
		tables:  map[string]*tables.Table{"A": schedule()},
	}
	c := New(loader)
	go func() { _, _ = c.Load(context.Background(), "A") }()
	require.Equal(t, "A", <-loader.started)
	defer close(loader.gates["A"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.WaitLoaded(ctx), context.Canceled)
}

func TestThemeToggle(t *testing.T) {
	c := New(&fakeLoader{})
	assert.Equal(t, theme.Light, c.Snapshot().Theme)

	c.SetTheme(theme.Dark)
	assert.Equal(t, theme.Light, c.ToggleTheme())
	assert.Equal(t, theme.Dark, c.ToggleTheme())

	// Theme changes leave table state alone.
	snap := c.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.False(t, snap.Sort.Active)
}

func TestStoredDatasetNotMutated(t *testing.T) {
	original := schedule()
	c := New(&fakeLoader{sheets: map[string]*tables.Table{"A": original}})
	_, err := c.Load(context.Background(), "A")
	require.NoError(t, err)

	_, err = c.SortBy(0)
	require.NoError(t, err)
	c.Search("lab")

	assert.Equal(t, "3", original.Rows[0][0].Raw)
	assert.Equal(t, 3, original.Length())
}
