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

package datasources

import (
	"context"
	"fmt"
	"sync"

	"github.com/jadwal/jadwal/core/tables"
)

// Manager holds the sheet catalog and the registered loaders, and routes
// loads to the loader of the configured source type.
// Loaded tables are not cached: every load reaches the data source.
type Manager struct {
	mu sync.RWMutex

	// Sheets in catalog order
	sheets []Sheet

	// Sheet IDs for lookups
	sheetIDs map[string]bool

	// Registered loaders indexed by source_type
	loaders map[string]DataSourceLoader

	// Source type used for loads
	sourceType string
}

// NewManager creates a new data source manager using sourceType for loads.
func NewManager(sourceType string) *Manager {
	return &Manager{
		sheetIDs:   make(map[string]bool),
		loaders:    make(map[string]DataSourceLoader),
		sourceType: sourceType,
	}
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetSheets replaces the sheet catalog.
func (m *Manager) SetSheets(sheets []Sheet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets = append([]Sheet(nil), sheets...)
	m.sheetIDs = make(map[string]bool, len(sheets))
	for _, s := range sheets {
		m.sheetIDs[s.ID] = true
	}
}

// GetSheets returns the sheet catalog in order.
func (m *Manager) GetSheets() []Sheet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Sheet(nil), m.sheets...)
}

// DefaultSheet returns the first sheet of the catalog, or "" if it is empty.
func (m *Manager) DefaultSheet() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.sheets) == 0 {
		return ""
	}
	return m.sheets[0].ID
}

// HasSheet reports whether id is in the catalog.
func (m *Manager) HasSheet(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sheetIDs[id]
}

// SourceType implements DataSourceLoader.
func (m *Manager) SourceType() string {
	return m.sourceType
}

// Load implements DataSourceLoader by delegating to the registered loader.
// Sheets outside a non-empty catalog are rejected.
func (m *Manager) Load(ctx context.Context, sheetID string) (*tables.Table, error) {
	m.mu.RLock()
	loader, hasLoader := m.loaders[m.sourceType]
	known := len(m.sheets) == 0 || m.sheetIDs[sheetID]
	m.mu.RUnlock()

	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheetID)
	}
	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", m.sourceType)
	}
	return loader.Load(ctx, sheetID)
}
