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

// Package datasources fetches sheet contents from remote data sources and
// turns them into tables.
package datasources

import (
	"context"

	"github.com/jadwal/jadwal/core/tables"
)

// DataSourceLoader is the interface that all data source loaders must implement.
// Jadwal provides a built-in loader for "sheets" (a spreadsheet web app
// answering JSON). Other loaders can be registered for tests or other backends.
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g., "sheets").
	SourceType() string

	// Load retrieves the sheet identified by sheetID and returns it as a table.
	// An explicit error reported by the source is returned as *SourceError.
	Load(ctx context.Context, sheetID string) (*tables.Table, error)
}

// Sheet is an entry of the sheet catalog offered to users.
type Sheet struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// LoaderFunc adapts a function to DataSourceLoader.
type LoaderFunc struct {
	Type string
	Fn   func(ctx context.Context, sheetID string) (*tables.Table, error)
}

// SourceType implements DataSourceLoader.
func (f LoaderFunc) SourceType() string {
	return f.Type
}

// Load implements DataSourceLoader.
func (f LoaderFunc) Load(ctx context.Context, sheetID string) (*tables.Table, error) {
	return f.Fn(ctx, sheetID)
}
