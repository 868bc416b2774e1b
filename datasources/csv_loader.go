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
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jadwal/jadwal/core/columns"
	"github.com/jadwal/jadwal/core/tables"
)

// CsvSourceType is the source type of CsvLoader.
const CsvSourceType = "csv"

// CsvLoader implements DataSourceLoader for a directory of CSV files, one
// file per sheet named <sheet id>.csv. The first record is the header.
// All cells are loaded as text; empty fields stay empty strings.
type CsvLoader struct {
	dir       string
	delimiter rune
}

// NewCsvLoader creates a loader reading sheets from dir. A zero delimiter
// selects ','.
func NewCsvLoader(dir string, delimiter rune) (*CsvLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("csv directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("csv directory %q is not a directory", dir)
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &CsvLoader{dir: dir, delimiter: delimiter}, nil
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return CsvSourceType
}

// Load reads the CSV file of sheetID. A missing file is reported as a
// source error so the user sees which sheet is absent.
func (l *CsvLoader) Load(ctx context.Context, sheetID string) (*tables.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Sheet IDs name files directly inside dir, never paths.
	if sheetID == "" || strings.ContainsAny(sheetID, `/\`) || sheetID == "." || sheetID == ".." {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheetID)
	}

	file, err := os.Open(filepath.Join(l.dir, sheetID+".csv"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &SourceError{Sheet: sheetID, Message: fmt.Sprintf("sheet %q not found", sheetID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = l.delimiter
	// Rows may be shorter or longer than the header.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	rows := make([][]columns.Cell, len(records))
	for i, record := range records {
		cells := make([]columns.Cell, len(record))
		for j, field := range record {
			cells[j] = columns.Text(field)
		}
		rows[i] = cells
	}
	return tables.NewTable(rows), nil
}
