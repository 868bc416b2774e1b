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
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jadwal/jadwal/core/columns"
	"github.com/jadwal/jadwal/core/tables"
)

// SheetsSourceType is the source type of SheetsLoader.
const SheetsSourceType = "sheets"

// DefaultSheetParam is the query parameter carrying the sheet identifier.
const DefaultSheetParam = "sheetName"

// maxBodyBytes bounds the response size read from the data source.
const maxBodyBytes = 16 << 20

// SheetsOptions configures a SheetsLoader.
type SheetsOptions struct {
	Endpoint     string        // Base URL of the web app
	SheetParam   string        // Query parameter name, DefaultSheetParam if empty
	Timeout      time.Duration // Per-request timeout, 30s if zero
	RateLimitRPS float64       // Outbound requests per second, 0 = unlimited
	HTTPClient   *http.Client  // Optional client, built from Timeout if nil
}

// SheetsLoader loads sheets from a spreadsheet web app that answers
// GET <endpoint>?sheetName=<id> with {"values": [[...], ...]} or
// {"error": "message"}.
type SheetsLoader struct {
	baseURL    *url.URL
	sheetParam string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewSheetsLoader creates a loader for the given endpoint.
func NewSheetsLoader(opts SheetsOptions) (*SheetsLoader, error) {
	raw := strings.TrimSpace(opts.Endpoint)
	if raw == "" {
		return nil, fmt.Errorf("sheets endpoint is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse sheets endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("sheets endpoint must be an absolute URL (got %q)", raw)
	}

	param := strings.TrimSpace(opts.SheetParam)
	if param == "" {
		param = DefaultSheetParam
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	return &SheetsLoader{
		baseURL:    u,
		sheetParam: param,
		http:       hc,
		limiter:    limiter,
	}, nil
}

// SourceType implements DataSourceLoader.
func (l *SheetsLoader) SourceType() string {
	return SheetsSourceType
}

// RequestURL returns the URL requested for a sheet. Existing query
// parameters of the endpoint are kept.
func (l *SheetsLoader) RequestURL(sheetID string) string {
	u := *l.baseURL
	q := u.Query()
	q.Set(l.sheetParam, sheetID)
	u.RawQuery = q.Encode()
	return u.String()
}

// Load implements DataSourceLoader.
func (l *SheetsLoader) Load(ctx context.Context, sheetID string) (*tables.Table, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.RequestURL(sheetID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", sheetID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetID, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, newHTTPError(resp, b)
	}

	return DecodeSheet(sheetID, b)
}

// DecodeSheet interprets a data source response body.
func DecodeSheet(sheetID string, body []byte) (*tables.Table, error) {
	var doc structpb.Struct
	if err := protojson.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse sheet %q response: %w", sheetID, err)
	}

	fields := doc.GetFields()
	if msg, ok := errorMessage(fields["error"]); ok {
		return nil, &SourceError{Sheet: sheetID, Message: msg}
	}

	values, ok := fields["values"].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", sheetID, ErrUnexpectedShape)
	}

	rows := make([][]columns.Cell, 0, len(values.ListValue.GetValues()))
	for i, rowValue := range values.ListValue.GetValues() {
		row, ok := rowValue.GetKind().(*structpb.Value_ListValue)
		if !ok {
			return nil, fmt.Errorf("sheet %q: row %d is not an array: %w", sheetID, i, ErrUnexpectedShape)
		}
		cells := make([]columns.Cell, len(row.ListValue.GetValues()))
		for j, v := range row.ListValue.GetValues() {
			// Numbers become their plain decimal text here, so a week
			// number in column 0 stays "3" for the rest of its life.
			cells[j] = columns.CellFromValue(v)
		}
		rows = append(rows, cells)
	}
	return tables.NewTable(rows), nil
}

// errorMessage extracts a non-empty error field. Non-string values that
// are set are reported by their text.
func errorMessage(v *structpb.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, k.StringValue != ""
	case *structpb.Value_BoolValue:
		if k.BoolValue {
			return "true", true
		}
		return "", false
	case *structpb.Value_NullValue, nil:
		return "", false
	default:
		c := columns.CellFromValue(v)
		if c.Raw == "0" {
			return "", false
		}
		return c.Raw, true
	}
}
