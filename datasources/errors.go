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
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnexpectedShape is returned when the response is JSON but carries
	// neither an error message nor a values array.
	ErrUnexpectedShape = errors.New("unexpected response shape")

	// ErrUnknownSheet is returned when a sheet is not in the catalog.
	ErrUnknownSheet = errors.New("unknown sheet")
)

// SourceError is an error message reported by the data source itself.
// Its message is meant to be shown to users as-is.
type SourceError struct {
	Sheet   string
	Message string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("data source error for sheet %q: %s", e.Sheet, e.Message)
}

// HTTPError is a summary of a non-2xx response.
type HTTPError struct {
	StatusCode int
	Status     string

	// Snippet is a truncated hint of the response body.
	Snippet string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "data source http error"
	}
	msg := fmt.Sprintf("data source http error: status=%s", strings.TrimSpace(e.Status))
	if e.Snippet != "" {
		msg += " body=" + e.Snippet
	}
	return msg
}

func newHTTPError(resp *http.Response, body []byte) error {
	h := &HTTPError{}
	if resp != nil {
		h.StatusCode = resp.StatusCode
		h.Status = resp.Status
	}
	h.Snippet = truncate(body)
	return h
}

func truncate(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	// Keep this small: bodies can be whole HTML error pages.
	const max = 256
	b := body
	if len(b) > max {
		b = b[:max]
	}
	s := strings.ReplaceAll(string(b), "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(body) > max {
		return s + "..."
	}
	return s
}

// IsSourceError reports whether err carries a message from the data source
// and returns it.
func IsSourceError(err error) (string, bool) {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Message, true
	}
	return "", false
}
