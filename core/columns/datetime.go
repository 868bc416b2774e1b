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

package columns

import (
	"fmt"
	"strings"
	"time"
)

// instantFormats carry their own offset; the parsed instant is moved into
// the display location.
var instantFormats = []string{
	time.RFC3339Nano, // 2006-01-02T15:04:05.999999999Z07:00
	time.RFC3339,     // 2006-01-02T15:04:05Z07:00
}

// localFormats have no offset and are read as wall time in the display location.
var localFormats = []string{
	"2006-01-02T15:04:05",     // ISO without timezone
	"2006-01-02T15:04:05.000", // ISO with milliseconds no TZ
	"2006-01-02 15:04:05",     // Space separator
	"2006-01-02",              // Date only (midnight)
	"2006/01/02",              // YYYY/MM/DD
	"2006-1-2",                // Unpadded ISO
	"1/2/2006",                // M/D/YYYY as spreadsheets display it
	"2 January 2006",          // Day first, full month name
	"2 Jan 2006",              // Day first, short month name
	"02-Jan-2006",             // DD-Mon-YYYY
	"Jan 2, 2006",             // Natural format
	"January 2, 2006",         // Full month name
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// ParseDatetime parses s with the known layouts. Plain numbers are never
// dates.
func ParseDatetime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if _, ok := ParseNumber(s); ok {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, format := range instantFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, format := range localFormats {
		if t, err := time.ParseInLocation(format, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatLongDate formats t as "02 Januari 2006".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %04d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}
