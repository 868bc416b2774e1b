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

import "time"

// Classify infers the display kind of a cell.
// Short numbers (two characters or fewer) are numbers even when a date
// layout could read them, so week numbers are never shown as dates.
func Classify(c Cell, loc *time.Location) Kind {
	if c.Null {
		return KindNull
	}
	if c.IsShortNumber() {
		return KindNumber
	}
	if _, ok := ParseDatetime(c.Raw, loc); ok {
		return KindDate
	}
	return KindText
}

// Format returns the display text of a cell. The result is plain text;
// escaping is left to the template that writes it.
func Format(c Cell, loc *time.Location) string {
	switch Classify(c, loc) {
	case KindNull:
		return PlaceholderDash
	case KindNumber:
		return c.Raw
	case KindDate:
		t, _ := ParseDatetime(c.Raw, loc)
		return FormatLongDate(t)
	default:
		return c.Raw
	}
}
