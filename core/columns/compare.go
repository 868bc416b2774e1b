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
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Locale is the fixed locale used for collation and date names.
var Locale = language.Indonesian

// NewCollator returns a collator for Locale. Collators keep internal
// buffers and must not be shared between goroutines.
func NewCollator() *collate.Collator {
	return collate.New(Locale)
}

// Compare compares two cells.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// When both cells parse as numbers they are compared numerically;
// otherwise their text is compared with the collator. Null cells compare
// as empty text.
func Compare(a, b Cell, c *collate.Collator) int {
	if !a.Null && !b.Null {
		if fa, ok := ParseNumber(a.Raw); ok {
			if fb, ok := ParseNumber(b.Raw); ok {
				return compareFloat64s(fa, fb)
			}
		}
	}
	if c == nil {
		c = NewCollator()
	}
	return c.CompareString(a.String(), b.String())
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0 // Both NaN - equal
	}
	if aNaN {
		return 1 // a is NaN, b isn't - a comes after
	}
	if bNaN {
		return -1 // b is NaN, a isn't - a comes before
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
