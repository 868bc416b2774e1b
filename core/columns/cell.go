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
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// PlaceholderDash is shown for absent cells.
const PlaceholderDash = "-"

// Kind is the inferred type of a cell. It is computed when a cell is
// formatted or compared, never stored.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindDate
	KindText
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Cell is a single spreadsheet value kept as its raw text.
type Cell struct {
	Raw  string
	Null bool
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{Raw: s}
}

// Null returns an absent cell.
func Null() Cell {
	return Cell{Null: true}
}

// String returns the raw text, or "" for null cells.
func (c Cell) String() string {
	if c.Null {
		return ""
	}
	return c.Raw
}

// CellFromValue converts a decoded JSON value into a Cell.
// Numbers keep their shortest decimal form so that 3 stays "3".
func CellFromValue(v *structpb.Value) Cell {
	if v == nil {
		return Null()
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return Null()
	case *structpb.Value_NumberValue:
		return Text(FormatNumber(k.NumberValue))
	case *structpb.Value_StringValue:
		return Text(k.StringValue)
	case *structpb.Value_BoolValue:
		return Text(strconv.FormatBool(k.BoolValue))
	case *structpb.Value_ListValue, *structpb.Value_StructValue:
		b, err := protojson.MarshalOptions{Multiline: false}.Marshal(v)
		if err != nil {
			return Null()
		}
		return Text(string(b))
	default:
		return Null()
	}
}

// FormatNumber renders a float the way a spreadsheet shows it: integers
// without a fractional part, other values in their shortest form.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber reports whether raw is a finite decimal number.
// Empty strings are not numbers.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsShortNumber reports whether the cell is a number of at most two
// characters, such as a week number.
func (c Cell) IsShortNumber() bool {
	if c.Null {
		return false
	}
	_, ok := ParseNumber(c.Raw)
	return ok && len(c.Raw) <= 2
}
