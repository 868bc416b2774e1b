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

package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := map[string]Theme{
		"dark":  Dark,
		"light": Light,
		"":      Light,
		"DARK":  Light,
		"blue":  Light,
	}
	for in, want := range tests {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToggle(t *testing.T) {
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Error("Toggle must flip between light and dark")
	}
	if !Dark.IsDark() || Light.IsDark() {
		t.Error("IsDark must only hold for the dark theme")
	}
	if Dark.ButtonLabel() != "Light Mode" || Light.ButtonLabel() != "Dark Mode" {
		t.Error("button label should name the mode it switches to")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, Dark)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	if got := FromRequest(req); got != Dark {
		t.Errorf("FromRequest() = %q, want dark", got)
	}

	if got := FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)); got != Light {
		t.Errorf("FromRequest() without cookie = %q, want light", got)
	}
}
