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

// Package theme handles the light/dark preference and its persistence in
// a browser cookie.
package theme

import (
	"net/http"
	"time"
)

// CookieName is the key under which the preference is stored.
const CookieName = "theme"

// cookieMaxAge keeps the preference across browser sessions.
const cookieMaxAge = 365 * 24 * time.Hour

// Theme is the visual mode of the page.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse returns the theme named by s, defaulting to Light.
func Parse(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == Dark
}

// ButtonIcon is the icon of the toggle button. It shows the mode the
// button switches to.
func (t Theme) ButtonIcon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// ButtonLabel is the text of the toggle button.
func (t Theme) ButtonLabel() string {
	if t == Dark {
		return "Light Mode"
	}
	return "Dark Mode"
}

// FromRequest reads the persisted theme, defaulting to Light.
func FromRequest(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Light
	}
	return Parse(c.Value)
}

// Write persists t in the response.
func Write(w http.ResponseWriter, t Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
