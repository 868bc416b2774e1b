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

package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"

	"github.com/jadwal/jadwal/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// containerTemplate is the name of the fragment that holds the table
// container. It is rendered inside the page and on its own for fragment
// requests.
const containerTemplate = "container"

// TableRenderer handles rendering of view models to HTML
type TableRenderer struct {
	pageTemplate *template.Template
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// The page template includes the container, so both are parsed together
	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html", "templates/container.html")
	if err != nil {
		return nil, err
	}

	return &TableRenderer{
		pageTemplate: pageTemplate,
	}, nil
}

// RenderPage renders a full PageViewModel to the provided writer
func (r *TableRenderer) RenderPage(w io.Writer, vm views.PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}

// RenderContainer renders only the table container markup
func (r *TableRenderer) RenderContainer(w io.Writer, vm views.ContainerViewModel) error {
	return r.pageTemplate.ExecuteTemplate(w, containerTemplate, vm)
}
