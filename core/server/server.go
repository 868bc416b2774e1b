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

package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jadwal/jadwal/core/controller"
	"github.com/jadwal/jadwal/core/query"
	"github.com/jadwal/jadwal/core/rendering"
	"github.com/jadwal/jadwal/core/sessions"
	"github.com/jadwal/jadwal/core/theme"
	"github.com/jadwal/jadwal/core/views"
	"github.com/jadwal/jadwal/datasources"
)

// Options configures a Server.
type Options struct {
	Title    string
	Location *time.Location // Zone used to show dates, UTC if nil
}

// Server represents the application server with all its dependencies
type Server struct {
	manager  *datasources.Manager
	sessions *sessions.Store
	renderer *rendering.TableRenderer

	title    string
	location *time.Location
}

// NewServer creates a new server serving the sheets of manager
func NewServer(manager *datasources.Manager, store *sessions.Store, opts Options) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Server{
		manager:  manager,
		sessions: store,
		renderer: renderer,
		title:    opts.Title,
		location: loc,
	}, nil
}

// Handler returns the HTTP handler serving the page and its fragments.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+query.PathPage+"{$}", s.handlePage)
	mux.HandleFunc("GET "+query.PathTable, s.handleTable)
	mux.HandleFunc("GET "+query.PathLoad, s.handleLoad)
	mux.HandleFunc("GET "+query.PathSort, s.handleSort)
	mux.HandleFunc("GET "+query.PathSearch, s.handleSearch)
	mux.HandleFunc("POST "+query.PathTheme, s.handleTheme)
	return mux
}

// handlePage renders the full page. A session that has not loaded a sheet
// yet gets the container in loading state and the page loads the
// selected sheet.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	snap := sess.Controller.Snapshot()

	selected := snap.Sheet
	if selected == "" {
		selected = s.manager.DefaultSheet()
	}
	vm := views.BuildPageViewModel(s.title, s.manager.GetSheets(), selected, snap, snap.Theme, s.location)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderPage(w, vm); err != nil {
		// Log the error instead of trying to write an error response
		// since the renderer may have already written to the response
		log.Printf("Page rendering error: %v", err)
	}
}

// handleTable renders the current container without changing state.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	s.writeContainer(w, sess.Controller.Snapshot())
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	sheet := q.Sheet
	if sheet == "" {
		sheet = s.manager.DefaultSheet()
	}
	if !s.manager.HasSheet(sheet) {
		http.Error(w, fmt.Sprintf("Sheet '%s' not found", sheet), http.StatusNotFound)
		return
	}

	sess := s.sessions.Get(w, r)
	snap, err := sess.Controller.Load(r.Context(), sheet)
	if errors.Is(err, controller.ErrSuperseded) {
		// A newer load owns the container.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	// Other failures are part of the snapshot and render as the error state.
	s.writeContainer(w, snap)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	if !q.HasColumn {
		http.Error(w, "Column parameter is required", http.StatusBadRequest)
		return
	}

	sess := s.sessions.Get(w, r)
	snap, err := sess.Controller.SortBy(q.Column)
	if err != nil {
		http.Error(w, fmt.Sprintf("Cannot sort by column %d: %v", q.Column, err), http.StatusBadRequest)
		return
	}
	s.writeContainer(w, snap)
}

// handleSearch applies the search once the input has been quiet for the
// debounce delay. Requests overtaken by a newer one answer 204.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	sess := s.sessions.Get(w, r)

	latest, err := sess.Debouncer.Wait(r.Context())
	if err != nil {
		// Client went away.
		return
	}
	if !latest {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	// A search typed while a sheet loads applies to the loaded sheet.
	if err := sess.Controller.WaitLoaded(r.Context()); err != nil {
		return
	}
	s.writeContainer(w, sess.Controller.Search(q.Search))
}

// handleTheme flips the theme and persists it in a cookie. Form posts are
// redirected back to the page; script callers get 204.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	t := sess.Controller.ToggleTheme()
	theme.Write(w, t)

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, query.PathPage, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeContainer(w http.ResponseWriter, snap controller.Snapshot) {
	vm := views.BuildContainerViewModel(snap, s.location)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderContainer(w, vm); err != nil {
		log.Printf("Template rendering error: %v", err)
	}
}
