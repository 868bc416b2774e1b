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

// Package sessions maps browser sessions to their table controllers.
package sessions

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jadwal/jadwal/core/controller"
	"github.com/jadwal/jadwal/core/theme"
	"github.com/jadwal/jadwal/datasources"
)

// CookieName is the name of the cookie carrying the session ID.
const CookieName = "jadwal_session"

// DefaultTTL is how long an unused session is kept.
const DefaultTTL = 30 * time.Minute

// Session is the state of one browser.
type Session struct {
	ID         string
	Controller *controller.Controller
	Debouncer  *controller.Debouncer

	lastSeen time.Time
}

// Store manages sessions in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	loader   datasources.DataSourceLoader
	ttl      time.Duration
	debounce time.Duration
	now      func() time.Time
}

// NewStore creates a store whose sessions load sheets with loader.
// Zero durations select the defaults.
func NewStore(loader datasources.DataSourceLoader, ttl, debounce time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if debounce <= 0 {
		debounce = controller.DefaultDebounce
	}
	return &Store{
		sessions: make(map[string]*Session),
		loader:   loader,
		ttl:      ttl,
		debounce: debounce,
		now:      time.Now,
	}
}

// Get returns the session of the request, creating one and setting its
// cookie when the request has none or its session expired. A new session
// starts with the theme persisted in the request. Expired sessions are
// dropped whenever a new one is created.
func (s *Store) Get(w http.ResponseWriter, r *http.Request) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, err := r.Cookie(CookieName); err == nil && uuid.Validate(c.Value) == nil {
		if sess, ok := s.sessions[c.Value]; ok && now.Sub(sess.lastSeen) < s.ttl {
			sess.lastSeen = now
			return sess
		}
	}

	s.sweepLocked(now)
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: controller.New(s.loader),
		Debouncer:  controller.NewDebouncer(s.debounce),
		lastSeen:   now,
	}
	sess.Controller.SetTheme(theme.FromRequest(r))
	s.sessions[sess.ID] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
