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

package controller

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period used for search input.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces bursts of calls. Each Wait blocks for the quiet
// period; only the call that was not followed by another one within that
// period reports true.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	seq   uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay}
}

// Wait registers a call and waits for the quiet period. It returns true if
// this is still the latest call afterwards, false if it was superseded.
// A cancelled context returns its error.
func (d *Debouncer) Wait(ctx context.Context) (bool, error) {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return mine == d.seq, nil
}
