// Zaparoo GameDB
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo GameDB.
//
// Zaparoo GameDB is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo GameDB is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo GameDB.  If not, see <http://www.gnu.org/licenses/>.

//go:build !deadlock

// Package syncutil wraps the sync mutexes so that builds tagged "deadlock"
// swap in go-deadlock for lock order checking.
package syncutil

import "sync"

const DeadlockEnabled = false

//nolint:gocritic // embedding is the point of the wrapper
type Mutex struct {
	sync.Mutex //nolint:forbidigo // wrapped here
}

//nolint:gocritic // embedding is the point of the wrapper
type RWMutex struct {
	sync.RWMutex //nolint:forbidigo // wrapped here
}
