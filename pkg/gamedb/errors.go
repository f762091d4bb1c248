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

package gamedb

import (
	"errors"
	"fmt"
)

// ErrCatalogNotFound is returned when no DAT file exists under the input
// directory. Nothing has been written when it is returned.
var ErrCatalogNotFound = errors.New("no catalog file found")

// MalformedEntryError reports a game element without a name attribute.
// Index is the zero-based position of the game element in the document.
type MalformedEntryError struct {
	Index int
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("game element %d has no name attribute", e.Index)
}

// WriteError wraps any failure while producing the output file. The file
// may be left truncated; the whole run has to be repeated.
type WriteError struct {
	Err  error
	Path string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
