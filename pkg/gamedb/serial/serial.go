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

// Package serial turns raw disc serials such as "DL-DOL-GALE-USA" into
// identifier and region pairs.
package serial

import (
	"strings"
)

const (
	// Separator splits a serial into its segments.
	Separator = "-"
	// identifierSegment is the zero-based segment holding the game code.
	identifierSegment = 2
	// GameCodeLen is the width of a strict identifier in the database.
	GameCodeLen = 4
	// minRegionLen is the shortest trailing segment treated as a region.
	// Anything shorter is a revision marker and the segment before it is used.
	minRegionLen = 3
)

// Identifier returns the game code of a strict serial: the third dash
// separated segment. ok is false when the serial has fewer than three
// segments or the segment is empty.
func Identifier(raw string) (id string, ok bool) {
	parts := strings.Split(raw, Separator)
	if len(parts) <= identifierSegment {
		return "", false
	}
	id = parts[identifierSegment]
	return id, id != ""
}

// IsGameCode reports whether id is a four character ASCII game code.
func IsGameCode(id string) bool {
	if len(id) != GameCodeLen {
		return false
	}
	for i := range len(id) {
		if id[i] == 0 || id[i] > 0x7f {
			return false
		}
	}
	return true
}

// Region returns the region code of a serial. With more than two segments
// the last one is used, or the one before it when the last is shorter than
// three characters. Parenthesised annotations are removed.
func Region(raw string) string {
	parts := strings.Split(raw, Separator)
	if len(parts) <= 2 {
		return ""
	}

	region := parts[len(parts)-1]
	if len(region) < minRegionLen {
		region = parts[len(parts)-2]
	}

	return strings.TrimSpace(StripAnnotations(region))
}

// StripAnnotations removes every "(...)" span, each ending at the first ")"
// after its "(". An unterminated "(" and everything after it is kept.
func StripAnnotations(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			break
		}
		b.WriteString(s[:open])
		s = s[open+end+1:]
	}
	b.WriteString(s)

	return b.String()
}
