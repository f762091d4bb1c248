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

package serial

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unknownRune replaces characters that have no ASCII form.
const unknownRune = '?'

// CleanName removes the annotation block of a DAT game name, from the first
// "(" to the last ")", so "Zelda (USA) (Rev 1)" becomes "Zelda".
// The result is folded to ASCII; folded is true when that changed anything.
func CleanName(name string) (clean string, folded bool) {
	if open := strings.IndexByte(name, '('); open >= 0 {
		if end := strings.LastIndexByte(name, ')'); end > open {
			name = name[:open] + name[end+1:]
		}
	}
	name = strings.TrimSpace(name)

	ascii := toASCII(name)
	return ascii, ascii != name
}

// toASCII strips diacritics and replaces whatever is still outside ASCII.
// The firmware only renders single byte characters.
func toASCII(s string) string {
	if isASCII(s) {
		return s
	}

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return unknownRune
		}
		return r
	}, s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
