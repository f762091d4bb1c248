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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierAndRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		id       string
		region   string
		strictOK bool
	}{
		{
			name:     "revision annotation on long last segment",
			raw:      "GC-US-DOL-001(Rev 1)",
			id:       "DOL",
			region:   "001",
			strictOK: true,
		},
		{
			name:     "plain redump serial",
			raw:      "DL-DOL-GALE-USA",
			id:       "GALE",
			region:   "USA",
			strictOK: true,
		},
		{
			name:     "short revision token falls back to previous segment",
			raw:      "DL-DOL-GALE-USA-0",
			id:       "GALE",
			region:   "USA",
			strictOK: true,
		},
		{
			name:     "two character region before revision",
			raw:      "DL-DOL-GMSJ-JP-0",
			id:       "GMSJ",
			region:   "JP",
			strictOK: true,
		},
		{
			name:     "two character last segment uses the game code",
			raw:      "DL-DOL-GMSJ-JP",
			id:       "GMSJ",
			region:   "GMSJ",
			strictOK: true,
		},
		{
			name:     "annotation with space",
			raw:      "DL-DOL-GALE-USA (Rev 1)",
			id:       "GALE",
			region:   "USA",
			strictOK: true,
		},
		{
			name:     "three segments",
			raw:      "DL-DOL-GAFE",
			id:       "GAFE",
			region:   "GAFE",
			strictOK: true,
		},
		{
			name:   "no dashes",
			raw:    "GALE",
			region: "",
		},
		{
			name:   "two segments",
			raw:    "DL-DOL",
			region: "",
		},
		{
			name:   "empty game code",
			raw:    "DL-DOL-",
			region: "DOL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, ok := Identifier(tt.raw)
			assert.Equal(t, tt.strictOK, ok)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.region, Region(tt.raw))
		})
	}
}

func TestStripAnnotations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "001(Rev 1)", expected: "001"},
		{input: "a(b)c(d)", expected: "ac"},
		{input: "a(b(c)d)", expected: "ad)"},
		{input: "unterminated (x", expected: "unterminated (x"},
		{input: "a)b(c)", expected: "a)b"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, StripAnnotations(tt.input))
		})
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		folded   bool
	}{
		{
			name:     "all trailing annotations",
			input:    "Legend of Zelda, The - The Wind Waker (USA) (Rev 1)",
			expected: "Legend of Zelda, The - The Wind Waker",
		},
		{
			name:     "no annotation",
			input:    "  Ikaruga  ",
			expected: "Ikaruga",
		},
		{
			name:     "closing bracket before opening",
			input:    "Odd ) (x",
			expected: "Odd ) (x",
		},
		{
			name:     "diacritics folded",
			input:    "Pok\u00e9mon Colosseum (Europe)",
			expected: "Pokemon Colosseum",
			folded:   true,
		},
		{
			name:     "non latin replaced",
			input:    "\u30bc\u30eb\u30c0 (Japan)",
			expected: "???",
			folded:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, folded := CleanName(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.folded, folded)
		})
	}
}

func TestIsGameCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want bool
	}{
		{id: "GZLE", want: true},
		{id: "G8ME", want: true},
		{id: "GZL", want: false},
		{id: "GZL01", want: false},
		{id: "", want: false},
		{id: "G\u00c9L", want: false},
		{id: "GZ\x00E", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsGameCode(tt.id))
		})
	}
}
