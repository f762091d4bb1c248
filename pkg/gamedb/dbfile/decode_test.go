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

package dbfile

import (
	"bytes"
	"testing"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRegion(t *testing.T, records ...gamedb.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := Encode(&buf, build(FormatRegion, records...), FormatRegion)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecode_Lookup(t *testing.T) {
	t.Parallel()

	data := encodeRegion(t,
		gamedb.Record{DisplayName: "Wind Waker", Identifier: "GZLE", Region: "USA"},
		gamedb.Record{DisplayName: "Wind Waker", Identifier: "GZLP", Region: "EUR"},
		gamedb.Record{DisplayName: "Pikmin", Identifier: "DL-DOL-GPIE-USA", Region: "USA"},
	)

	db, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())

	e, ok := db.Lookup("GZLP")
	require.True(t, ok)
	assert.Equal(t, Entry{ID: "GZLP", Region: "EUR", Name: "Wind Waker", NameOffset: 48}, e)

	// only the first four characters are compared
	e, ok = db.Lookup("DL-DOL-GPIE-USA")
	require.True(t, ok)
	assert.Equal(t, "Pikmin", e.Name)

	_, ok = db.Lookup("GXXX")
	assert.False(t, ok)

	entries := db.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "DL-D", entries[0].ID)
}

func TestDecode_TruncatedIDsReturnFirstMatch(t *testing.T) {
	t.Parallel()

	data := encodeRegion(t,
		gamedb.Record{DisplayName: "Second", Identifier: "DL-DOL-GZLE-USA", Region: "USA"},
		gamedb.Record{DisplayName: "First", Identifier: "DL-DOL-GPIE-USA", Region: "USA"},
	)

	db, err := Decode(data)
	require.NoError(t, err)

	entries := db.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "First", entries[0].Name)
	assert.Equal(t, "Second", entries[1].Name)

	e, ok := db.Lookup("DL-D")
	require.True(t, ok)
	assert.Equal(t, "First", e.Name)
}

func TestDecode_MissingSentinel(t *testing.T) {
	t.Parallel()

	data := encodeRegion(t, gamedb.Record{DisplayName: "A", Identifier: "GAAA"})

	_, err := Decode(data[:RegionRecordSize+4])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_BadNameOffset(t *testing.T) {
	t.Parallel()

	data := []byte{
		'G', 'B', 'A', 'D', 0xff, 0xff, 0xff, 0xff, 'U', 'S', 'A', 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	db, err := Decode(data)
	require.NoError(t, err)
	e, ok := db.Lookup("GBAD")
	require.True(t, ok)
	assert.Empty(t, e.Name)
	assert.Equal(t, "USA", e.Region)
}

func TestDecodeIDOnly(t *testing.T) {
	t.Parallel()

	tbl := build(FormatIDOnly,
		gamedb.Record{DisplayName: "Zelda", Identifier: "GZLE"},
		gamedb.Record{DisplayName: "Mario", Identifier: "GMSE"},
	)
	var buf bytes.Buffer
	_, err := Encode(&buf, tbl, FormatIDOnly)
	require.NoError(t, err)

	db, err := DecodeIDOnly(buf.Bytes(), 2)
	require.NoError(t, err)

	e, ok := db.Lookup("GMSE")
	require.True(t, ok)
	assert.Equal(t, "Mario", e.Name)
	assert.Equal(t, uint32(22), e.NameOffset)

	_, err = DecodeIDOnly(buf.Bytes(), 3)
	require.ErrorIs(t, err, ErrTruncated)
}
