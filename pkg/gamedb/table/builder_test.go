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

package table

import (
	"testing"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func rec(name, id string) gamedb.Record {
	return gamedb.Record{DisplayName: name, Identifier: id}
}

func TestBuild_LastWriteWinsByName(t *testing.T) {
	t.Parallel()

	// encountered with the alphabetically later name first
	records := []gamedb.Record{
		rec("Zelda", "GZLE"),
		rec("Animal Crossing", "GZLE"),
	}

	tbl := NewBuilder(nil).Build(records)

	require.Equal(t, 1, tbl.Len())
	got, ok := tbl.Record("GZLE")
	require.True(t, ok)
	assert.Equal(t, "Zelda", got.DisplayName)
	assert.Equal(t, 1, tbl.Overwritten)
}

func TestBuild_TiesKeepEncounterOrder(t *testing.T) {
	t.Parallel()

	records := []gamedb.Record{
		{DisplayName: "Same", Identifier: "GSAM", Region: "USA"},
		{DisplayName: "Same", Identifier: "GSAM", Region: "EUR"},
	}

	got, ok := NewBuilder(nil).Build(records).Record("GSAM")
	require.True(t, ok)
	assert.Equal(t, "EUR", got.Region)
}

func TestBuild_SortIsCaseSensitive(t *testing.T) {
	t.Parallel()

	// "a" sorts after "Z" in byte order
	records := []gamedb.Record{
		rec("alpha", "GXXX"),
		rec("Zulu", "GXXX"),
	}

	got, _ := NewBuilder(nil).Build(records).Record("GXXX")
	assert.Equal(t, "alpha", got.DisplayName)
}

func TestBuild_NameTableUsesEncounterOrder(t *testing.T) {
	t.Parallel()

	records := []gamedb.Record{
		rec("Zelda", "GZLE"),
		rec("Mario", "GMSE"),
		rec("Zelda", "GZLP"),
		rec("Ape", "GAPE"),
	}

	tbl := NewBuilder(func(n int) uint32 { return uint32(n * 8) }).Build(records)
	names := tbl.Names()

	assert.Equal(t, []string{"Zelda", "Mario", "Ape"}, names.Names())
	assert.Equal(t, uint32(32), names.Base())

	off, ok := names.Offset("Zelda")
	require.True(t, ok)
	assert.Equal(t, uint32(32), off)
	off, _ = names.Offset("Mario")
	assert.Equal(t, uint32(32+6), off)
	off, _ = names.Offset("Ape")
	assert.Equal(t, uint32(32+6+6), off)
	assert.Equal(t, 6+6+4, names.Size())
}

func TestBuild_OverwrittenNameStaysInNameTable(t *testing.T) {
	t.Parallel()

	records := []gamedb.Record{
		rec("Early", "GSAM"),
		rec("Late", "GSAM"),
	}

	tbl := NewBuilder(nil).Build(records)
	assert.Equal(t, []string{"Early", "Late"}, tbl.Names().Names())

	off, ok := tbl.NameOffset("GSAM")
	require.True(t, ok)
	assert.Equal(t, uint32(len("Early")+1), off)
}

func TestBuild_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	records := []gamedb.Record{rec("B", "GBBB"), rec("A", "GAAA")}
	_ = NewBuilder(nil).Build(records)
	assert.Equal(t, "B", records[0].DisplayName)
}

func TestTable_IdentifiersAscending(t *testing.T) {
	t.Parallel()

	tbl := NewBuilder(nil).Build([]gamedb.Record{
		rec("x", "GZZZ"), rec("x", "GAAA"), rec("x", "GMMM"),
	})
	assert.Equal(t, []string{"GAAA", "GMMM", "GZZZ"}, tbl.Identifiers())

	_, ok := tbl.NameOffset("NOPE")
	assert.False(t, ok)
}

func TestNameTable_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	nt := NewNameTable(10)
	assert.Equal(t, uint32(10), nt.Add("abc"))
	assert.Equal(t, uint32(14), nt.Add("de"))
	assert.Equal(t, uint32(10), nt.Add("abc"))
	assert.Equal(t, 2, nt.Len())
	assert.Equal(t, 7, nt.Size())
}

func recordGen() *rapid.Generator[gamedb.Record] {
	return rapid.Custom(func(t *rapid.T) gamedb.Record {
		return gamedb.Record{
			DisplayName: rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "name"),
			Identifier:  rapid.StringMatching(`G[A-C][A-C][EPJ]`).Draw(t, "id"),
		}
	})
}

// TestPropertyOffsetsContiguous checks offset[i+1] - offset[i] == len(name[i]) + 1.
func TestPropertyOffsetsContiguous(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		records := rapid.SliceOf(recordGen()).Draw(t, "records")
		base := rapid.Uint32Range(0, 1<<20).Draw(t, "base")

		tbl := NewBuilder(func(int) uint32 { return base }).Build(records)
		names := tbl.Names().Names()

		prev := base
		for i, name := range names {
			off, ok := tbl.Names().Offset(name)
			if !ok {
				t.Fatalf("name %q has no offset", name)
			}
			if i == 0 && off != base {
				t.Fatalf("first offset %d, want base %d", off, base)
			}
			if off != prev {
				t.Fatalf("offset of %q is %d, want %d", name, off, prev)
			}
			prev = off + uint32(len(name)) + 1
		}
	})
}

// TestPropertyEveryIdentifierHasName checks every record resolves to an
// offset and that the unique identifier count matches the input.
func TestPropertyEveryIdentifierHasName(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		records := rapid.SliceOf(recordGen()).Draw(t, "records")

		unique := map[string]struct{}{}
		for _, r := range records {
			unique[r.Identifier] = struct{}{}
		}

		tbl := NewBuilder(nil).Build(records)
		if tbl.Len() != len(unique) {
			t.Fatalf("got %d identifiers, want %d", tbl.Len(), len(unique))
		}
		for _, id := range tbl.Identifiers() {
			if _, ok := tbl.NameOffset(id); !ok {
				t.Fatalf("identifier %s has no name offset", id)
			}
		}
	})
}
