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

// Package table deduplicates normalized records into the identifier keyed
// table and the name table that the encoder writes out.
package table

import (
	"sort"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/rs/zerolog/log"
)

// BaseFunc returns the offset of the name blob for a table holding the
// given number of records.
type BaseFunc func(records int) uint32

// Table is the deduplicated game table.
type Table struct {
	records map[string]gamedb.Record
	names   *NameTable
	// Overwritten counts records replaced by a later one with the same
	// identifier.
	Overwritten int
}

// Builder builds tables with a fixed name blob placement.
type Builder struct {
	base BaseFunc
}

// NewBuilder returns a builder. A nil base places the blob at offset zero.
func NewBuilder(base BaseFunc) *Builder {
	return &Builder{base: base}
}

// Build keys the records by identifier. Records are stable sorted by display
// name first and a later record replaces an earlier one with the same
// identifier, so the alphabetically last name wins. The name table is built
// from the records in their original order.
func (b *Builder) Build(records []gamedb.Record) *Table {
	sorted := make([]gamedb.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	t := &Table{
		records: make(map[string]gamedb.Record, len(sorted)),
	}
	for _, rec := range sorted {
		if prev, ok := t.records[rec.Identifier]; ok {
			t.Overwritten++
			log.Debug().Msgf("identifier %s: %q replaced by %q",
				rec.Identifier, prev.DisplayName, rec.DisplayName)
		}
		t.records[rec.Identifier] = rec
	}

	var base uint32
	if b.base != nil {
		base = b.base(len(t.records))
	}
	t.names = NewNameTable(base)
	for _, rec := range records {
		t.names.Add(rec.DisplayName)
	}

	return t
}

// Len is the number of unique identifiers.
func (t *Table) Len() int {
	return len(t.records)
}

// Identifiers returns the table keys in ascending order.
func (t *Table) Identifiers() []string {
	ids := make([]string, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t *Table) Record(id string) (gamedb.Record, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// NameOffset returns the name blob offset of the record stored under id.
func (t *Table) NameOffset(id string) (uint32, bool) {
	rec, ok := t.records[id]
	if !ok {
		return 0, false
	}
	return t.names.Offset(rec.DisplayName)
}

func (t *Table) Names() *NameTable {
	return t.names
}
