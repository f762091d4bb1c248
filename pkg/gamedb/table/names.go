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

// NameTable assigns each unique display name a position in the name blob.
// Offsets are handed out in insertion order, each name reserving its length
// plus one byte for the terminator.
type NameTable struct {
	offsets map[string]uint32
	names   []string
	base    uint32
	next    uint32
}

func NewNameTable(base uint32) *NameTable {
	return &NameTable{
		offsets: make(map[string]uint32),
		base:    base,
		next:    base,
	}
}

// Add returns the offset of name, assigning the next free one on first use.
func (nt *NameTable) Add(name string) uint32 {
	if off, ok := nt.offsets[name]; ok {
		return off
	}

	off := nt.next
	nt.offsets[name] = off
	nt.names = append(nt.names, name)
	nt.next += uint32(len(name)) + 1 //nolint:gosec // names are bounded by the DAT size
	return off
}

func (nt *NameTable) Offset(name string) (uint32, bool) {
	off, ok := nt.offsets[name]
	return off, ok
}

// Names returns the names in insertion order, which is also blob order.
func (nt *NameTable) Names() []string {
	out := make([]string, len(nt.names))
	copy(out, nt.names)
	return out
}

func (nt *NameTable) Len() int {
	return len(nt.names)
}

// Base is the offset of the first name.
func (nt *NameTable) Base() uint32 {
	return nt.base
}

// Size is the length of the name blob in bytes, terminators included.
func (nt *NameTable) Size() int {
	return int(nt.next - nt.base)
}
