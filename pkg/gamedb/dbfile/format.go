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

// Package dbfile reads and writes the binary game database.
//
// Both formats are a table of fixed size big-endian records sorted by
// identifier followed by a blob of NUL terminated names.
//
// FormatIDOnly records are 16 bytes:
//
//	0  4  identifier, exactly four ASCII characters
//	4  4  name offset
//	8  8  parent identifier, always zero
//
// FormatRegion records are 12 bytes and the table ends with an all-zero
// record:
//
//	0  4  identifier, zero padded or truncated
//	4  4  name offset
//	8  4  region, at most three characters, zero padded
package dbfile

import (
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/table"
)

type Format int

const (
	FormatIDOnly Format = iota
	FormatRegion
)

const (
	IDSize     = 4
	OffsetSize = 4
	ParentSize = 8
	RegionSize = 4

	IDOnlyRecordSize = IDSize + OffsetSize + ParentSize
	RegionRecordSize = IDSize + OffsetSize + RegionSize

	// idOnlyBaseStride is the per-record share of the name base in
	// FormatIDOnly files. It is smaller than the record size, so offsets
	// are not absolute; DecodeIDOnly resolves them relative to the blob.
	idOnlyBaseStride = 8
	// maxRegionChars leaves room for the terminator the firmware expects.
	maxRegionChars = RegionSize - 1
)

// FormatFor returns the format written in the given mode.
func FormatFor(mode gamedb.Mode) Format {
	if mode == gamedb.ModePermissive {
		return FormatRegion
	}
	return FormatIDOnly
}

func (f Format) String() string {
	switch f {
	case FormatIDOnly:
		return "id-only"
	case FormatRegion:
		return "region"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// RecordSize is the size of one fixed record.
func (f Format) RecordSize() int {
	if f == FormatRegion {
		return RegionRecordSize
	}
	return IDOnlyRecordSize
}

// TableSize is the number of bytes before the name blob, sentinel included.
func (f Format) TableSize(records int) int {
	size := records * f.RecordSize()
	if f == FormatRegion {
		size += RegionRecordSize
	}
	return size
}

// NameBase is the value of the first name offset for a table with the
// given number of records.
func (f Format) NameBase(records int) uint32 {
	if f == FormatRegion {
		return uint32(records*RegionRecordSize + RegionRecordSize) //nolint:gosec // bounded by DAT size
	}
	return uint32(records * idOnlyBaseStride) //nolint:gosec // bounded by DAT size
}

// BaseFunc adapts NameBase for the table builder.
func (f Format) BaseFunc() table.BaseFunc {
	return f.NameBase
}

// IdentifierWidthError is returned when an identifier cannot be stored in
// a FormatIDOnly record.
type IdentifierWidthError struct {
	ID string
}

func (e *IdentifierWidthError) Error() string {
	return fmt.Sprintf("identifier %q is not %d ASCII characters", e.ID, IDSize)
}

// putFixed copies at most limit bytes of s into dst and zero fills the rest.
// It reports whether s was cut short.
func putFixed(dst []byte, s string, limit int) bool {
	n := copy(dst[:limit], s)
	clear(dst[n:])
	return len(s) > n
}

func validIDOnly(id string) bool {
	if len(id) != IDSize {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return r == 0 || r > 0x7f
	})
}
