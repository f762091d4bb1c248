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
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrTruncated = errors.New("game database is truncated")

// Entry is a decoded record. Name is empty when the offset does not point
// at a name, which is how the firmware treats it too.
type Entry struct {
	ID         string
	Region     string
	Name       string
	NameOffset uint32
}

// Database is a decoded game database.
type Database struct {
	index   map[string]int
	entries []Entry
}

// Decode reads a FormatRegion file: records up to the all-zero sentinel,
// names resolved as absolute file offsets.
func Decode(data []byte) (*Database, error) {
	db := &Database{index: make(map[string]int)}

	for pos := 0; ; pos += RegionRecordSize {
		if pos+RegionRecordSize > len(data) {
			return nil, fmt.Errorf("%w: no end of table marker", ErrTruncated)
		}
		rec := data[pos : pos+RegionRecordSize]
		if isZero(rec) {
			break
		}

		off := binary.BigEndian.Uint32(rec[IDSize:])
		db.add(Entry{
			ID:         cString(rec[:IDSize]),
			NameOffset: off,
			Name:       nameAt(data, int64(off)),
			Region:     cString(rec[IDSize+OffsetSize:]),
		})
	}

	return db, nil
}

// DecodeIDOnly reads a FormatIDOnly file holding count records. The format
// has no end marker so the count has to be known. Offsets are relative to
// NameBase, counted from the start of the blob.
func DecodeIDOnly(data []byte, count int) (*Database, error) {
	tableSize := FormatIDOnly.TableSize(count)
	if count < 0 || tableSize > len(data) {
		return nil, fmt.Errorf("%w: %d records need %d bytes, have %d",
			ErrTruncated, count, tableSize, len(data))
	}

	base := int64(FormatIDOnly.NameBase(count))
	blob := data[tableSize:]
	db := &Database{index: make(map[string]int, count)}

	for i := range count {
		rec := data[i*IDOnlyRecordSize : (i+1)*IDOnlyRecordSize]
		off := binary.BigEndian.Uint32(rec[IDSize:])
		db.add(Entry{
			ID:         string(rec[:IDSize]),
			NameOffset: off,
			Name:       nameAt(blob, int64(off)-base),
		})
	}

	return db, nil
}

// add appends e. Lookup keeps pointing at the first entry with a given ID
// since the firmware stops scanning at the first match.
func (db *Database) add(e Entry) {
	if _, ok := db.index[e.ID]; !ok {
		db.index[e.ID] = len(db.entries)
	}
	db.entries = append(db.entries, e)
}

// Lookup finds a game by identifier. Like the firmware, only the first four
// characters of id are compared and the first matching record in file order
// is returned.
func (db *Database) Lookup(id string) (Entry, bool) {
	if len(id) > IDSize {
		id = id[:IDSize]
	}
	i, ok := db.index[id]
	if !ok {
		return Entry{}, false
	}
	return db.entries[i], true
}

// Entries returns the records in file order.
func (db *Database) Entries() []Entry {
	out := make([]Entry, len(db.entries))
	copy(out, db.entries)
	return out
}

func (db *Database) Len() int {
	return len(db.entries)
}

func nameAt(data []byte, off int64) string {
	if off < 0 || off >= int64(len(data)) {
		return ""
	}
	return cString(data[off:])
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
