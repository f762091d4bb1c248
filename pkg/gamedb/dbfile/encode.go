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
	"io"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Stats describes an encoded file.
type Stats struct {
	Records int
	Names   int
	Bytes   int64
	// TruncatedIDs counts FormatRegion identifiers longer than the field.
	TruncatedIDs int
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err //nolint:wrapcheck // passthrough writer
}

// Encode writes t to w. The table must have been built with the base of the
// same format, otherwise the stored offsets would not point at the names.
func Encode(w io.Writer, t *table.Table, format Format) (Stats, error) {
	var stats Stats

	names := t.Names()
	if want := format.NameBase(t.Len()); names.Base() != want {
		return stats, fmt.Errorf("name base %d does not match %s layout base %d",
			names.Base(), format, want)
	}

	cw := &countingWriter{w: w}
	rec := make([]byte, format.RecordSize())

	for _, id := range t.Identifiers() {
		r, _ := t.Record(id)
		off, ok := t.NameOffset(id)
		if !ok {
			return stats, fmt.Errorf("no name offset for identifier %s", id)
		}

		switch format {
		case FormatIDOnly:
			if !validIDOnly(id) {
				return stats, &IdentifierWidthError{ID: id}
			}
			copy(rec[:IDSize], id)
			binary.BigEndian.PutUint32(rec[IDSize:], off)
			clear(rec[IDSize+OffsetSize:])
		case FormatRegion:
			if putFixed(rec[:IDSize], id, IDSize) {
				stats.TruncatedIDs++
				log.Debug().Msgf("identifier truncated to %d bytes: %s", IDSize, id)
			}
			binary.BigEndian.PutUint32(rec[IDSize:], off)
			putFixed(rec[IDSize+OffsetSize:], r.Region, maxRegionChars)
		default:
			return stats, fmt.Errorf("unknown format: %s", format)
		}

		if _, err := cw.Write(rec); err != nil {
			return stats, fmt.Errorf("failed to write record %s: %w", id, err)
		}
		stats.Records++
	}

	if format == FormatRegion {
		clear(rec)
		if _, err := cw.Write(rec); err != nil {
			return stats, fmt.Errorf("failed to write sentinel: %w", err)
		}
	}

	term := []byte{0}
	for _, name := range names.Names() {
		if _, err := io.WriteString(cw, name); err != nil {
			return stats, fmt.Errorf("failed to write name %q: %w", name, err)
		}
		if _, err := cw.Write(term); err != nil {
			return stats, fmt.Errorf("failed to write name terminator: %w", err)
		}
		stats.Names++
	}

	stats.Bytes = cw.n
	return stats, nil
}

// WriteFile encodes t and writes it to path, replacing any existing file.
// The table is encoded in memory first so an encoding error leaves an
// existing file untouched. Errors are returned as *gamedb.WriteError; a file
// that fails while being written is left as is.
func WriteFile(fs afero.Fs, path string, t *table.Table, format Format) (stats Stats, err error) {
	fail := func(err error) error {
		return &gamedb.WriteError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	stats, err = Encode(&buf, t, format)
	if err != nil {
		var widthErr *IdentifierWidthError
		if errors.As(err, &widthErr) {
			log.Error().Msgf("identifier %q does not fit the %s layout", widthErr.ID, format)
		}
		return stats, fail(err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return stats, fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	f, err := fs.Create(path)
	if err != nil {
		return stats, fail(fmt.Errorf("failed to create file: %w", err))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fail(fmt.Errorf("failed to close file: %w", closeErr))
		}
	}()

	if _, err := buf.WriteTo(f); err != nil {
		return stats, fail(fmt.Errorf("failed to write file: %w", err))
	}

	return stats, nil
}
