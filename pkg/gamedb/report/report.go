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

// Package report writes a CSV dump of a built table for reviewing DAT
// updates.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/table"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Row struct {
	ID         string `csv:"id"`
	Region     string `csv:"region"`
	Name       string `csv:"name"`
	NameOffset uint32 `csv:"name_offset"`
}

// Rows lists the table in the order the records are written.
func Rows(t *table.Table) []Row {
	ids := t.Identifiers()
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rec, _ := t.Record(id)
		off, _ := t.NameOffset(id)
		rows = append(rows, Row{
			ID:         id,
			Region:     rec.Region,
			Name:       rec.DisplayName,
			NameOffset: off,
		})
	}
	return rows
}

func Write(w io.Writer, t *table.Table) error {
	rows := Rows(t)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return nil
}

// PathFor returns the report path next to a database file.
func PathFor(dbPath string) string {
	return strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".csv"
}

func WriteFile(fs afero.Fs, path string, t *table.Table) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msgf("failed to close report: %s", path)
		}
	}()

	return Write(f, t)
}
