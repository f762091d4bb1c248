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

package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
)

// CatalogExt is the extension of DAT files, compared case-insensitively.
const CatalogExt = ".dat"

// IsCatalogFile reports whether a file name looks like a DAT file.
func IsCatalogFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), CatalogExt)
}

// Find walks root and returns the path of the catalog file. Redump names
// carry the release date, so with several DAT files the newest one is used
// (see Pick).
func Find(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", gamedb.ErrCatalogNotFound, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", gamedb.ErrCatalogNotFound, root)
	}

	var mu sync.Mutex
	var matches []string

	conf := fastwalk.Config{
		Follow: false,
	}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Msgf("error walking path: %s", path)
			return nil
		}
		if d.IsDir() || !IsCatalogFile(d.Name()) {
			return nil
		}

		mu.Lock()
		matches = append(matches, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk %s: %w", root, err)
	}

	path, err := Pick(matches)
	if err != nil {
		return "", fmt.Errorf("%w under %s", err, root)
	}
	return path, nil
}

// Pick returns the newest catalog among paths, ignoring anything that is
// not a DAT file. Names are compared by base name, which orders Redump's
// "Serials (YYYYMMDD hh-mm-ss).dat" names by date; the full path breaks ties.
func Pick(paths []string) (string, error) {
	var matches []string
	for _, p := range paths {
		if IsCatalogFile(p) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return "", gamedb.ErrCatalogNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		bi, bj := filepath.Base(matches[i]), filepath.Base(matches[j])
		if bi != bj {
			return bi > bj
		}
		return matches[i] > matches[j]
	})
	if len(matches) > 1 {
		log.Warn().Strs("files", matches).Msgf("multiple catalog files found, using %s", matches[0])
	}

	return matches[0], nil
}
