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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Entry is a game element from a serial DAT with its raw serial strings.
type Entry struct {
	Name    string
	Serials []string
}

// Result is the parsed catalog. Games counts every game element seen,
// including the Unserialed ones which have no entry.
type Result struct {
	Entries    []Entry
	Games      int
	Unserialed int
}

// datGame only decodes the child elements; the name attribute is read from
// the start element so a missing attribute can be told apart from an empty one.
type datGame struct {
	Serials []datSerial `xml:"serial"`
}

type datSerial struct {
	Text string `xml:",chardata"`
}

// Parse reads a serial DAT. Only game elements that are direct children of
// the root are considered. A game without a name attribute fails the whole
// parse.
func Parse(r io.Reader) (*Result, error) {
	dec := xml.NewDecoder(r)
	res := &Result{}
	depth := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth != 1 || t.Name.Local != "game" {
				depth++
				continue
			}

			index := res.Games
			res.Games++

			name, ok := nameAttr(t)
			if !ok {
				return nil, &gamedb.MalformedEntryError{Index: index}
			}

			var game datGame
			if err := dec.DecodeElement(&game, &t); err != nil {
				return nil, fmt.Errorf("failed to decode game %q: %w", name, err)
			}

			serials := splitSerials(game)
			if len(serials) == 0 {
				res.Unserialed++
				log.Debug().Msgf("skipping game without serials: %s", name)
				continue
			}

			res.Entries = append(res.Entries, Entry{
				Name:    name,
				Serials: serials,
			})
		case xml.EndElement:
			depth--
		}
	}

	return res, nil
}

// ParseFile opens path on fs and parses it as a serial DAT.
func ParseFile(fs afero.Fs, path string) (*Result, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close catalog")
		}
	}()

	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return res, nil
}

func nameAttr(se xml.StartElement) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == "name" {
			return a.Value, true
		}
	}
	return "", false
}

// splitSerials returns the trimmed, non-empty pieces of the first serial
// element. Any further serial elements are ignored.
func splitSerials(game datGame) []string {
	if len(game.Serials) == 0 {
		return nil
	}

	parts := strings.Split(game.Serials[0].Text, ",")
	serials := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			serials = append(serials, p)
		}
	}
	return serials
}
