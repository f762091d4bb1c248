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

package serial

import (
	"strings"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/rs/zerolog/log"
)

// Stats counts what the normalizer saw. Dropped serials are the ones the
// strict mode could not extract a four character game code from.
type Stats struct {
	Games       int
	Serials     int
	Records     int
	Dropped     int
	FoldedNames int
}

// Normalizer converts catalog entries to records for one mode. It is not
// safe for concurrent use.
type Normalizer struct {
	mode  gamedb.Mode
	stats Stats
}

func NewNormalizer(mode gamedb.Mode) *Normalizer {
	return &Normalizer{mode: mode}
}

func (n *Normalizer) Mode() gamedb.Mode {
	return n.mode
}

func (n *Normalizer) Stats() Stats {
	return n.stats
}

// Normalize returns one record per usable serial of a game. The name is
// cleaned once and shared by all of its records.
func (n *Normalizer) Normalize(name string, serials []string) []gamedb.Record {
	n.stats.Games++

	displayName, folded := CleanName(name)
	if folded {
		n.stats.FoldedNames++
		log.Debug().Msgf("folded game name to ascii: %q -> %q", name, displayName)
	}

	records := make([]gamedb.Record, 0, len(serials))
	for _, raw := range serials {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n.stats.Serials++

		rec, ok := n.record(displayName, raw)
		if !ok {
			n.stats.Dropped++
			log.Debug().Msgf("dropping unparsable serial %q of %q", raw, name)
			continue
		}
		records = append(records, rec)
	}

	n.stats.Records += len(records)
	return records
}

func (n *Normalizer) record(displayName, raw string) (gamedb.Record, bool) {
	rec := gamedb.Record{
		DisplayName: displayName,
		Region:      Region(raw),
	}

	switch n.mode {
	case gamedb.ModePermissive:
		rec.Identifier = raw
	default:
		id, ok := Identifier(raw)
		if !ok || !IsGameCode(id) {
			return gamedb.Record{}, false
		}
		rec.Identifier = id
	}

	return rec, true
}
