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

// Package pipeline runs a full database build: fetch, find, parse,
// normalize, build and encode. A failed run must be repeated from scratch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/catalog"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/dbfile"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/report"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/serial"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/table"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Fetcher places a fresh catalog under a directory.
type Fetcher interface {
	Fetch(ctx context.Context, dir string) ([]string, error)
}

// FindFunc locates the catalog file under a directory.
type FindFunc func(root string) (string, error)

type Options struct {
	Fs    afero.Fs
	Clock clockwork.Clock
	// Fetcher is skipped when nil.
	Fetcher Fetcher
	// Find defaults to catalog.Find, which walks the OS filesystem. It is
	// only used when there is no Fetcher.
	Find      FindFunc
	InputDir  string
	OutputDir string
	// Filename defaults to gamedb.DefaultFilename.
	Filename  string
	Mode      gamedb.Mode
	CSVReport bool
}

// Stats summarises a run.
type Stats struct {
	Catalog    string
	OutputPath string
	ReportPath string
	Mode       gamedb.Mode
	Duration   time.Duration
	Bytes      int64
	// Games is the number of game elements, Unserialed of which had no
	// usable serial.
	Games        int
	Unserialed   int
	Serials      int
	Dropped      int
	FoldedNames  int
	Records      int
	Identifiers  int
	Overwritten  int
	Names        int
	TruncatedIDs int
}

func (o *Options) setDefaults() {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Find == nil {
		o.Find = catalog.Find
	}
	if o.Filename == "" {
		o.Filename = gamedb.DefaultFilename
	}
	if o.Mode == "" {
		o.Mode = gamedb.ModeStrict
	}
}

// Run builds the database file described by opts.
//
//nolint:gocritic // options copied so defaults don't leak to the caller
func Run(ctx context.Context, opts Options) (*Stats, error) {
	opts.setDefaults()
	start := opts.Clock.Now()
	stats := &Stats{Mode: opts.Mode}

	if opts.InputDir == "" || opts.OutputDir == "" {
		return nil, errors.New("input and output directories are required")
	}

	catalogPath, err := locateCatalog(ctx, &opts)
	if err != nil {
		return nil, err
	}
	stats.Catalog = catalogPath
	log.Info().Msgf("reading catalog %s", catalogPath)

	parsed, err := catalog.ParseFile(opts.Fs, catalogPath)
	if err != nil {
		return nil, err
	}
	stats.Games = parsed.Games
	stats.Unserialed = parsed.Unserialed

	normalizer := serial.NewNormalizer(opts.Mode)
	records := make([]gamedb.Record, 0, len(parsed.Entries))
	for _, entry := range parsed.Entries {
		records = append(records, normalizer.Normalize(entry.Name, entry.Serials)...)
	}
	ns := normalizer.Stats()
	stats.Serials = ns.Serials
	stats.Dropped = ns.Dropped
	stats.FoldedNames = ns.FoldedNames
	stats.Records = ns.Records

	format := dbfile.FormatFor(opts.Mode)
	t := table.NewBuilder(format.BaseFunc()).Build(records)
	stats.Identifiers = t.Len()
	stats.Overwritten = t.Overwritten
	stats.Names = t.Names().Len()

	log.Info().Msgf("%d game names", stats.Names)
	log.Info().Msgf("%d games", stats.Records)

	outPath := filepath.Join(opts.OutputDir, opts.Filename)
	ds, err := dbfile.WriteFile(opts.Fs, outPath, t, format)
	if err != nil {
		return nil, err
	}
	stats.OutputPath = outPath
	stats.Bytes = ds.Bytes
	stats.TruncatedIDs = ds.TruncatedIDs

	if opts.CSVReport {
		reportPath := report.PathFor(outPath)
		if err := report.WriteFile(opts.Fs, reportPath, t); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		stats.ReportPath = reportPath
	}

	stats.Duration = opts.Clock.Since(start)
	logSummary(stats)

	return stats, nil
}

// locateCatalog uses the freshly fetched catalog when a fetcher is set so
// older DAT files left in the input directory are never picked up.
// Otherwise the input directory is searched.
func locateCatalog(ctx context.Context, opts *Options) (string, error) {
	if opts.Fetcher == nil {
		return opts.Find(opts.InputDir)
	}

	files, err := opts.Fetcher.Fetch(ctx, opts.InputDir)
	if err != nil {
		return "", fmt.Errorf("failed to fetch catalog: %w", err)
	}
	log.Info().Msgf("fetched %d files into %s", len(files), opts.InputDir)

	path, err := catalog.Pick(files)
	if err != nil {
		return "", fmt.Errorf("%w in fetched files", err)
	}
	return path, nil
}

func logSummary(s *Stats) {
	if s.Dropped > 0 {
		log.Warn().Msgf("dropped %d of %d serials without a game code", s.Dropped, s.Serials)
	}
	if s.Unserialed > 0 {
		log.Info().Msgf("skipped %d games without serials", s.Unserialed)
	}
	if s.Overwritten > 0 {
		log.Info().Msgf("%d records replaced by a later record with the same identifier", s.Overwritten)
	}
	if s.TruncatedIDs > 0 {
		log.Warn().Msgf("truncated %d identifiers to %d bytes", s.TruncatedIDs, dbfile.IDSize)
	}

	log.Info().
		Str("mode", string(s.Mode)).
		Int("identifiers", s.Identifiers).
		Int("names", s.Names).
		Int64("bytes", s.Bytes).
		Dur("duration", s.Duration).
		Msgf("wrote %s", s.OutputPath)
}
