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

// Gamedbgen downloads the Redump GameCube serial DAT into inputdir and
// writes the firmware game database to outputdir.
//
// Usage:
//
//	gamedbgen <inputdir> <outputdir>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/fetch"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb/pipeline"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/shared/httpclient"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const usage = "usage: gamedbgen <inputdir> <outputdir>"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return errors.New(usage)
	}
	inputDir, outputDir := args[0], args[1]

	cfg, err := config.NewConfig(config.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	err = helpers.InitLogging(
		config.LogDir(),
		cfg.DebugLogging(),
		[]io.Writer{zerolog.ConsoleWriter{Out: stdout}},
	)
	if err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	opts := pipeline.Options{
		Fs:        fs,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Filename:  cfg.OutputFilename(),
		Mode:      cfg.Mode(),
		CSVReport: cfg.CSVReport(),
	}
	if cfg.DownloadEnabled() {
		opts.Fetcher = fetch.NewClient(
			httpclient.NewClientWithTimeout(fs, cfg.DownloadTimeout()),
			fs,
			cfg.DownloadURL(),
		)
	}

	stats, err := pipeline.Run(ctx, opts)
	if err != nil {
		var writeErr *gamedb.WriteError
		switch {
		case errors.Is(err, gamedb.ErrCatalogNotFound):
			log.Error().Err(err).Msgf("no catalog in %s", inputDir)
		case errors.As(err, &writeErr):
			log.Error().Err(err).Msgf("output %s is incomplete, rerun to replace it", writeErr.Path)
		default:
			log.Error().Err(err).Msg("error building game database")
		}
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Redump %d Game Names\n", stats.Names)
	_, _ = fmt.Fprintf(stdout, "Redump %d Games\n", stats.Records)
	return nil
}
