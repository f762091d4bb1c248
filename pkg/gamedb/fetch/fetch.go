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

// Package fetch downloads the zipped serial DAT from Redump.
package fetch

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const archiveName = "redump-dat.zip"

type Client struct {
	httpClient *httpclient.Client
	fs         afero.Fs
	url        string
}

func NewClient(httpClient *httpclient.Client, fs afero.Fs, url string) *Client {
	return &Client{
		httpClient: httpClient,
		fs:         fs,
		url:        url,
	}
}

// Fetch downloads the archive and extracts it into dir, returning the paths
// of the extracted files. Existing files are overwritten.
func (c *Client) Fetch(ctx context.Context, dir string) ([]string, error) {
	if err := c.fs.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	archivePath := filepath.Join(dir, archiveName)
	log.Info().Msgf("downloading %s", c.url)
	err := c.httpClient.DownloadFile(ctx, httpclient.DownloadFileArgs{
		URL:        c.url,
		OutputPath: archivePath,
		TempPath:   archivePath + ".part",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", c.url, err)
	}
	defer func() {
		if removeErr := c.fs.Remove(archivePath); removeErr != nil {
			log.Warn().Err(removeErr).Msgf("failed to remove archive: %s", archivePath)
		}
	}()

	return c.extract(archivePath, dir)
}

func (c *Client) extract(archivePath, dir string) ([]string, error) {
	f, err := c.fs.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close archive")
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	var extracted []string
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}

		target, err := safeJoin(dir, zf.Name)
		if err != nil {
			return extracted, err
		}

		if err := c.extractFile(zf, target); err != nil {
			return extracted, err
		}
		log.Debug().Msgf("extracted %s", target)
		extracted = append(extracted, target)
	}

	if len(extracted) == 0 {
		return nil, errors.New("archive is empty")
	}

	return extracted, nil
}

func (c *Client) extractFile(zf *zip.File, target string) error {
	if err := c.fs.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	src, err := zf.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in archive: %w", zf.Name, err)
	}
	defer func() {
		_ = src.Close()
	}()

	dst, err := c.fs.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	//nolint:gosec // DAT archives are a few hundred KB
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to extract %s: %w", zf.Name, err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}
	return nil
}

// safeJoin resolves an archive member name inside dir, rejecting names that
// would escape it.
func safeJoin(dir, name string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	if clean == "/" {
		return "", fmt.Errorf("invalid archive member name: %q", name)
	}
	return filepath.Join(dir, filepath.FromSlash(clean[1:])), nil
}
