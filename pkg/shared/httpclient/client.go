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

package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// DefaultTimeoutSeconds is the default timeout for HTTP requests
	DefaultTimeoutSeconds = 30
	// UserAgent is sent with every request, Redump rejects empty agents.
	UserAgent = "zaparoo-gamedb"
)

// UserAgentTransport sets the User-Agent header on outgoing requests.
type UserAgentTransport struct {
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform HTTP round trip: %w", err)
	}
	return resp, nil
}

// CloseIdleConnections lets http.Client.CloseIdleConnections reach the base
// transport.
func (t *UserAgentTransport) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if ci, ok := base.(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}

// DefaultTransport provides a configured transport with reasonable timeouts
var DefaultTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	IdleConnTimeout:       90 * time.Second,
}

// Client provides an HTTP client with sensible defaults
type Client struct {
	*http.Client
	fs afero.Fs
}

// NewClientWithTimeout creates a new HTTP client with a custom timeout that
// stores downloads on fs.
func NewClientWithTimeout(fs afero.Fs, timeout time.Duration) *Client {
	return &Client{
		Client: &http.Client{
			Transport: &UserAgentTransport{
				Base: DefaultTransport,
			},
			Timeout: timeout,
		},
		fs: fs,
	}
}

// NewClient creates a new HTTP client using the default timeout
func NewClient(fs afero.Fs) *Client {
	return NewClientWithTimeout(fs, DefaultTimeoutSeconds*time.Second)
}

// DownloadFileArgs contains arguments for file download operations
type DownloadFileArgs struct {
	URL        string
	OutputPath string
	TempPath   string
}

// DownloadFile downloads a file from the given URL to the output path
func (c *Client) DownloadFile(ctx context.Context, args DownloadFileArgs) error {
	resp, err := c.Get(ctx, args.URL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}

	// Use temp path if provided, otherwise use output path directly
	outputPath := args.OutputPath
	if args.TempPath != "" {
		outputPath = args.TempPath
	}

	file, err := c.fs.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		c.discard(file, outputPath)
		return fmt.Errorf("error downloading file: %w", err)
	}

	expected := resp.ContentLength
	if expected > 0 && written != expected {
		c.discard(file, outputPath)
		return fmt.Errorf("download incomplete: expected %d bytes, got %d", expected, written)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}

	// Move from temp path to final path if using temp file
	if args.TempPath != "" && args.TempPath != args.OutputPath {
		if err := c.fs.Rename(args.TempPath, args.OutputPath); err != nil {
			removeErr := c.fs.Remove(args.TempPath)
			if removeErr != nil {
				log.Warn().Err(removeErr).Msgf("error removing temp file: %s", args.TempPath)
			}
			return fmt.Errorf("error renaming temp file: %w", err)
		}
	}

	return nil
}

func (c *Client) discard(file afero.File, path string) {
	if closeErr := file.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msgf("error closing file: %s", path)
	}
	if removeErr := c.fs.Remove(path); removeErr != nil {
		log.Warn().Err(removeErr).Msgf("error removing partial download: %s", path)
	}
}

// Get performs a GET request and returns the response
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing GET request: %w", err)
	}
	if resp == nil {
		return nil, errors.New("received nil response")
	}

	return resp, nil
}
