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
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newTestClient(t *testing.T, fs afero.Fs) *Client {
	t.Helper()

	c := NewClient(fs)
	t.Cleanup(c.CloseIdleConnections)
	return c
}

func TestUserAgentTransport_SetsHeader(t *testing.T) {
	t.Parallel()

	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	resp, err := newTestClient(t, afero.NewMemMapFs()).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, UserAgent, got)
}

func TestUserAgentTransport_KeepsExplicitHeader(t *testing.T) {
	t.Parallel()

	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := newTestClient(t, afero.NewMemMapFs())
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")

	resp, err := c.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "custom", got)
}

func TestDownloadFile_UsesTempPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	err := newTestClient(t, fs).DownloadFile(context.Background(), DownloadFileArgs{
		URL:        srv.URL,
		OutputPath: "/dl/file.zip",
		TempPath:   "/dl/file.zip.part",
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/dl/file.zip")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	exists, err := afero.Exists(fs, "/dl/file.zip.part")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDownloadFile_BadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	err := newTestClient(t, fs).DownloadFile(context.Background(), DownloadFileArgs{
		URL:        srv.URL,
		OutputPath: "/dl/file.zip",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status code: 503")

	exists, err := afero.Exists(fs, "/dl/file.zip")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDownloadFile_Incomplete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(100))
		_, _ = w.Write([]byte("short"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	err := newTestClient(t, fs).DownloadFile(context.Background(), DownloadFileArgs{
		URL:        srv.URL,
		OutputPath: "/dl/file.zip",
		TempPath:   "/dl/file.zip.part",
	})
	require.Error(t, err)

	for _, p := range []string{"/dl/file.zip", "/dl/file.zip.part"} {
		exists, existsErr := afero.Exists(fs, p)
		require.NoError(t, existsErr)
		assert.False(t, exists, p)
	}
}

func TestGet_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := newTestClient(t, afero.NewMemMapFs()).Get(ctx, srv.URL)
	if resp != nil {
		_ = resp.Body.Close()
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
