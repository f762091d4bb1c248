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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/zaparoo-gamedb/pkg/gamedb"
	"github.com/ZaparooProject/zaparoo-gamedb/pkg/helpers/syncutil"
	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	AppName       = "gamedbgen"
	CfgFile       = "config.toml"
	LogFile       = "gamedbgen.log"
)

type Values struct {
	Mode         string   `toml:"mode" validate:"required,mode"`
	Download     Download `toml:"download"`
	Output       Output   `toml:"output"`
	ConfigSchema int      `toml:"config_schema"`
	DebugLogging bool     `toml:"debug_logging"`
}

type Download struct {
	URL            string `toml:"url" validate:"omitempty,url"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gte=0,lte=3600"`
	Enabled        bool   `toml:"enabled"`
}

type Output struct {
	Filename  string `toml:"filename" validate:"required,filename"`
	CSVReport bool   `toml:"csv_report"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Mode:         string(gamedb.ModeStrict),
	Download: Download{
		Enabled:        true,
		URL:            gamedb.DefaultDatURL,
		TimeoutSeconds: 60,
	},
	Output: Output{
		Filename: gamedb.DefaultFilename,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// ConfigDir is where the config file lives unless a directory is given.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// LogDir is where the rotating log file is written.
func LogDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// NewConfig loads config.toml from configDir, writing the defaults there
// first if it does not exist yet.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfg := Instance{
		cfgPath:  filepath.Join(configDir, CfgFile),
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfg.cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfg.cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := Validate(&newVals); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.cfgPath, err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

// Mode returns the configured mode. Values are validated on load so an
// unknown mode falls back to strict only for hand-built instances.
func (c *Instance) Mode() gamedb.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mode, err := gamedb.ParseMode(c.vals.Mode)
	if err != nil {
		return gamedb.ModeStrict
	}
	return mode
}

func (c *Instance) DownloadEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Download.Enabled && c.vals.Download.URL != ""
}

func (c *Instance) DownloadURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Download.URL
}

func (c *Instance) DownloadTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Download.TimeoutSeconds) * time.Second
}

func (c *Instance) OutputFilename() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.Filename
}

func (c *Instance) CSVReport() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Output.CSVReport
}
