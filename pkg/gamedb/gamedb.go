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

// Package gamedb holds the types shared by the stages that turn a Redump
// serial DAT into the binary game database read by the memory card firmware.
package gamedb

import (
	"fmt"
	"strings"
)

const (
	// DefaultFilename is the name the firmware build expects for the table.
	DefaultFilename = "gamedbgc.dat"
	// DefaultDatURL is the Redump GameCube serial DAT download.
	DefaultDatURL = "http://redump.org/datfile/gc/serial"
)

// Mode selects both the serial parsing policy and the output layout.
type Mode string

const (
	// ModeStrict keeps only serials with at least three dash separated
	// segments, uses the third segment as the identifier and writes the
	// identifier-only layout.
	ModeStrict Mode = "strict"
	// ModePermissive uses the whole serial as the identifier and writes the
	// layout with a region column and an end-of-table sentinel.
	ModePermissive Mode = "permissive"
)

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict:
		return ModeStrict, nil
	case ModePermissive:
		return ModePermissive, nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}

// Record is one retained serial after normalization.
type Record struct {
	DisplayName string
	Identifier  string
	Region      string
}

func (r Record) String() string {
	return fmt.Sprintf("Id %s Region %s Name %s", r.Identifier, r.Region, r.DisplayName)
}
