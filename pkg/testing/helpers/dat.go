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

package helpers

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// DATGame describes a game element for BuildDAT.
type DATGame struct {
	Name string
	// Serial is the raw text of the serial element, e.g. "DL-DOL-GALE-USA, DL-DOL-GALE-USA-0".
	Serial string
	// NoName omits the name attribute.
	NoName bool
	// NoSerial omits the serial element.
	NoSerial bool
}

// BuildDAT renders a Redump style serial DAT.
func BuildDAT(games ...DATGame) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString("<datafile>\n")
	b.WriteString("\t<header>\n\t\t<name>Nintendo - GameCube - Serials</name>\n")
	b.WriteString("\t\t<description>Nintendo - GameCube - Serials</description>\n\t</header>\n")

	for _, g := range games {
		b.WriteString("\t<game")
		if !g.NoName {
			b.WriteString(` name="`)
			b.WriteString(escape(g.Name))
			b.WriteString(`"`)
		}
		b.WriteString(">\n\t\t<category>Games</category>\n")
		if !g.NoSerial {
			b.WriteString("\t\t<serial>")
			b.WriteString(escape(g.Serial))
			b.WriteString("</serial>\n")
		}
		b.WriteString("\t</game>\n")
	}

	b.WriteString("</datafile>\n")
	return b.String()
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
