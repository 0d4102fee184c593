/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

// Package cp500 decodes IBM code page 500 (EBCDIC, International #5), the
// encoding AFP uses for every CHAR and GID field. No library in the reach of
// this module ships this table (see DESIGN.md), so it is hand-authored here
// and imports nothing.
package cp500

// table is indexed by the raw EBCDIC byte; the value is the Unicode code
// point it maps to under cp500. Unassigned/control positions map to the
// replacement rune so Decode never fails.
var table [256]rune

const replacement = '�'

func init() {
	for i := range table {
		table[i] = replacement
	}
	// C0 controls (each EBCDIC byte mapped to its ASCII control code point)
	// and the space character.
	identity := map[byte]rune{
		0x00: 0x00, 0x01: 0x01, 0x02: 0x02, 0x03: 0x03, 0x37: 0x04,
		0x2D: 0x05, 0x2E: 0x06, 0x2F: 0x07, 0x16: 0x08, 0x05: 0x09,
		0x25: 0x0A, 0x0B: 0x0B, 0x0C: 0x0C, 0x0D: 0x0D, 0x0E: 0x0E,
		0x0F: 0x0F, 0x10: 0x10, 0x11: 0x11, 0x12: 0x12, 0x13: 0x13,
		0x3C: 0x14, 0x3D: 0x15, 0x32: 0x16, 0x26: 0x17, 0x18: 0x18,
		0x19: 0x19, 0x3F: 0x1A, 0x27: 0x1B, 0x1C: 0x1C, 0x1D: 0x1D,
		0x1E: 0x1E, 0x1F: 0x1F, 0x40: ' ',
	}
	for k, v := range identity {
		table[k] = v
	}
	// digits
	digits := "0123456789"
	digitBytes := []byte{0xF0, 0xF1, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6, 0xF7, 0xF8, 0xF9}
	for i, b := range digitBytes {
		table[b] = rune(digits[i])
	}
	// upper-case letters, in cp500's three contiguous runs
	upperRuns := []struct {
		start byte
		runes string
	}{
		{0xC1, "ABCDEFGHI"},
		{0xD1, "JKLMNOPQR"},
		{0xE2, "STUVWXYZ"},
	}
	for _, run := range upperRuns {
		for i, r := range run.runes {
			table[run.start+byte(i)] = r
		}
	}
	// lower-case letters, same run layout shifted down
	lowerRuns := []struct {
		start byte
		runes string
	}{
		{0x81, "abcdefghi"},
		{0x91, "jklmnopqr"},
		{0xA2, "stuvwxyz"},
	}
	for _, run := range lowerRuns {
		for i, r := range run.runes {
			table[run.start+byte(i)] = r
		}
	}
	// punctuation; 0x4F, 0x5A and 0x5F are where cp500 differs from cp037
	punct := map[byte]rune{
		0x4B: '.', 0x4C: '<', 0x4D: '(', 0x4E: '+', 0x4F: '!',
		0x50: '&', 0x5A: ']', 0x5B: '$', 0x5C: '*', 0x5D: ')',
		0x5E: ';', 0x5F: '^', 0x60: '-', 0x61: '/', 0x6A: '¦',
		0x6B: ',', 0x6C: '%', 0x6D: '_', 0x6E: '>', 0x6F: '?',
		0x79: '`', 0x7A: ':', 0x7B: '#', 0x7C: '@', 0x7D: '\'',
		0x7E: '=', 0x7F: '"',
	}
	for k, v := range punct {
		table[k] = v
	}
}

// Decode converts EBCDIC cp500 bytes to a Go string. It never fails: bytes
// with no assigned mapping become U+FFFD. It does not trim whitespace or
// NUL -- callers that need the "trailing space/NUL stripped" rule apply
// strings.TrimRight themselves after decoding.
func Decode(b []byte) string {
	out := make([]rune, len(b))
	for i, c := range b {
		out[i] = table[c]
	}
	return string(out)
}
