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

package afp

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holocm/afp-dump/catalog"
	"github.com/holocm/afp-dump/internal/cp500"
)

// SFI is the decoded Structured Field Introducer: the fixed 8-byte prefix
// that follows the 0x5A sentinel.
type SFI struct {
	SFLen         uint16
	SFID          [3]byte
	Flags         byte
	HasExtension  bool
	ExtensionLen  uint8
	ExtensionData []byte
	PayloadLen    int
}

// DecodedSF is one record emitted by the Decoder.
type DecodedSF struct {
	ShortName string
	SFI       SFI
	Payload   map[string]interface{}
	Offset    int64
}

// TripletRecord is one parsed triplet inside a TRIPLETS payload component.
type TripletRecord struct {
	ShortName string
	Payload   map[string]interface{}
}

func hexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// parseComponents walks a payload schema's components over data in order,
// dispatching on each component's type. It is the generic engine behind
// both SF payloads and triplet bodies.
func parseComponents(components []catalog.Component, data []byte) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(components))
	consumed := 0
	for _, c := range components {
		remaining := len(data) - consumed
		length := c.Length
		if length == 0 {
			length = remaining
		}
		if length > remaining {
			return nil, fmt.Errorf("component %q declares length %d but only %d bytes remain", c.Name, length, remaining)
		}
		chunk := data[consumed : consumed+length]
		consumed += length

		value, ok, err := decodeComponent(c, chunk)
		if err != nil {
			return nil, err
		}
		if ok {
			result[c.Name] = value
		}
	}
	return result, nil
}

func decodeComponent(c catalog.Component, chunk []byte) (value interface{}, ok bool, err error) {
	switch c.Type {
	case catalog.HEXA:
		if len(chunk) <= 1 {
			return nil, false, nil
		}
		return hexUpper(chunk), true, nil
	case catalog.CHAR:
		return trimCP500(chunk), true, nil
	case catalog.GID:
		return trimCP500(chunk), true, nil
	case catalog.CODE:
		return hexUpper(chunk), true, nil
	case catalog.PARAM:
		return hexUpper(chunk), true, nil
	case catalog.UBIN:
		var v uint64
		for _, b := range chunk {
			v = v<<8 | uint64(b)
		}
		return v, true, nil
	case catalog.RESERVED:
		return nil, false, nil
	case catalog.TRIPLETS:
		triplets, err := parseTriplets(chunk)
		if err != nil {
			return nil, false, err
		}
		return triplets, true, nil
	default:
		return nil, false, fmt.Errorf("unknown component type %d", c.Type)
	}
}

func trimCP500(chunk []byte) string {
	s := cp500.Decode(chunk)
	return strings.TrimRight(s, " \x00")
}

// parseTriplets walks a TRIPLETS region: repeated (t_len, t_id, body)
// records until the region is exhausted.
func parseTriplets(data []byte) ([]TripletRecord, error) {
	var out []TripletRecord
	pos := 0
	for pos < len(data) {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("truncated triplet header at byte %d", pos)
		}
		tLen := int(data[pos])
		tID := data[pos+1]
		if tLen < 2 {
			return nil, fmt.Errorf("triplet at byte %d declares t_len %d (< 2)", pos, tLen)
		}
		if pos+tLen > len(data) {
			return nil, fmt.Errorf("triplet at byte %d declares t_len %d, overruns region", pos, tLen)
		}
		body := data[pos+2 : pos+tLen]

		schema, known := catalog.LookupTriplet(tID)
		if !known {
			out = append(out, TripletRecord{
				ShortName: "NA",
				Payload:   map[string]interface{}{"NA": hexUpper(data[pos : pos+tLen])},
			})
		} else {
			payload, err := parseComponents(schema.Components, body)
			if err != nil {
				return nil, fmt.Errorf("triplet %s: %w", schema.ShortName, err)
			}
			out = append(out, TripletRecord{ShortName: schema.ShortName, Payload: payload})
		}
		pos += tLen
	}
	return out, nil
}
