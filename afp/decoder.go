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
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/holocm/afp-dump/catalog"
	"github.com/holocm/afp-dump/filter"
)

const sentinel = 0x5A

// Decoder is a pull-based iterator over the structured fields of one
// memory-mapped AFP file. Between calls it keeps only the current byte
// offset and two byte counters (ParsedBytes, SkippedBytes); callers drive it
// with repeated Next calls.
type Decoder struct {
	file   *os.File
	data   mmap.MMap
	offset int64
	filter *filter.Filter

	parsedBytes  int64
	skippedBytes int64
}

// Open memory-maps path read-only and returns a Decoder positioned at the
// start of the file. f may be nil, in which case every SF is admitted.
func Open(path string, f *filter.Filter) (*Decoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Kind: IoError, Err: err}
	}
	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, &DecodeError{Kind: IoError, Err: err}
	}
	if f == nil {
		f = filter.All()
	}
	return &Decoder{file: file, data: data, filter: f}, nil
}

// Close unmaps the file and releases the underlying file handle.
func (d *Decoder) Close() error {
	var err error
	if d.data != nil {
		err = d.data.Unmap()
	}
	if closeErr := d.file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Offset returns the current byte offset into the mapped file.
func (d *Decoder) Offset() int64 { return d.offset }

// ParsedBytes returns the total number of payload bytes that were walked
// component-by-component (i.e. not skipped by the filter). Exposed for
// tests that verify filtering is actually lazy.
func (d *Decoder) ParsedBytes() int64 { return d.parsedBytes }

// SkippedBytes returns the total number of payload bytes whose region was
// advanced over without being parsed, because the filter rejected the SF.
func (d *Decoder) SkippedBytes() int64 { return d.skippedBytes }

// Next returns the next decoded structured field, or io.EOF once the
// mapping is exhausted. Structured fields skipped by the filter are never
// returned; Next transparently advances past them.
func (d *Decoder) Next() (DecodedSF, error) {
	for {
		if d.offset >= int64(len(d.data)) {
			return DecodedSF{}, io.EOF
		}
		sf, emitted, err := d.readOne()
		if err != nil {
			return DecodedSF{}, err
		}
		if emitted {
			return sf, nil
		}
	}
}

func (d *Decoder) readOne() (sf DecodedSF, emitted bool, err error) {
	start := d.offset
	data := d.data
	size := int64(len(data))

	if data[start] != sentinel {
		return DecodedSF{}, false, &DecodeError{
			Kind: NotAnAfpFile, Offset: start,
			Err: errors.New("expected 0x5A sentinel"),
		}
	}
	if start+9 > size {
		return DecodedSF{}, false, &DecodeError{Kind: UnexpectedEof, Offset: start, Err: errors.New("truncated structured field introducer")}
	}

	sfLen := binary.BigEndian.Uint16(data[start+1 : start+3])
	var sfID [3]byte
	copy(sfID[:], data[start+3:start+6])
	flags := data[start+6]
	hasExt := flags&0x80 != 0
	pos := start + 9

	var extLen uint8
	var extData []byte
	if hasExt {
		if pos+1 > size {
			return DecodedSF{}, false, &DecodeError{Kind: UnexpectedEof, Offset: pos, Err: errors.New("truncated extension length")}
		}
		extLen = data[pos]
		pos++
		if int(extLen) > int(sfLen)-8 {
			return DecodedSF{}, false, &DecodeError{Kind: MalformedSfi, Offset: start, Err: errors.New("extension_len overruns sf_len")}
		}
		if extLen > 1 {
			n := int64(extLen) - 1
			if pos+n > size {
				return DecodedSF{}, false, &DecodeError{Kind: UnexpectedEof, Offset: pos, Err: errors.New("truncated extension data")}
			}
			extData = data[pos : pos+n]
			pos += n
		}
	}

	payloadLen := int(sfLen) - 8
	if hasExt {
		payloadLen -= int(extLen)
	}
	if payloadLen < 0 {
		return DecodedSF{}, false, &DecodeError{Kind: MalformedSfi, Offset: start, Err: errors.New("computed payload_len is negative")}
	}

	recordEnd := start + 1 + int64(sfLen)
	if recordEnd > size {
		return DecodedSF{}, false, &DecodeError{Kind: UnexpectedEof, Offset: start, Err: errors.New("sf_len overruns end of file")}
	}
	if pos+int64(payloadLen) != recordEnd {
		return DecodedSF{}, false, &DecodeError{Kind: MalformedSfi, Offset: start, Err: errors.New("sfi lengths do not account for declared sf_len")}
	}

	schema, known := catalog.LookupSF(sfID)
	shortName := "NA"
	if known {
		shortName = schema.ShortName
	}

	sfi := SFI{
		SFLen: sfLen, SFID: sfID, Flags: flags,
		HasExtension: hasExt, ExtensionLen: extLen, ExtensionData: extData,
		PayloadLen: payloadLen,
	}

	if known && !d.filter.ShouldParse(shortName) {
		d.skippedBytes += int64(payloadLen)
		d.offset = recordEnd
		return DecodedSF{}, false, nil
	}

	payloadBytes := data[pos : pos+int64(payloadLen)]

	var payload map[string]interface{}
	if !known {
		payload = map[string]interface{}{"NA": hexUpper(payloadBytes)}
	} else {
		payload, err = parseComponents(schema.Components, payloadBytes)
		if err != nil {
			return DecodedSF{}, false, &DecodeError{Kind: MalformedPayload, Offset: pos, Err: err}
		}
		d.parsedBytes += int64(payloadLen)
	}

	d.offset = recordEnd
	return DecodedSF{ShortName: shortName, SFI: sfi, Payload: payload, Offset: start}, true, nil
}
