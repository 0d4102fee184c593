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

// Package sink adapts the projector's document tree to an external writer
// through a minimal open/write/flush/close lifecycle. The sink never
// mutates what it is given; it only reads.
package sink

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/holocm/afp-dump/afp"
)

// Sink is the three-phase lifecycle every output adapter implements.
type Sink interface {
	Open() error
	Write(v interface{}) error
	Flush() error
	Close() error
}

type pageJSON struct {
	PageNumber int    `json:"page_number"`
	BacPapier  string `json:"bac_papier"`
	TLE        []tleJSON `json:"tle"`
	NOP        []string  `json:"nop"`
}

type tleJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type documentJSON struct {
	DocNumber int        `json:"doc_number"`
	Pages     []pageJSON `json:"pages"`
	TLE       []tleJSON  `json:"tle"`
	NOP       []string   `json:"nop"`
}

type summaryJSON struct {
	Name      string   `json:"name"`
	NbOfDocs  int      `json:"nb_of_docs"`
	NbOfPages int      `json:"nb_of_pages"`
	NOP       []string `json:"nop"`
}

type outputJSON struct {
	Documents []documentJSON `json:"documents"`
	AFP       summaryJSON    `json:"afp"`
}

// JSONSink is the reference Sink: it accumulates documents in memory
// (flushing every N documents is tracked as a bookkeeping checkpoint, since
// the final shape is one JSON object closed by Close) and serializes the
// whole tree with jsoniter when Close is called.
type JSONSink struct {
	out        io.Writer
	name       string
	flushEvery int

	pending int
	docs    []documentJSON
	summary summaryJSON
	closed  bool
}

// NewJSONSink returns a Sink that writes to out. flushEvery <= 0 disables
// the periodic-flush checkpoint (everything is held until Close).
func NewJSONSink(out io.Writer, name string, flushEvery int) *JSONSink {
	return &JSONSink{out: out, name: name, flushEvery: flushEvery, summary: summaryJSON{Name: name}}
}

// Open is a no-op for JSONSink: there is no prelude to write before the
// first document arrives.
func (s *JSONSink) Open() error { return nil }

// Write accepts either a sealed *afp.Document (appended to the output) or
// the finalized *afp.File (whose counts and file-level NOPs become the
// "afp" summary block).
func (s *JSONSink) Write(v interface{}) error {
	switch val := v.(type) {
	case *afp.Document:
		s.docs = append(s.docs, toDocumentJSON(val))
		s.pending++
		if s.flushEvery > 0 && s.pending >= s.flushEvery {
			return s.Flush()
		}
	case *afp.File:
		s.summary.NbOfDocs = val.DocCount
		s.summary.NbOfPages = val.PageCount
		s.summary.NOP = val.NOP
	default:
		return fmt.Errorf("sink: unsupported value type %T", v)
	}
	return nil
}

// Flush resets the periodic-flush checkpoint. The reference sink's output
// is a single JSON object, so bytes only actually reach the writer at
// Close; Flush exists so buffering-policy callers (see §4.5) have a place
// to hang the "every N documents" rule.
func (s *JSONSink) Flush() error {
	s.pending = 0
	return nil
}

// Close serializes the accumulated tree as one JSON object and writes it to
// the underlying writer.
func (s *JSONSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	out := outputJSON{Documents: s.docs, AFP: s.summary}
	enc := jsoniter.NewEncoder(s.out)
	return enc.Encode(out)
}

func toDocumentJSON(d *afp.Document) documentJSON {
	pages := make([]pageJSON, len(d.Pages))
	for i, p := range d.Pages {
		pages[i] = pageJSON{
			PageNumber: p.Number,
			BacPapier:  p.PaperTray,
			TLE:        toTLEJSON(p.TLE),
			NOP:        orEmpty(p.NOP),
		}
	}
	return documentJSON{
		DocNumber: d.Number,
		Pages:     pages,
		TLE:       toTLEJSON(d.TLE),
		NOP:       orEmpty(d.NOP),
	}
}

func toTLEJSON(in []afp.TLE) []tleJSON {
	out := make([]tleJSON, len(in))
	for i, t := range in {
		out[i] = tleJSON{Name: t.Name, Value: t.Value}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
