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

// EventKind tags what changed in the document tree as a result of feeding
// one decoded structured field to the Projector.
type EventKind int

const (
	// EventDocumentSealed fires the instant an ENG closes a document: the
	// Document is complete and will not be mutated further.
	EventDocumentSealed EventKind = iota
)

// Event is emitted by Projector.Feed so a driver can stream sealed
// documents to a sink without waiting for the whole file to finish.
type Event struct {
	Kind     EventKind
	Document *Document
}

// Projector is a stateful, single-threaded consumer of decoded structured
// fields. It maintains the document/page Begin/End stacks and the rolling
// IMM paper-tray value, and grows a File tree as records are fed to it.
//
// BNG/ENG is the sole document boundary this projector acts on; BDT/EDT are
// cataloged but otherwise inert (see DESIGN.md for why no separate "group"
// node exists).
type Projector struct {
	file      *File
	docStack  []*Document
	pageStack []*Page
	paperTray string
}

// NewProjector returns an empty projector, ready to be fed decoded SFs in
// file order.
func NewProjector() *Projector {
	return &Projector{file: &File{}, paperTray: "NA"}
}

// File returns the document tree built so far. It keeps growing until
// Finalize is called.
func (p *Projector) File() *File { return p.file }

// Feed applies one decoded SF's effect to the document tree and returns any
// events it produced.
func (p *Projector) Feed(sf DecodedSF) []Event {
	switch sf.ShortName {
	case "BNG":
		p.beginDocument()
	case "ENG":
		return p.endDocument()
	case "BPG":
		p.beginPage()
	case "EPG":
		p.endPage()
	case "TLE":
		p.handleTLE(sf)
	case "NOP":
		p.handleNOP(sf)
	case "IMM":
		p.handleIMM(sf)
	}
	return nil
}

// Finalize closes out any Begin markers still open at end of stream,
// recording a StructureWarning on each, and returns the completed tree.
func (p *Projector) Finalize() *File {
	for _, pg := range p.pageStack {
		pg.warn("page not properly closed")
	}
	for _, doc := range p.docStack {
		doc.warn("document not properly closed")
	}
	p.pageStack = nil
	p.docStack = nil
	return p.file
}

func (p *Projector) beginDocument() {
	doc := &Document{Number: len(p.file.Documents) + 1}
	p.file.Documents = append(p.file.Documents, doc)
	p.docStack = append(p.docStack, doc)
	p.file.DocCount++
}

func (p *Projector) endDocument() []Event {
	if len(p.docStack) == 0 {
		p.file.warn("orphan ENG: no open document")
		return nil
	}
	doc := p.docStack[len(p.docStack)-1]
	p.docStack = p.docStack[:len(p.docStack)-1]
	for _, pg := range p.pageStack {
		pg.warn("page not properly closed")
	}
	p.pageStack = nil
	return []Event{{Kind: EventDocumentSealed, Document: doc}}
}

func (p *Projector) beginPage() {
	if len(p.docStack) == 0 {
		p.file.warn("orphan BPG: no open document")
		return
	}
	doc := p.docStack[len(p.docStack)-1]
	pg := &Page{Number: len(doc.Pages) + 1, PaperTray: p.paperTray}
	doc.Pages = append(doc.Pages, pg)
	p.pageStack = append(p.pageStack, pg)
	p.file.PageCount++
}

func (p *Projector) endPage() {
	if len(p.pageStack) == 0 {
		p.file.warn("orphan EPG: no open page")
		return
	}
	p.pageStack = p.pageStack[:len(p.pageStack)-1]
}

func (p *Projector) currentNode() *nodeCommon {
	if n := len(p.pageStack); n > 0 {
		return &p.pageStack[n-1].nodeCommon
	}
	if n := len(p.docStack); n > 0 {
		return &p.docStack[n-1].nodeCommon
	}
	return &p.file.nodeCommon
}

func (p *Projector) handleTLE(sf DecodedSF) {
	raw, ok := sf.Payload["TRIPLETS"]
	if !ok {
		return
	}
	triplets, ok := raw.([]TripletRecord)
	if !ok {
		return
	}

	var name string
	var nameFound bool
	for _, t := range triplets {
		if t.ShortName == "FQN" {
			if n, ok := t.Payload["fqn_name"].(string); ok {
				name, nameFound = n, true
			}
			break
		}
	}
	if !nameFound {
		return
	}

	value := ""
	for _, t := range triplets {
		if t.ShortName == "AttrVal" {
			if v, ok := t.Payload["att_val"].(string); ok {
				value = v
			}
			break
		}
	}

	p.currentNode().addTLE(name, value)
}

func (p *Projector) handleNOP(sf DecodedSF) {
	raw, ok := sf.Payload["UndfData"]
	if !ok {
		return
	}
	if s, ok := raw.(string); ok && s != "" {
		p.currentNode().addNOP(s)
	}
}

func (p *Projector) handleIMM(sf DecodedSF) {
	raw, ok := sf.Payload["MMPName"]
	if !ok {
		return
	}
	if s, ok := raw.(string); ok {
		p.paperTray = s
	}
}
