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

// TLE is one (name, value) pair captured from a Tag Logical Element field.
type TLE struct {
	Name  string
	Value string
}

// nodeCommon holds the fields every level of the document tree carries:
// TLE pairs, NOP comments, and any structural warnings recorded against it.
type nodeCommon struct {
	TLE      []TLE
	NOP      []string
	Warnings []string
}

func (n *nodeCommon) addTLE(name, value string) {
	n.TLE = append(n.TLE, TLE{Name: name, Value: value})
}

func (n *nodeCommon) addNOP(comment string) {
	n.NOP = append(n.NOP, comment)
}

func (n *nodeCommon) warn(msg string) {
	n.Warnings = append(n.Warnings, msg)
}

// Page is a leaf of the document tree: one BPG/EPG span.
type Page struct {
	nodeCommon
	Number    int
	PaperTray string
}

// Document is one BNG/ENG span, owning an ordered list of pages.
type Document struct {
	nodeCommon
	Number int
	Pages  []*Page
}

// File is the root of the projected document tree.
type File struct {
	nodeCommon
	Documents []*Document
	DocCount  int
	PageCount int
}
