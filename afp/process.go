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
	"io"

	"github.com/holocm/afp-dump/filter"
)

// Process drives the decode -> project pipeline to completion for one file:
// open, read every structured field in order, feed each to a Projector,
// forwarding sealed-document events to onEvent as they occur. A fatal
// decode error aborts the pipeline immediately; onEvent is never called
// again afterwards. The returned File is only complete once err is nil.
func Process(path string, f *filter.Filter, onEvent func(Event)) (*File, error) {
	dec, err := Open(path, f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	proj := NewProjector()
	for {
		sf, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, ev := range proj.Feed(sf) {
			if onEvent != nil {
				onEvent(ev)
			}
		}
	}
	return proj.Finalize(), nil
}
