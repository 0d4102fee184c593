/*******************************************************************************
*
* Copyright 2015 Stefan Majewsky <majewsky@gmx.net>
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

// Package errcollector aggregates multiple errors that arise while
// validating or processing something so they can be reported together
// instead of aborting on the first one.
package errcollector

import (
	"errors"
	"fmt"
	"strings"
)

//ErrorCollector is a wrapper around []error that simplifies code where
//multiple errors can happen and need to be aggregated for collective display
//in an error display.
type ErrorCollector struct {
	Errors []error
}

//Add adds an error to this collector. If nil is given, nothing happens, so you
//can safely write
//
//    ec.Add(OperationThatMightFail())
//
//instead of
//
//    err := OperationThatMightFail()
//    if err != nil {
//        ec.Add(err)
//    }
//
func (c *ErrorCollector) Add(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}

//Addf adds an error to this collector by passing the arguments into
//fmt.Errorf(). If only one argument is given, it is used as error string
//verbatim.
func (c *ErrorCollector) Addf(format string, args ...interface{}) {
	if len(args) > 0 {
		c.Errors = append(c.Errors, fmt.Errorf(format, args...))
	} else {
		c.Errors = append(c.Errors, errors.New(format))
	}
}

// HasErrors reports whether any error has been collected so far.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.Errors) > 0
}

// Join renders all collected errors as a single newline-separated error, or
// nil if none were collected.
func (c *ErrorCollector) Join() error {
	if len(c.Errors) == 0 {
		return nil
	}
	lines := make([]string, len(c.Errors))
	for i, err := range c.Errors {
		lines[i] = err.Error()
	}
	return errors.New(strings.Join(lines, "\n"))
}
