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

import "fmt"

// ErrorKind classifies the fatal decode-time failures the core can raise.
// StructureWarning is deliberately absent here: it is never fatal and is
// recorded on a tree node instead of being returned as an error.
type ErrorKind int

const (
	// NotAnAfpFile: the byte at the current offset is not the 0x5A sentinel.
	NotAnAfpFile ErrorKind = iota
	// UnexpectedEof: a read ran past the end of the mapped file.
	UnexpectedEof
	// MalformedSfi: the SFI's internal lengths are inconsistent.
	MalformedSfi
	// MalformedPayload: a payload component's declared length overruns the
	// payload (or a triplet body).
	MalformedPayload
	// IoError: opening or mapping the input file failed.
	IoError
)

func (k ErrorKind) String() string {
	switch k {
	case NotAnAfpFile:
		return "NotAnAfpFile"
	case UnexpectedEof:
		return "UnexpectedEof"
	case MalformedSfi:
		return "MalformedSfi"
	case MalformedPayload:
		return "MalformedPayload"
	case IoError:
		return "IoError"
	default:
		return "UnknownError"
	}
}

// DecodeError is the error type returned by Decoder.Next for every fatal
// condition. Offset always points at the byte that triggered the failure so
// callers can locate it without re-scanning the file.
type DecodeError struct {
	Kind   ErrorKind
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
