/*
   Lo8 - 8-track tape drive controller
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of Lo8.

   Lo8 is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   Lo8 is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with Lo8. If not, see <http://www.gnu.org/licenses/>.
*/

package tape

import (
	"fmt"
	"io"
)

// Reader interface for reading in a tape image
type Reader interface {
	Read(in io.Reader) (*Tape, error)
}

// Writer interface for writing out a tape image
type Writer interface {
	Write(t *Tape, out io.Writer) error
}

// ReaderWriter interface for reading/writing a tape image
type ReaderWriter interface {
	Reader
	Writer
}

//
func NewFormat(typ string) (ReaderWriter, error) {

	switch typ {

	case "lo8", "":
		return NewLo8(), nil

	case "raw", "bin":
		return NewRaw(), nil

	default:
		return nil, fmt.Errorf("unsupported tape image format: %s", typ)
	}
}
