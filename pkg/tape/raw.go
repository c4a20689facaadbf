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
	"io/ioutil"

	"github.com/xelalexv/lo8/pkg/protocol"
)

/*
	Raw images are the plain contents of the four tracks, one after the
	other. When reading, the data is split into four tracks of equal length,
	padding the last track with zero bytes as needed.
*/
type Raw struct{}

//
func NewRaw() *Raw {
	return &Raw{}
}

//
func (r *Raw) Read(in io.Reader) (*Tape, error) {

	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty raw image")
	}

	length := (len(data) + protocol.TrackCount - 1) / protocol.TrackCount
	t := New("", length)

	for ix := range t.tracks {
		start := ix * length
		if start < len(data) {
			end := start + length
			if end > len(data) {
				end = len(data)
			}
			copy(t.tracks[ix], data[start:end])
		}
	}

	return t, nil
}

//
func (r *Raw) Write(t *Tape, out io.Writer) error {
	for ix := range t.tracks {
		if _, err := out.Write(t.Track(ix)); err != nil {
			return err
		}
	}
	return nil
}
