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

	"github.com/xelalexv/lo8/pkg/protocol"
)

// DefaultLength is the number of bytes per track of a blank tape.
const DefaultLength = 16384

/*
	Tape is the content of an 8-track cartridge: four tracks of equal length,
	plus the state of the record tab.
*/
type Tape struct {
	name          string
	recordEnabled bool
	tracks        [protocol.TrackCount][]byte
	modified      bool
	autoSaved     bool
}

// New creates a blank tape with length bytes per track.
func New(name string, length int) *Tape {
	t := &Tape{name: name}
	for ix := range t.tracks {
		t.tracks[ix] = make([]byte, length)
	}
	return t
}

// NewFromTracks creates a tape from existing track data, which must all have
// the same length.
func NewFromTracks(name string, tracks [][]byte) (*Tape, error) {

	if len(tracks) != protocol.TrackCount {
		return nil, fmt.Errorf("tape needs %d tracks, got %d",
			protocol.TrackCount, len(tracks))
	}

	if len(tracks[0]) == 0 {
		return nil, fmt.Errorf("tape tracks must not be empty")
	}

	t := &Tape{name: name}
	for ix, tr := range tracks {
		if len(tr) != len(tracks[0]) {
			return nil, fmt.Errorf(
				"track %d has length %d, but track 1 has %d",
				ix+1, len(tr), len(tracks[0]))
		}
		t.tracks[ix] = tr
	}
	return t, nil
}

//
func (t *Tape) Name() string {
	return t.name
}

//
func (t *Tape) SetName(n string) {
	t.name = n
}

// Length returns the number of bytes per track.
func (t *Tape) Length() int {
	return len(t.tracks[0])
}

//
func (t *Tape) IsRecordEnabled() bool {
	return t.recordEnabled
}

//
func (t *Tape) SetRecordEnabled(r bool) {
	t.recordEnabled = r
}

//
func (t *Tape) IsModified() bool {
	return t.modified
}

//
func (t *Tape) SetModified(m bool) {
	t.modified = m
	if m {
		t.autoSaved = false
	}
}

//
func (t *Tape) IsAutoSaved() bool {
	return t.autoSaved
}

//
func (t *Tape) SetAutoSaved(a bool) {
	t.autoSaved = a
}

// Track returns the data of the 0-based track ix.
func (t *Tape) Track(ix int) []byte {
	if 0 <= ix && ix < len(t.tracks) {
		return t.tracks[ix]
	}
	return nil
}

// Get returns the byte at position pos of track ix.
func (t *Tape) Get(ix, pos int) byte {
	return t.tracks[ix][pos]
}

// Put sets the byte at position pos of track ix and marks the tape modified.
func (t *Tape) Put(ix, pos int, b byte) {
	t.tracks[ix][pos] = b
	t.SetModified(true)
}

// Clone returns a deep copy of this tape.
func (t *Tape) Clone() *Tape {
	ret := *t
	for ix := range t.tracks {
		ret.tracks[ix] = append([]byte(nil), t.tracks[ix]...)
	}
	return &ret
}

//
func (t *Tape) String() string {
	name := t.name
	if name == "" {
		name = "<no name>"
	}
	rec := 'p'
	if t.recordEnabled {
		rec = 'r'
	}
	mod := ' '
	if t.modified {
		mod = '*'
	}
	return fmt.Sprintf("%-16s%c%c %d bytes/track", name, rec, mod, t.Length())
}
