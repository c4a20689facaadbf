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

package protocol

import "fmt"

//
const (
	TrackCount = 4

	statusTrackMask   = 0x03
	statusEOT         = 0x04
	statusTapePresent = 0x08
)

// Status is the bit field returned by GET_STATUS: bits 0-1 hold the current
// track, bit 2 the end of tape latch, bit 3 the tape present sensor.
type Status byte

//
func NewStatus(track byte, eot, tapePresent bool) Status {
	s := Status(track & statusTrackMask)
	if eot {
		s |= statusEOT
	}
	if tapePresent {
		s |= statusTapePresent
	}
	return s
}

// Track returns the 0-based track.
func (s Status) Track() byte {
	return byte(s) & statusTrackMask
}

//
func (s Status) EOT() bool {
	return s&statusEOT != 0
}

//
func (s Status) TapePresent() bool {
	return s&statusTapePresent != 0
}

//
func (s Status) String() string {
	return fmt.Sprintf("track=%d eot=%v tape=%v",
		s.Track()+1, s.EOT(), s.TapePresent())
}
