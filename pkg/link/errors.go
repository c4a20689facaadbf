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

package link

import (
	"errors"
	"fmt"

	"github.com/xelalexv/lo8/pkg/protocol"
)

// ErrNoTape is returned when an operation requires a tape, but the tape
// sensor reports none.
var ErrNoTape = errors.New("tape not inserted")

// ErrFrameInFlight signals a send attempted while the previous frame is still
// waiting for its response.
var ErrFrameInFlight = errors.New("previous frame still in flight")

// LinkIOError signals that the serial channel failed to deliver a complete
// frame.
type LinkIOError struct {
	Op  protocol.Opcode
	Err error
}

//
func (e *LinkIOError) Error() string {
	return fmt.Sprintf("link I/O error during %s: %v", e.Op, e.Err)
}

//
func (e *LinkIOError) Unwrap() error {
	return e.Err
}

// EchoMismatchError signals that the response did not echo the opcode of the
// request. The link is out of sync when this happens.
type EchoMismatchError struct {
	Expected protocol.Opcode
	Received protocol.Opcode
}

//
func (e *EchoMismatchError) Error() string {
	return fmt.Sprintf("command was not echoed back, got %s instead of %s",
		e.Received, e.Expected)
}

// TrackIgnoredError is returned when the device answers a track change with
// a track other than the requested one.
type TrackIgnoredError struct {
	Requested byte
	Current   byte
}

//
func (e *TrackIgnoredError) Error() string {
	return fmt.Sprintf("track change to %d ignored by device, still on track %d",
		e.Requested+1, e.Current+1)
}
