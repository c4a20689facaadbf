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
	"github.com/xelalexv/lo8/pkg/protocol"
)

// ReadStatus queries the status byte and leaves the end of tape latch alone.
func (s *Session) ReadStatus() (protocol.Status, error) {
	d, err := s.Send(protocol.GetStatus, 0)
	return protocol.Status(d), err
}

/*
	ReadStatusAndClearLatch queries the status byte and has the device clear
	the end of tape latch in the same round trip. The returned status still
	shows the latch as it was before clearing.
*/
func (s *Session) ReadStatusAndClearLatch() (protocol.Status, error) {
	d, err := s.Send(protocol.GetStatus, 1)
	return protocol.Status(d), err
}

// RequireTape returns ErrNoTape if the tape sensor reports no tape.
func (s *Session) RequireTape() error {
	st, err := s.ReadStatus()
	if err != nil {
		return err
	}
	if !st.TapePresent() {
		return ErrNoTape
	}
	return nil
}

/*
	SetTrack selects the 0-based track. The device echoes the track it is on
	after the request. If that differs from the requested one, the request was
	ignored and a *TrackIgnoredError is returned.
*/
func (s *Session) SetTrack(track byte) error {
	d, err := s.Send(protocol.SetTrack, track)
	if err != nil {
		return err
	}
	if d != track {
		return &TrackIgnoredError{Requested: track, Current: d}
	}
	return nil
}

// Seek positions the tape at the start of the current track.
func (s *Session) Seek() error {
	_, err := s.Send(protocol.Seek, 0)
	return err
}

// StartMotor starts the motor for reading. The returned flag tells whether
// the motor actually had to be started.
func (s *Session) StartMotor() (bool, error) {
	d, err := s.Send(protocol.StartMotor, 0)
	if err != nil {
		return false, err
	}
	s.streaming = true
	return d != 0, nil
}

//
func (s *Session) StopMotor() (bool, error) {
	d, err := s.Send(protocol.StopMotor, 0)
	if err != nil {
		return false, err
	}
	s.streaming = false
	return d != 0, nil
}

// StartWrite enters write mode. The returned flag is false if the device
// refused, e.g. due to a missing tape or record tab, or already was in write
// mode.
func (s *Session) StartWrite() (bool, error) {
	d, err := s.Send(protocol.StartWrite, 0)
	return d != 0, err
}

//
func (s *Session) StopWrite() (bool, error) {
	d, err := s.Send(protocol.StopWrite, 0)
	return d != 0, err
}

// Write writes b to the tape and returns whether the end of tape has been
// reached.
func (s *Session) Write(b byte) (bool, error) {
	d, err := s.Send(protocol.Write, b)
	return d != 0, err
}

//
func (s *Session) ResetEOT() error {
	_, err := s.Send(protocol.ResetEOT, 0)
	return err
}
