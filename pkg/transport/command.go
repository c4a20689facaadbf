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

package transport

import (
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/protocol"
)

//
func (t *Transport) dispatch(req protocol.Frame) byte {

	switch req.Op {

	case protocol.GetStatus:
		return t.status(req.Data != 0)

	case protocol.SetTrack:
		return t.setTrack(req.Data)

	case protocol.Seek:
		t.seek()
		return 0

	case protocol.StartMotor:
		return flag(t.startMotor())

	case protocol.StopMotor:
		return flag(t.stopMotor())

	case protocol.Write:
		return t.write(req.Data)

	case protocol.StartWrite:
		return t.startWrite()

	case protocol.StopWrite:
		return t.stopWrite()

	case protocol.ResetEOT:
		t.resetEOT()
		return 0
	}

	log.WithField("frame", req).Warn("unknown command")
	return 0
}

// status composes the status byte, and clears the end of tape latch
// afterwards if requested.
func (t *Transport) status(clear bool) byte {
	ret := protocol.NewStatus(t.track, t.eotLatched, t.deck.TapePresent())
	if clear {
		t.resetEOT()
	}
	return byte(ret)
}

// setTrack moves the head to track, but only if track is valid and the tape
// is not moving. The response is always the track the head is on afterwards.
func (t *Transport) setTrack(track byte) byte {

	if track >= protocol.TrackCount {
		log.WithField("track", track).Warn("ignoring invalid track")
		return t.track
	}

	if t.motorOn || t.ffOn {
		log.WithField("track", track).Warn(
			"ignoring track change while tape is moving")
		return t.track
	}

	for pulses := (track + protocol.TrackCount - t.track) % protocol.TrackCount; pulses > 0; pulses-- {
		t.deck.AdvanceHead()
	}
	t.track = track

	log.WithField("track", track+1).Info("track selected")
	return t.track
}

/*
	seek fast-forwards until the end of tape foil comes up, then plays the
	tape until it is past the foil, so that the head sits at the start of the
	track. Write mode is left, and the end of tape latch reset.
*/
func (t *Transport) seek() {

	t.writeEnabled = false

	log.Info("seeking start of track")
	t.startFF()
	found := t.awaitFoil(true)
	t.stopFF()

	if found {
		t.startMotor()
		if !t.awaitFoil(false) {
			log.Warn("tape did not move past end of tape marker")
		}
		t.stopMotor()
	} else {
		log.Warn("no end of tape marker found during seek")
	}

	t.foil = t.deck.EOT()
	t.resetEOT()
}

// awaitFoil waits until the end of tape sensor reports present, or until
// the seek limit is reached. It returns false in the latter case.
func (t *Transport) awaitFoil(present bool) bool {
	for step := 0; step < t.opts.SeekLimit; step++ {
		if t.deck.EOT() == present {
			return true
		}
		t.deck.Idle(t.opts.SeekStep)
	}
	return t.deck.EOT() == present
}

// write writes b while in write mode, and reports whether the end of tape
// latch is set afterwards.
func (t *Transport) write(b byte) byte {
	if !t.writeEnabled || !t.motorOn {
		log.WithField("data", b).Warn("ignoring write outside of write mode")
		return 0
	}
	t.deck.WriteByte(b)
	return flag(t.sample())
}

// startWrite enters write mode if a tape with record tab is present. The
// response is 1 when write mode is active afterwards.
func (t *Transport) startWrite() byte {

	if t.writeEnabled {
		return 1
	}

	if !t.deck.TapePresent() || !t.deck.RecordEnabled() {
		log.Warn("cannot enter write mode, no tape or record tab not set")
		return 0
	}

	t.writeEnabled = true
	t.startMotor()
	log.Info("write mode on")
	return 1
}

//
func (t *Transport) stopWrite() byte {
	if !t.writeEnabled {
		return 0
	}
	t.writeEnabled = false
	t.stopMotor()
	log.Info("write mode off")
	return 1
}

//
func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
