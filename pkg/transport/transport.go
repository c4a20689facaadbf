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
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/protocol"
)

//
const (
	DefaultSeekLimit = 200000
	DefaultSeekStep  = 5 * time.Millisecond
)

//
type Options struct {
	// SeekLimit is the maximum number of steps a seek waits for the end of
	// tape foil, first while fast-forwarding onto it, then while playing
	// past it.
	SeekLimit int
	// SeekStep is the time between two looks at the end of tape sensor
	// during a seek.
	SeekStep time.Duration
}

//
func DefaultOptions() Options {
	return Options{SeekLimit: DefaultSeekLimit, SeekStep: DefaultSeekStep}
}

// State is a snapshot of the transport's logical state.
type State struct {
	Track        byte
	MotorOn      bool
	FFOn         bool
	WriteEnabled bool
	EOTLatched   bool
	TapePresent  bool
}

/*
	Transport owns the logical state of the deck and maps incoming commands
	to actuator changes. Motor and fast forward are never on at the same
	time, and the track only changes while the tape is stationary. The end of
	tape latch is set on the rising edge of the foil sensor and stays set until
	explicitly reset.
*/
type Transport struct {
	deck Deck
	opts Options
	//
	mux          sync.Mutex
	track        byte
	motorOn      bool
	ffOn         bool
	writeEnabled bool
	eotLatched   bool
	eotReported  bool
	foil         bool
}

// NewTransport creates the transport for deck and homes the track head.
func NewTransport(deck Deck, opts Options) *Transport {
	if opts.SeekLimit <= 0 {
		opts.SeekLimit = DefaultSeekLimit
	}
	t := &Transport{deck: deck, opts: opts}
	t.deck.Motor(false)
	t.deck.FastForward(false)
	t.foil = deck.EOT()
	t.Home()
	return t
}

// Home pulses the track solenoid until the head reaches the first track.
func (t *Transport) Home() {
	t.mux.Lock()
	defer t.mux.Unlock()

	for ix := 0; ix < protocol.TrackCount; ix++ {
		if t.deck.HeadHome() {
			t.track = 0
			log.Debug("track head homed")
			return
		}
		t.deck.AdvanceHead()
	}
	log.Warn("track sensor never reported first track, assuming track 1")
	t.track = 0
}

//
func (t *Transport) State() State {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.sample()
	return State{
		Track:        t.track,
		MotorOn:      t.motorOn,
		FFOn:         t.ffOn,
		WriteEnabled: t.writeEnabled,
		EOTLatched:   t.eotLatched,
		TapePresent:  t.deck.TapePresent(),
	}
}

// Handle executes the command in req and returns the response frame, which
// always carries the request's opcode.
func (t *Transport) Handle(req protocol.Frame) protocol.Frame {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.sample()
	resp := protocol.NewFrame(req.Op, t.dispatch(req))

	log.WithFields(log.Fields{
		"request":  req,
		"response": resp,
	}).Debug("COMMAND")

	return resp
}

/*
	Pump returns the next data frame to send to the host while the motor runs
	for reading. The byte after which the end of tape foil comes up is sent
	as DATA_EOT, or a zero byte if the foil comes up without a pending byte.
	After that, no more data is sent until the end of tape latch is reset.
*/
func (t *Transport) Pump() (protocol.Frame, bool) {
	t.mux.Lock()
	defer t.mux.Unlock()

	if !t.motorOn || t.writeEnabled || t.eotReported {
		return protocol.Frame{}, false
	}

	b, ok := t.deck.ReadByte()
	if !ok {
		if !t.sample() {
			return protocol.Frame{}, false
		}
		// foil came up between two bytes
		b = 0
	}

	if t.sample() {
		t.eotReported = true
		log.Info("end of tape reached while reading")
		return protocol.NewFrame(protocol.DataEOT, b), true
	}
	return protocol.NewFrame(protocol.Data, b), true
}

// sample looks at the end of tape sensor and sets the latch on a rising
// edge. It returns the latch.
func (t *Transport) sample() bool {
	foil := t.deck.EOT()
	if foil && !t.foil && !t.eotLatched {
		log.Debug("end of tape latched")
		t.eotLatched = true
	}
	t.foil = foil
	return t.eotLatched
}

//
func (t *Transport) resetEOT() {
	t.eotLatched = false
	t.eotReported = false
}

//
func (t *Transport) StartMotor() bool {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.startMotor()
}

//
func (t *Transport) StopMotor() bool {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.stopMotor()
}

//
func (t *Transport) StartFF() bool {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.startFF()
}

//
func (t *Transport) StopFF() bool {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.stopFF()
}

func (t *Transport) startMotor() bool {
	if t.motorOn {
		return false
	}
	t.stopFF()
	t.deck.Motor(true)
	t.motorOn = true
	return true
}

func (t *Transport) stopMotor() bool {
	if !t.motorOn {
		return false
	}
	t.deck.Motor(false)
	t.motorOn = false
	return true
}

func (t *Transport) startFF() bool {
	if t.ffOn {
		return false
	}
	t.stopMotor()
	t.deck.FastForward(true)
	t.ffOn = true
	return true
}

func (t *Transport) stopFF() bool {
	if !t.ffOn {
		return false
	}
	t.deck.FastForward(false)
	t.ffOn = false
	return true
}
