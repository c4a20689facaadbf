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

/*
	Package sim provides a simulated cartridge deck. The tape is an endless
	loop, as in a real 8-track cartridge: a stretch of end of tape foil,
	followed by the data positions of the four tracks. Time only passes when
	the tape is moved, so the simulation is fully deterministic.
*/
package sim

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/protocol"
	"github.com/xelalexv/lo8/pkg/tape"
)

//
const (
	DefaultFoilLength = 8
	DefaultFFStep     = 64
)

// Deck is a simulated cartridge deck, implementing transport.Deck.
type Deck struct {
	mux sync.Mutex
	//
	tape   *tape.Tape
	head   int
	pos    int
	motor  bool
	ff     bool
	foil   int
	ffStep int
}

// NewDeck creates an empty deck.
func NewDeck() *Deck {
	return &Deck{foil: DefaultFoilLength, ffStep: DefaultFFStep}
}

// Insert puts t into the deck, positioned at the start of the loop, and
// returns the tape that was in the deck before, if any.
func (d *Deck) Insert(t *tape.Tape) *tape.Tape {
	d.mux.Lock()
	defer d.mux.Unlock()
	prev := d.tape
	d.tape = t
	d.pos = 0
	if t != nil {
		log.WithField("tape", t.Name()).Info("tape inserted")
	}
	return prev
}

// Eject removes the tape from the deck and returns it.
func (d *Deck) Eject() *tape.Tape {
	return d.Insert(nil)
}

// WithTape calls f with the inserted tape, or nil, while holding the deck
// lock.
func (d *Deck) WithTape(f func(t *tape.Tape)) {
	d.mux.Lock()
	defer d.mux.Unlock()
	f(d.tape)
}

// Position returns the position within the tape loop.
func (d *Deck) Position() int {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.pos
}

// Head returns the 0-based track the head is on.
func (d *Deck) Head() int {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.head
}

//
func (d *Deck) TapePresent() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.tape != nil
}

//
func (d *Deck) RecordEnabled() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.tape != nil && d.tape.IsRecordEnabled()
}

//
func (d *Deck) EOT() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.onFoil()
}

//
func (d *Deck) HeadHome() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.head == 0
}

//
func (d *Deck) Motor(on bool) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.motor = on
}

//
func (d *Deck) FastForward(on bool) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.ff = on
}

//
func (d *Deck) AdvanceHead() {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.head = (d.head + 1) % protocol.TrackCount
}

// WriteByte records b at the current position, unless the tape is on the
// foil, and moves the tape on by one position.
func (d *Deck) WriteByte(b byte) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.tape == nil || !d.motor {
		return
	}
	if ix := d.pos - d.foil; ix >= 0 {
		d.tape.Put(d.head, ix, b)
	}
	d.advance(1)
}

// ReadByte plays the byte at the current position and moves the tape on by
// one position. There is no data on the foil.
func (d *Deck) ReadByte() (byte, bool) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.tape == nil || !d.motor {
		return 0, false
	}
	ix := d.pos - d.foil
	d.advance(1)
	if ix < 0 {
		return 0, false
	}
	return d.tape.Get(d.head, ix), true
}

// Idle moves the tape by one position when the motor runs, or by the fast
// forward step when fast-forwarding.
func (d *Deck) Idle(time.Duration) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.tape == nil {
		return
	}
	if d.ff {
		d.advance(d.ffStep)
	} else if d.motor {
		d.advance(1)
	}
}

func (d *Deck) onFoil() bool {
	return d.tape != nil && d.pos < d.foil
}

func (d *Deck) advance(n int) {
	d.pos = (d.pos + n) % (d.foil + d.tape.Length())
}
