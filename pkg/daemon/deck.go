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

package daemon

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/tape"
	"github.com/xelalexv/lo8/pkg/transport"
)

//
var (
	ErrDeckBusy     = errors.New("deck is busy, tape is moving")
	ErrTapeModified = errors.New("tape in deck is modified")
	ErrNoTape       = errors.New("no tape in deck")
)

// DeckStatus is a snapshot of the emulated deck.
type DeckStatus struct {
	transport.State
	Position int
	Synced   bool
	Tape     *tape.Tape
}

// GetStatus returns the state of transport and tape. The tape is a copy.
func (d *Daemon) GetStatus() *DeckStatus {
	ret := &DeckStatus{
		State:    d.transport.State(),
		Position: d.deck.Position(),
		Synced:   d.IsSynced(),
	}
	d.deck.WithTape(func(t *tape.Tape) {
		if t != nil {
			ret.Tape = t.Clone()
		}
	})
	return ret
}

// Insert puts t into the deck. A present tape that has been modified is only
// replaced when force is set.
func (d *Daemon) Insert(t *tape.Tape, force bool) error {

	if d.isMoving() {
		return ErrDeckBusy
	}

	var err error
	d.deck.WithTape(func(present *tape.Tape) {
		if present != nil && present.IsModified() && !force {
			err = ErrTapeModified
		}
	})
	if err != nil {
		return err
	}

	d.deck.Insert(t)
	if err := tape.AutoRemove(); err != nil {
		log.Errorf("error removing auto-save: %v", err)
	}
	return nil
}

// Eject removes the tape from the deck and returns it. A modified tape is only
// ejected when force is set.
func (d *Daemon) Eject(force bool) (*tape.Tape, error) {

	if d.isMoving() {
		return nil, ErrDeckBusy
	}

	var err error
	d.deck.WithTape(func(present *tape.Tape) {
		if present == nil {
			err = ErrNoTape
		} else if present.IsModified() && !force {
			err = ErrTapeModified
		}
	})
	if err != nil {
		return nil, err
	}

	t := d.deck.Eject()
	if err := tape.AutoRemove(); err != nil {
		log.Errorf("error removing auto-save: %v", err)
	}
	log.WithField("tape", t.Name()).Info("tape ejected")
	return t, nil
}

// Save calls f with the tape in the deck, and flags the tape as not modified
// if f succeeds.
func (d *Daemon) Save(f func(t *tape.Tape) error) error {
	var err error
	d.deck.WithTape(func(t *tape.Tape) {
		if t == nil {
			err = ErrNoTape
			return
		}
		if err = f(t); err == nil {
			t.SetModified(false)
		}
	})
	return err
}

//
func (d *Daemon) isMoving() bool {
	st := d.transport.State()
	return st.MotorOn || st.FFOn
}
