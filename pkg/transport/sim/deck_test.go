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

package sim

import (
	"testing"

	"github.com/xelalexv/lo8/pkg/tape"
)

func TestDeckPlaysTrackAfterFoil(t *testing.T) {
	d := NewDeck()
	tp := tape.New("t", 3)
	for pos := 0; pos < 3; pos++ {
		tp.Put(1, pos, byte(0x61+pos))
	}
	d.Insert(tp)
	d.AdvanceHead()
	d.Motor(true)

	if !d.EOT() {
		t.Fatal("fresh tape does not start on foil")
	}

	var got []byte
	for ix := 0; ix < DefaultFoilLength+3; ix++ {
		if b, ok := d.ReadByte(); ok {
			got = append(got, b)
		}
	}
	if string(got) != "abc" {
		t.Errorf("played %q, want abc", got)
	}
	if !d.EOT() {
		t.Error("foil not under sensor after end of track")
	}
}

func TestDeckWriteNeedsMotor(t *testing.T) {
	d := NewDeck()
	tp := tape.New("t", 2)
	d.Insert(tp)
	for d.EOT() {
		d.Motor(true)
		d.Idle(0)
	}
	d.Motor(false)

	d.WriteByte(0x55)
	if tp.IsModified() {
		t.Error("write with motor off modified the tape")
	}

	d.Motor(true)
	d.WriteByte(0x55)
	if tp.Get(0, 0) != 0x55 {
		t.Errorf("byte 0 = 0x%02x, want 0x55", tp.Get(0, 0))
	}
}

func TestDeckWithoutTape(t *testing.T) {
	d := NewDeck()
	d.Motor(true)
	d.FastForward(true)
	d.Idle(0)
	if d.TapePresent() || d.RecordEnabled() || d.EOT() {
		t.Error("empty deck reports tape")
	}
	if _, ok := d.ReadByte(); ok {
		t.Error("empty deck played a byte")
	}
}
