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
	"io/ioutil"
	"os"
	"testing"

	"github.com/xelalexv/lo8/pkg/tape"
	"github.com/xelalexv/lo8/pkg/transport"
)

func withHome(t *testing.T) func() {
	dir, err := ioutil.TempDir("", "lo8-daemon")
	if err != nil {
		t.Fatal(err)
	}
	prev := os.Getenv("HOME")
	os.Setenv("HOME", dir)
	return func() {
		os.Setenv("HOME", prev)
		os.RemoveAll(dir)
	}
}

func newTestDaemon() *Daemon {
	return NewDaemon("", 9600, 0, transport.DefaultOptions())
}

func TestInsertEject(t *testing.T) {
	defer withHome(t)()
	d := newTestDaemon()

	if _, err := d.Eject(false); err != ErrNoTape {
		t.Fatalf("eject empty deck: want ErrNoTape, got %v", err)
	}

	if err := d.Insert(tape.New("one", 8), false); err != nil {
		t.Fatal(err)
	}
	st := d.GetStatus()
	if st.Tape == nil || st.Tape.Name() != "one" {
		t.Fatalf("status does not show inserted tape: %+v", st)
	}
	if !st.TapePresent {
		t.Error("tape present not reported by transport")
	}

	ej, err := d.Eject(false)
	if err != nil {
		t.Fatal(err)
	}
	if ej.Name() != "one" {
		t.Errorf("ejected %q", ej.Name())
	}
	if d.GetStatus().Tape != nil {
		t.Error("deck still holds a tape")
	}
}

func TestModifiedTapeNeedsForce(t *testing.T) {
	defer withHome(t)()
	d := newTestDaemon()

	tp := tape.New("dirty", 8)
	tp.Put(0, 0, 0x55)
	if err := d.Insert(tp, false); err != nil {
		t.Fatal(err)
	}

	if err := d.Insert(tape.New("other", 8), false); err != ErrTapeModified {
		t.Errorf("insert over modified tape: want ErrTapeModified, got %v", err)
	}
	if _, err := d.Eject(false); err != ErrTapeModified {
		t.Errorf("eject modified tape: want ErrTapeModified, got %v", err)
	}
	if _, err := d.Eject(true); err != nil {
		t.Errorf("forced eject: %v", err)
	}
}

func TestSaveClearsModified(t *testing.T) {
	defer withHome(t)()
	d := newTestDaemon()

	if err := d.Save(func(*tape.Tape) error { return nil }); err != ErrNoTape {
		t.Fatalf("save without tape: want ErrNoTape, got %v", err)
	}

	tp := tape.New("dirty", 8)
	tp.Put(1, 3, 0x55)
	d.Insert(tp, false)

	var saved byte
	if err := d.Save(func(t *tape.Tape) error {
		saved = t.Get(1, 3)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if saved != 0x55 {
		t.Errorf("saved wrong data: %#02x", saved)
	}
	if d.GetStatus().Tape.IsModified() {
		t.Error("tape still modified after save")
	}
}

func TestBusyWhileMoving(t *testing.T) {
	defer withHome(t)()
	d := newTestDaemon()
	d.Insert(tape.New("one", 8), false)

	d.transport.StartMotor()
	if _, err := d.Eject(true); err != ErrDeckBusy {
		t.Errorf("eject while motor runs: want ErrDeckBusy, got %v", err)
	}
	if err := d.Insert(tape.New("two", 8), true); err != ErrDeckBusy {
		t.Errorf("insert while motor runs: want ErrDeckBusy, got %v", err)
	}

	d.transport.StopMotor()
	if _, err := d.Eject(true); err != nil {
		t.Errorf("eject after stop: %v", err)
	}
}
