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
	"testing"

	"github.com/xelalexv/lo8/pkg/protocol"
	"github.com/xelalexv/lo8/pkg/tape"
	"github.com/xelalexv/lo8/pkg/transport/sim"
)

func newTestTransport(length int, record bool) (*Transport, *sim.Deck, *tape.Tape) {
	d := sim.NewDeck()
	tp := tape.New("test", length)
	tp.SetRecordEnabled(record)
	d.Insert(tp)
	return NewTransport(d, DefaultOptions()), d, tp
}

func handle(t *Transport, op protocol.Opcode, data byte) byte {
	return t.Handle(protocol.NewFrame(op, data)).Data
}

func TestHandleEchoesOpcode(t *testing.T) {
	tr, _, _ := newTestTransport(4, true)
	for op := protocol.GetStatus; op <= protocol.ResetEOT+2; op++ {
		if resp := tr.Handle(protocol.NewFrame(op, 0)); resp.Op != op {
			t.Errorf("response to %s has opcode %s", op, resp.Op)
		}
	}
}

func TestMotorAndFastForwardExclusive(t *testing.T) {
	tr, _, _ := newTestTransport(4, false)

	if !tr.StartFF() {
		t.Fatal("StartFF reported no change")
	}
	if handle(tr, protocol.StartMotor, 0) != 1 {
		t.Error("START_MOTOR reported no change")
	}
	if st := tr.State(); !st.MotorOn || st.FFOn {
		t.Errorf("after START_MOTOR: %+v", st)
	}

	tr.StartFF()
	if st := tr.State(); st.MotorOn || !st.FFOn {
		t.Errorf("after StartFF: %+v", st)
	}
	tr.StopFF()
}

func TestMotorIdempotent(t *testing.T) {
	tr, _, _ := newTestTransport(4, false)

	tests := []struct {
		op   protocol.Opcode
		want byte
	}{
		{protocol.StopMotor, 0},
		{protocol.StartMotor, 1},
		{protocol.StartMotor, 0},
		{protocol.StopMotor, 1},
		{protocol.StopMotor, 0},
	}
	for ix, tc := range tests {
		if got := handle(tr, tc.op, 0); got != tc.want {
			t.Errorf("step %d: %s = %d, want %d", ix, tc.op, got, tc.want)
		}
	}
}

func TestSetTrack(t *testing.T) {
	tr, d, _ := newTestTransport(4, false)

	if got := handle(tr, protocol.SetTrack, 2); got != 2 {
		t.Fatalf("SET_TRACK 2 = %d", got)
	}
	if d.Head() != 2 {
		t.Errorf("head on track %d, want 2", d.Head())
	}

	if got := handle(tr, protocol.SetTrack, 1); got != 1 || d.Head() != 1 {
		t.Errorf("SET_TRACK 1 = %d, head %d", got, d.Head())
	}

	if got := handle(tr, protocol.SetTrack, 4); got != 1 {
		t.Errorf("SET_TRACK 4 = %d, want previous track 1", got)
	}

	handle(tr, protocol.StartMotor, 0)
	if got := handle(tr, protocol.SetTrack, 3); got != 1 {
		t.Errorf("SET_TRACK while moving = %d, want previous track 1", got)
	}
	if d.Head() != 1 {
		t.Errorf("head moved to %d while tape moving", d.Head())
	}

	st := protocol.Status(handle(tr, protocol.GetStatus, 0))
	if st.Track() != 1 || !st.TapePresent() {
		t.Errorf("status = %s", st)
	}
}

func TestEOTLatchSticky(t *testing.T) {
	tr, _, _ := newTestTransport(3, true)

	handle(tr, protocol.Seek, 0)
	if handle(tr, protocol.StartWrite, 0) != 1 {
		t.Fatal("START_WRITE refused")
	}

	for ix, b := range []byte{0x10, 0x20, 0x30} {
		want := byte(0)
		if ix == 2 {
			want = 1
		}
		if eot := handle(tr, protocol.Write, b); eot != want {
			t.Errorf("WRITE %d reported eot=%d, want %d", ix, eot, want)
		}
	}
	handle(tr, protocol.StopWrite, 0)

	for ix := 0; ix < 3; ix++ {
		if st := protocol.Status(handle(tr, protocol.GetStatus, 0)); !st.EOT() {
			t.Fatalf("status %d lost end of tape latch", ix)
		}
	}

	handle(tr, protocol.ResetEOT, 0)
	if st := protocol.Status(handle(tr, protocol.GetStatus, 0)); st.EOT() {
		t.Error("latch still set after RESET_EOT")
	}
}

func TestStatusClearsLatchOnRequest(t *testing.T) {
	tr, _, _ := newTestTransport(2, false)

	handle(tr, protocol.Seek, 0)
	handle(tr, protocol.StartMotor, 0)
	for {
		if f, ok := tr.Pump(); ok && f.Op == protocol.DataEOT {
			break
		}
	}
	handle(tr, protocol.StopMotor, 0)

	if st := protocol.Status(handle(tr, protocol.GetStatus, 1)); !st.EOT() {
		t.Error("status with reset did not report latch set before reset")
	}
	if st := protocol.Status(handle(tr, protocol.GetStatus, 0)); st.EOT() {
		t.Error("latch still set after status with reset")
	}
}

func TestPumpReportsEOTOnce(t *testing.T) {
	tr, _, tp := newTestTransport(3, false)
	for pos := 0; pos < 3; pos++ {
		tp.Put(0, pos, byte(0x41+pos))
	}

	if _, ok := tr.Pump(); ok {
		t.Fatal("pump produced data with motor stopped")
	}

	handle(tr, protocol.Seek, 0)
	handle(tr, protocol.StartMotor, 0)

	var frames []protocol.Frame
	for ix := 0; ix < 20; ix++ {
		if f, ok := tr.Pump(); ok {
			frames = append(frames, f)
		}
	}

	want := []protocol.Frame{
		protocol.NewFrame(protocol.Data, 0x41),
		protocol.NewFrame(protocol.Data, 0x42),
		protocol.NewFrame(protocol.DataEOT, 0x43),
	}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for ix := range want {
		if frames[ix] != want[ix] {
			t.Errorf("frame %d = %s, want %s", ix, frames[ix], want[ix])
		}
	}
}

func TestSeekPositionsPastFoil(t *testing.T) {
	tr, d, _ := newTestTransport(100, false)

	handle(tr, protocol.StartMotor, 0)
	for ix := 0; ix < 50; ix++ {
		d.Idle(0)
	}
	handle(tr, protocol.StopMotor, 0)

	if got := handle(tr, protocol.Seek, 0); got != 0 {
		t.Errorf("SEEK = %d, want 0", got)
	}
	if d.Position() != sim.DefaultFoilLength {
		t.Errorf("position after seek = %d, want %d",
			d.Position(), sim.DefaultFoilLength)
	}
	if st := tr.State(); st.MotorOn || st.FFOn || st.EOTLatched {
		t.Errorf("state after seek: %+v", st)
	}
}

func TestSeekWithoutFoilGivesUp(t *testing.T) {
	d := sim.NewDeck()
	tr := NewTransport(d, Options{SeekLimit: 10})
	if got := handle(tr, protocol.Seek, 0); got != 0 {
		t.Errorf("SEEK = %d, want 0", got)
	}
	if st := tr.State(); st.FFOn || st.MotorOn {
		t.Errorf("transport still moving after failed seek: %+v", st)
	}
}

func TestWriteMode(t *testing.T) {
	tr, _, tp := newTestTransport(4, false)

	if got := handle(tr, protocol.Write, 0x77); got != 0 || tp.IsModified() {
		t.Error("WRITE outside of write mode reached the tape")
	}
	if got := handle(tr, protocol.StartWrite, 0); got != 0 {
		t.Error("START_WRITE accepted without record tab")
	}

	tp.SetRecordEnabled(true)
	if got := handle(tr, protocol.StartWrite, 0); got != 1 {
		t.Fatal("START_WRITE refused with record tab")
	}
	if st := tr.State(); !st.WriteEnabled || !st.MotorOn {
		t.Errorf("state in write mode: %+v", st)
	}
	if got := handle(tr, protocol.StopWrite, 0); got != 1 {
		t.Error("STOP_WRITE reported no change")
	}
	if st := tr.State(); st.WriteEnabled || st.MotorOn {
		t.Errorf("state after write mode: %+v", st)
	}
	if got := handle(tr, protocol.StopWrite, 0); got != 0 {
		t.Error("second STOP_WRITE reported change")
	}
}

func TestStartWriteWithoutTape(t *testing.T) {
	d := sim.NewDeck()
	tr := NewTransport(d, DefaultOptions())
	if got := handle(tr, protocol.StartWrite, 0); got != 0 {
		t.Error("START_WRITE accepted without tape")
	}
	if st := protocol.Status(handle(tr, protocol.GetStatus, 0)); st.TapePresent() {
		t.Error("status reports tape in empty deck")
	}
}
