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

package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/xelalexv/lo8/pkg/link"
	"github.com/xelalexv/lo8/pkg/tape"
	"github.com/xelalexv/lo8/pkg/transport"
	"github.com/xelalexv/lo8/pkg/transport/sim"
)

func startDevice(t *testing.T, tp *tape.Tape) (*link.Session, func()) {

	d := sim.NewDeck()
	if tp != nil {
		d.Insert(tp)
	}
	tr := transport.NewTransport(d, transport.DefaultOptions())

	host, device := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- transport.Serve(ctx, tr, device, time.Millisecond)
	}()

	return link.NewSession(host), func() {
		cancel()
		host.Close()
		device.Close()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("device server did not stop")
		}
	}
}

func newTestDrive() *Drive {
	return &Drive{Baud: link.DefaultBaudRate, Track: -1}
}

func TestValidate(t *testing.T) {

	tests := []struct {
		name  string
		setup func(d *Drive)
		ok    bool
	}{
		{"defaults", func(d *Drive) {}, true},
		{"read", func(d *Drive) { d.Read = true }, true},
		{"write with echo", func(d *Drive) { d.Write, d.Echo = true, true }, true},
		{"read and write", func(d *Drive) { d.Read, d.Write = true, true }, false},
		{"echo without write", func(d *Drive) { d.Echo = true }, false},
		{"track 1", func(d *Drive) { d.Track = 1 }, true},
		{"track 4", func(d *Drive) { d.Track = 4 }, true},
		{"track 0", func(d *Drive) { d.Track = 0 }, false},
		{"track 5", func(d *Drive) { d.Track = 5 }, false},
		{"baud 115200", func(d *Drive) { d.Baud = 115200 }, true},
		{"baud 300", func(d *Drive) { d.Baud = 300 }, false},
		{"negative poll", func(d *Drive) { d.Poll = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDrive()
			tt.setup(d)
			err := d.validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if ExitCode(err) != ExitInvalidSyntax {
					t.Errorf("exit code %d for %v", ExitCode(err), err)
				}
			}
		})
	}
}

func TestExitCode(t *testing.T) {

	tests := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{errors.New("boom"), ExitFailure},
		{link.ErrNoTape, ExitNoTape},
		{fmt.Errorf("reading: %w", link.ErrNoTape), ExitNoTape},
		{invalidArgument("bad"), ExitInvalidSyntax},
		{&link.EchoMismatchError{}, ExitFailure},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.code {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.code)
		}
	}
}

func TestOperateInfo(t *testing.T) {

	s, stop := startDevice(t, tape.New("info", 16))
	defer stop()

	d := newTestDrive()
	d.Track = 2
	d.Seek = true
	d.Info = true

	var out bytes.Buffer
	if err := d.operate(context.Background(), s, nil, &out); err != nil {
		t.Fatal(err)
	}

	want := "Track: 2\nTape: Inserted\nEOT: Absent\n"
	if out.String() != want {
		t.Errorf("info output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestOperateNoTape(t *testing.T) {

	s, stop := startDevice(t, nil)
	defer stop()

	d := newTestDrive()
	d.Track = 3

	err := d.operate(context.Background(), s, nil, &bytes.Buffer{})
	if err != link.ErrNoTape {
		t.Fatalf("want ErrNoTape, got %v", err)
	}
	if ExitCode(err) != ExitNoTape {
		t.Errorf("exit code %d", ExitCode(err))
	}
}

func TestOperateInfoWithoutTape(t *testing.T) {

	s, stop := startDevice(t, nil)
	defer stop()

	d := newTestDrive()
	d.Info = true

	var out bytes.Buffer
	if err := d.operate(context.Background(), s, nil, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Tape: Absent") {
		t.Errorf("info output: %s", out.String())
	}
}

func TestOperateWriteThenRead(t *testing.T) {

	tp := tape.New("rw", 4)
	tp.SetRecordEnabled(true)

	s, stop := startDevice(t, tp)
	defer stop()

	w := newTestDrive()
	w.Track = 4
	w.Seek = true
	w.Write = true
	w.Echo = true

	var echo bytes.Buffer
	if err := w.operate(context.Background(), s,
		strings.NewReader("lo8!"), &echo); err != nil {
		t.Fatalf("write: %v", err)
	}
	if echo.String() != "lo8!" {
		t.Errorf("echo: %q", echo.String())
	}

	r := newTestDrive()
	r.Seek = true
	r.Read = true

	var out bytes.Buffer
	if err := r.operate(context.Background(), s, nil, &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.String() != "lo8!" {
		t.Errorf("read: %q", out.String())
	}
}
