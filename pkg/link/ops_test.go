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
	"testing"

	"github.com/xelalexv/lo8/pkg/link/linktest"
	"github.com/xelalexv/lo8/pkg/protocol"
)

func TestReadStatusVariants(t *testing.T) {
	port := linktest.NewPort(func(req protocol.Frame) []protocol.Frame {
		return []protocol.Frame{linktest.Echo(req, byte(protocol.NewStatus(2, true, true)))}
	})
	s := NewSession(port)

	st, err := s.ReadStatus()
	if err != nil {
		t.Fatalf("ReadStatus failed: %v", err)
	}
	if st.Track() != 2 || !st.EOT() || !st.TapePresent() {
		t.Errorf("status = %s", st)
	}

	if _, err := s.ReadStatusAndClearLatch(); err != nil {
		t.Fatalf("ReadStatusAndClearLatch failed: %v", err)
	}

	got := port.Sent(protocol.GetStatus)
	if len(got) != 2 || got[0] != 0 || got[1] == 0 {
		t.Errorf("GET_STATUS data bytes = %v, want [0 non-zero]", got)
	}
}

func TestRequireTape(t *testing.T) {
	for _, present := range []bool{true, false} {
		port := linktest.NewPort(func(req protocol.Frame) []protocol.Frame {
			return []protocol.Frame{linktest.Echo(req, byte(protocol.NewStatus(0, false, present)))}
		})
		err := NewSession(port).RequireTape()
		if present && err != nil {
			t.Errorf("RequireTape with tape = %v", err)
		}
		if !present && !errors.Is(err, ErrNoTape) {
			t.Errorf("RequireTape without tape = %v, want ErrNoTape", err)
		}
	}
}

func TestSetTrackIgnored(t *testing.T) {
	port := linktest.NewPort(func(req protocol.Frame) []protocol.Frame {
		return []protocol.Frame{linktest.Echo(req, 1)}
	})
	s := NewSession(port)

	if err := s.SetTrack(1); err != nil {
		t.Errorf("SetTrack(1) = %v", err)
	}

	err := s.SetTrack(3)
	var ignored *TrackIgnoredError
	if !errors.As(err, &ignored) {
		t.Fatalf("SetTrack(3) = %v, want TrackIgnoredError", err)
	}
	if ignored.Requested != 3 || ignored.Current != 1 {
		t.Errorf("ignored = %+v", ignored)
	}
}

func TestWriteReportsEOT(t *testing.T) {
	port := linktest.NewPort(func(req protocol.Frame) []protocol.Frame {
		if req.Data == 0xff {
			return []protocol.Frame{linktest.Echo(req, 1)}
		}
		return []protocol.Frame{linktest.Echo(req, 0)}
	})
	s := NewSession(port)

	if eot, err := s.Write(0x10); err != nil || eot {
		t.Errorf("Write(0x10) = %v, %v", eot, err)
	}
	if eot, err := s.Write(0xff); err != nil || !eot {
		t.Errorf("Write(0xff) = %v, %v", eot, err)
	}
}

func TestValidateBaud(t *testing.T) {
	for _, b := range BaudRates {
		if err := ValidateBaud(b); err != nil {
			t.Errorf("ValidateBaud(%d) = %v", b, err)
		}
	}
	for _, b := range []uint{0, 300, 9601, 230400} {
		if err := ValidateBaud(b); err == nil {
			t.Errorf("ValidateBaud(%d) accepted", b)
		}
	}
}
