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

package control

import (
	"fmt"
	"strings"

	"github.com/xelalexv/lo8/pkg/daemon"
)

//
type Status struct {
	Synced      bool  `json:"synced"`
	Track       int   `json:"track"`
	Motor       bool  `json:"motor"`
	FastForward bool  `json:"fastForward"`
	Write       bool  `json:"write"`
	EOT         bool  `json:"eot"`
	Position    int   `json:"position"`
	Tape        *Tape `json:"tape,omitempty"`
}

//
func newStatus(st *daemon.DeckStatus) *Status {
	ret := &Status{
		Synced:      st.Synced,
		Track:       int(st.Track) + 1,
		Motor:       st.MotorOn,
		FastForward: st.FFOn,
		Write:       st.WriteEnabled,
		EOT:         st.EOTLatched,
		Position:    st.Position,
	}
	if st.Tape != nil {
		ret.Tape = &Tape{
			Name:     strings.TrimSpace(st.Tape.Name()),
			Length:   st.Tape.Length(),
			Record:   st.Tape.IsRecordEnabled(),
			Modified: st.Tape.IsModified(),
		}
	}
	return ret
}

//
func (s *Status) equal(o *Status) bool {
	if s.Tape == nil || o.Tape == nil {
		if s.Tape != o.Tape {
			return false
		}
	} else if *s.Tape != *o.Tape {
		return false
	}
	return s.Synced == o.Synced && s.Track == o.Track && s.Motor == o.Motor &&
		s.FastForward == o.FastForward && s.Write == o.Write &&
		s.EOT == o.EOT && s.Position == o.Position
}

//
func (s *Status) String() string {

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	ret := fmt.Sprintf("\nlink:      %s\n", map[bool]string{
		true: "synced", false: "waiting for port"}[s.Synced])
	ret += fmt.Sprintf("track:     %d\n", s.Track)
	ret += fmt.Sprintf("motor:     %s\n", onOff(s.Motor))
	ret += fmt.Sprintf("ff:        %s\n", onOff(s.FastForward))
	ret += fmt.Sprintf("write:     %s\n", onOff(s.Write))
	ret += fmt.Sprintf("eot:       %s\n", onOff(s.EOT))

	if s.Tape == nil {
		ret += "tape:      <none>\n"
	} else {
		ret += fmt.Sprintf("tape:      %s\n", s.Tape.String())
		ret += fmt.Sprintf("position:  %d\n", s.Position)
	}
	return ret
}

//
type Tape struct {
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Record   bool   `json:"record"`
	Modified bool   `json:"modified"`
}

//
func (t *Tape) String() string {

	name := t.Name
	if name == "" {
		name = "<no name>"
	}

	rec := 'p'
	if t.Record {
		rec = 'r'
	}

	mod := ' '
	if t.Modified {
		mod = '*'
	}

	return fmt.Sprintf("%-16s%c%c %d bytes/track", name, rec, mod, t.Length)
}

// Change is sent to long poll clients when the deck changes.
type Change struct {
	Status *Status `json:"status"`
}
