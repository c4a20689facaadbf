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

package protocol

import "fmt"

// Opcode identifies the operation carried by a frame. The values are shared
// with the firmware and must never change.
type Opcode byte

//
const (
	GetStatus  Opcode = 0  // get status byte, data != 0 also clears EOT latch
	SetTrack   Opcode = 1  // select track 0-3
	Seek       Opcode = 2  // seek to start of track
	StartMotor Opcode = 3  // start motor for reading
	StopMotor  Opcode = 4  // stop motor
	Write      Opcode = 5  // write data byte
	StartWrite Opcode = 6  // enter write mode
	StopWrite  Opcode = 7  // leave write mode
	Data       Opcode = 8  // data byte read from tape (sent by device)
	DataEOT    Opcode = 9  // last data byte before end of tape (sent by device)
	ResetEOT   Opcode = 10 // clear end of tape latch
)

//
var opcodeNames = map[Opcode]string{
	GetStatus:  "GET_STATUS",
	SetTrack:   "SET_TRACK",
	Seek:       "SEEK",
	StartMotor: "START_MOTOR",
	StopMotor:  "STOP_MOTOR",
	Write:      "WRITE",
	StartWrite: "START_WRITE",
	StopWrite:  "STOP_WRITE",
	Data:       "DATA",
	DataEOT:    "DATA_EOT",
	ResetEOT:   "RESET_EOT",
}

//
func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return fmt.Sprintf("<unknown %d>", byte(o))
}

// IsStream returns true for opcodes the device sends on its own while
// streaming tape data to the host.
func (o Opcode) IsStream() bool {
	return o == Data || o == DataEOT
}
