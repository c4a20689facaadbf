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

// FrameLength is the size of every command and response on the wire.
const FrameLength = 2

// Frame is the unit of exchange between host and device: an opcode followed
// by a single data byte.
type Frame struct {
	Op   Opcode
	Data byte
}

//
func NewFrame(op Opcode, data byte) Frame {
	return Frame{Op: op, Data: data}
}

// Encode returns the wire representation of op and data.
func Encode(op Opcode, data byte) [FrameLength]byte {
	return [FrameLength]byte{byte(op), data}
}

// Decode turns a raw frame back into opcode and data. raw must be exactly
// FrameLength long, anything else is a programming error.
func Decode(raw []byte) Frame {
	if len(raw) != FrameLength {
		panic(fmt.Sprintf("frame must be %d bytes, got %d", FrameLength, len(raw)))
	}
	return Frame{Op: Opcode(raw[0]), Data: raw[1]}
}

//
func (f Frame) Bytes() []byte {
	raw := Encode(f.Op, f.Data)
	return raw[:]
}

//
func (f Frame) String() string {
	return fmt.Sprintf("%s(0x%02x)", f.Op, f.Data)
}
