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

import (
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for op := GetStatus; op <= ResetEOT; op++ {
		for _, data := range []byte{0x00, 0x01, 0x41, 0x7f, 0x80, 0xff} {
			raw := Encode(op, data)
			if raw[0] != byte(op) || raw[1] != data {
				t.Fatalf("Encode(%s, 0x%02x) = %v, want opcode first", op, data, raw)
			}
			got := Decode(raw[:])
			if got.Op != op || got.Data != data {
				t.Errorf("Decode(Encode(%s, 0x%02x)) = %s", op, data, got)
			}
		}
	}
}

func TestDecodeDoesNotValidateOpcode(t *testing.T) {
	got := Decode([]byte{0xee, 0x12})
	if got.Op != Opcode(0xee) || got.Data != 0x12 {
		t.Errorf("Decode = %s, want raw opcode 0xee", got)
	}
	if got.Op.String() != "<unknown 238>" {
		t.Errorf("String() = %q", got.Op.String())
	}
}

func TestDecodePanicsOnBadLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Decode with 3 bytes did not panic")
		}
	}()
	Decode([]byte{1, 2, 3})
}

func TestOpcodeValues(t *testing.T) {
	want := map[Opcode]byte{
		GetStatus: 0, SetTrack: 1, Seek: 2, StartMotor: 3, StopMotor: 4,
		Write: 5, StartWrite: 6, StopWrite: 7, Data: 8, DataEOT: 9,
		ResetEOT: 10,
	}
	for op, v := range want {
		if byte(op) != v {
			t.Errorf("%s = %d, want %d", op, byte(op), v)
		}
	}
	if !Data.IsStream() || !DataEOT.IsStream() || Write.IsStream() {
		t.Error("IsStream misclassifies opcodes")
	}
}
