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

import "time"

/*
	Deck is the hardware of the modified cartridge deck as seen by the
	transport: the sensors, the relays for motor and fast forward, the track
	solenoid, and the tone chips that modulate and demodulate data bytes.
	Implementations do no arbitration of their own.
*/
type Deck interface {
	// TapePresent reports the tape switch.
	TapePresent() bool
	// RecordEnabled reports whether the cartridge may be recorded on.
	RecordEnabled() bool
	// EOT reports whether the end of tape foil is under the sensor.
	EOT() bool
	// HeadHome reports the track sensor, which is active on the first track.
	HeadHome() bool

	Motor(on bool)
	FastForward(on bool)
	// AdvanceHead pulses the track solenoid, moving the head to the next
	// track, wrapping around after the last one.
	AdvanceHead()

	// WriteByte modulates b onto the tape at the current position.
	WriteByte(b byte)
	// ReadByte returns the next byte demodulated from the tape, if any.
	ReadByte() (byte, bool)

	// Idle lets d of transport time pass.
	Idle(d time.Duration)
}
