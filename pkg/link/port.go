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
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"
)

//
const DefaultDevice = "/dev/ttyUSB1"
const DefaultBaudRate = 9600

// BaudRates lists the line rates the firmware supports.
var BaudRates = []uint{4800, 9600, 19200, 38400, 57600, 115200}

//
func ValidateBaud(baud uint) error {
	for _, b := range BaudRates {
		if b == baud {
			return nil
		}
	}
	return fmt.Errorf("unsupported baud rate: %d; valid rates are %v",
		baud, BaudRates)
}

// OpenPort opens the serial device for a session at the given line rate.
func OpenPort(device string, baud uint) (io.ReadWriteCloser, error) {

	if err := ValidateBaud(baud); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"device": device,
		"baud":   baud,
	}).Debug("opening port")

	return serial.Open(serial.OpenOptions{
		PortName:        device,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
}
