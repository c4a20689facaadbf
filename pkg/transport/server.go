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
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/protocol"
)

// DefaultPumpInterval is the time between two data frames while reading.
const DefaultPumpInterval = 2 * time.Millisecond

/*
	Serve runs the device side of the link on rw. Each command frame is
	executed and answered before the next one is looked at. While no command
	is pending and the motor runs for reading, a data frame is sent every
	pump interval. Serve returns when ctx is done or the link fails. To
	unblock a pending read after ctx is done, the caller needs to close rw.
*/
func Serve(ctx context.Context, t *Transport, rw io.ReadWriter,
	pump time.Duration) error {

	if pump <= 0 {
		pump = DefaultPumpInterval
	}

	frames := make(chan protocol.Frame)
	errs := make(chan error, 1)

	go func() {
		for {
			raw := make([]byte, protocol.FrameLength)
			if _, err := io.ReadFull(rw, raw); err != nil {
				errs <- err
				return
			}
			select {
			case frames <- protocol.Decode(raw):
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(pump)
	defer ticker.Stop()

	for {
		select {

		case <-ctx.Done():
			return ctx.Err()

		case err := <-errs:
			return fmt.Errorf("error receiving command: %w", err)

		case req := <-frames:
			if err := send(rw, t.Handle(req)); err != nil {
				return fmt.Errorf("error sending response: %w", err)
			}

		case <-ticker.C:
			if f, ok := t.Pump(); ok {
				log.WithField("frame", f).Trace("PUMP")
				if err := send(rw, f); err != nil {
					return fmt.Errorf("error sending data: %w", err)
				}
			}
		}
	}
}

//
func send(w io.Writer, f protocol.Frame) error {
	_, err := w.Write(f.Bytes())
	return err
}
