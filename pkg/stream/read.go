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

package stream

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/protocol"
)

/*
	Read starts the motor and delivers every data byte the device sends to
	sink, until the device signals end of tape or ctx is cancelled. The motor
	is stopped on every exit path once it was started. Frames other than DATA
	and DATA_EOT are logged and skipped.
*/
func (c *Controller) Read(ctx context.Context, sink io.Writer) (res Result, err error) {

	if err = c.session.RequireTape(); err != nil {
		return res, err
	}

	if _, err = c.session.StartMotor(); err != nil {
		return res, err
	}
	log.Info("reading from tape")

	defer func() {
		if _, stopErr := c.session.StopMotor(); stopErr != nil {
			if err == nil {
				err = stopErr
			} else {
				log.Errorf("error stopping motor: %v", stopErr)
			}
		}
		log.WithFields(log.Fields{
			"bytes":       res.Bytes,
			"eot":         res.EOT,
			"interrupted": res.Interrupted,
		}).Info("reading stopped")
	}()

	data := make([]byte, 1)

	for {
		if ctx.Err() != nil {
			res.Interrupted = true
			return res, nil
		}

		f, err := c.session.Receive()
		if err != nil {
			return res, err
		}

		switch f.Op {

		case protocol.DataEOT:
			res.EOT = true
			fallthrough

		case protocol.Data:
			data[0] = f.Data
			if _, err := sink.Write(data); err != nil {
				return res, fmt.Errorf("error writing output: %w", err)
			}
			res.Bytes++

		default:
			log.WithField("frame", f).Warn("unexpected frame while reading")
		}

		if res.EOT {
			return res, nil
		}

		pause(ctx, c.opts.PollInterval)
	}
}
