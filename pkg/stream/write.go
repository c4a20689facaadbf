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
	"bufio"
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

/*
	Write enters write mode, waits for the transport to settle, and then
	writes the bytes from source to the tape one by one, until the device
	reports end of tape, source is exhausted, or ctx is cancelled. When echo
	is not nil, each written byte is copied to it. Write mode is left on every
	exit path once it was entered.
*/
func (c *Controller) Write(ctx context.Context, source io.Reader,
	echo io.Writer) (res Result, err error) {

	if err = c.session.RequireTape(); err != nil {
		return res, err
	}

	ok, err := c.session.StartWrite()
	if err != nil {
		return res, err
	}
	if !ok {
		return res, ErrWriteRefused
	}
	log.Info("writing to tape")

	defer func() {
		if _, stopErr := c.session.StopWrite(); stopErr != nil {
			if err == nil {
				err = stopErr
			} else {
				log.Errorf("error leaving write mode: %v", stopErr)
			}
		}
		log.WithFields(log.Fields{
			"bytes":       res.Bytes,
			"eot":         res.EOT,
			"interrupted": res.Interrupted,
		}).Info("writing stopped")
	}()

	if !pause(ctx, c.opts.SettleDelay) {
		res.Interrupted = true
		return res, nil
	}

	in, ok := source.(io.ByteReader)
	if !ok {
		in = bufio.NewReader(source)
	}
	out := make([]byte, 1)

	for {
		if ctx.Err() != nil {
			res.Interrupted = true
			return res, nil
		}

		b, err := in.ReadByte()
		if err == io.EOF {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("error reading input: %w", err)
		}

		eot, err := c.session.Write(b)
		if err != nil {
			return res, err
		}
		res.Bytes++

		if echo != nil {
			out[0] = b
			if _, err := echo.Write(out); err != nil {
				return res, fmt.Errorf("error echoing input: %w", err)
			}
		}

		if eot {
			res.EOT = true
			return res, nil
		}

		pause(ctx, c.opts.PollInterval)
	}
}
