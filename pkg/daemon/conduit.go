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

package daemon

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/link"
)

//
const maxBackoff = 15 * time.Second

// resetConduit closes the serial port if open, and keeps trying to open it
// again with increasing back-off, until it succeeds or the daemon stops.
func (d *Daemon) resetConduit() error {

	d.closeConduit()

	for backoff := time.Second; ; {

		if d.ctx.Err() != nil {
			return ErrDaemonStopped
		}

		log.Infof("opening port %s", d.device)
		con, err := link.OpenPort(d.device, d.baud)
		if err == nil {
			d.mux.Lock()
			d.conduit = con
			d.mux.Unlock()
			return nil
		}

		log.Errorf("cannot open serial port: %v", err)
		if backoff < maxBackoff {
			backoff *= 2
		}

		select {
		case <-d.ctx.Done():
		case <-time.After(backoff):
		}
	}
}

//
func (d *Daemon) closeConduit() {

	d.mux.Lock()
	defer d.mux.Unlock()

	if d.conduit != nil {
		log.Infof("closing port %s", d.device)
		if err := d.conduit.Close(); err != nil {
			log.Errorf("error closing port: %v", err)
		}
		d.conduit = nil
	}
}
