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
	"context"
	"errors"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/tape"
	"github.com/xelalexv/lo8/pkg/transport"
	"github.com/xelalexv/lo8/pkg/transport/sim"
)

//
var ErrDaemonStopped = errors.New("daemon stopped")

/*
	Daemon emulates the deck's controller board: it runs the transport of a
	simulated deck on a serial port, the way the firmware does on the real
	hardware. When the port fails, it is re-opened.
*/
type Daemon struct {
	//
	deck      *sim.Deck
	transport *transport.Transport
	//
	device string
	baud   uint
	pump   time.Duration
	//
	mux     sync.Mutex
	conduit io.ReadWriteCloser
	synced  bool
	//
	ctx    context.Context
	cancel context.CancelFunc
}

//
func NewDaemon(device string, baud uint, pump time.Duration,
	opts transport.Options) *Daemon {

	ctx, cancel := context.WithCancel(context.Background())
	deck := sim.NewDeck()

	return &Daemon{
		deck:      deck,
		transport: transport.NewTransport(deck, opts),
		device:    device,
		baud:      baud,
		pump:      pump,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Serve runs the transport on the daemon's serial port until Stop is called.
// A tape left over from the previous run is restored from auto-save.
func (d *Daemon) Serve() error {

	if t, err := tape.AutoLoad(); err != nil {
		log.Errorf("error loading auto-save: %v", err)
	} else if t != nil {
		d.deck.Insert(t)
	}

	for {
		if err := d.resetConduit(); err != nil {
			return err
		}

		d.setSynced(true)
		err := transport.Serve(d.ctx, d.transport, d.conduit, d.pump)
		d.setSynced(false)

		if d.ctx.Err() != nil {
			return ErrDaemonStopped
		}
		log.Errorf("link to host failed: %v", err)
	}
}

// Stop ends serving, closes the port, and auto-saves the tape.
func (d *Daemon) Stop() error {

	log.Info("daemon stopping...")
	d.cancel()
	d.closeConduit()

	var err error
	d.deck.WithTape(func(t *tape.Tape) {
		err = tape.AutoSave(t)
	})
	return err
}

//
func (d *Daemon) IsSynced() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.synced
}

//
func (d *Daemon) setSynced(s bool) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.synced = s
}
