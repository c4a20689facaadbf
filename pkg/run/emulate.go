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

package run

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/control"
	"github.com/xelalexv/lo8/pkg/daemon"
	"github.com/xelalexv/lo8/pkg/link"
	"github.com/xelalexv/lo8/pkg/transport"
)

//
func NewEmulate() *Emulate {

	e := &Emulate{}
	e.Runner = *NewRunner(
		`emulate -d|--device {device} [-b|--baud {baud}] [-a|--address {address}]
      [-r|--repo {repo base folder}] [--pump {interval}]`,
		"emulate drive & run API server",
		`
Use the emulate command for running a simulated tape drive on a serial port,
together with the API server for inserting and ejecting tapes. Connect the
port to the one used with the drive command, e.g. via a null modem cable or
a pair of virtual serial ports.`,
		"", loggingHelp+runnerHelpEpilogue, e.Run)

	e.AddBaseSettings()
	e.AddSetting(&e.Device, "device", "d", "LO8_EMU_DEVICE", nil,
		"serial port device for the emulated drive", true)
	e.AddSetting(&e.Baud, "baud", "b", "LO8_BAUD", link.DefaultBaudRate,
		"baud rate: 4800, 9600, 19200, 38400, 57600, or 115200", false)
	e.AddSetting(&e.Repository, "repo", "r", "", nil,
		`tape repo base folder; when omitted, inserting tapes
from the emulator host's file system is prohibited`, false)
	e.AddSetting(&e.Pump, "pump", "", "", transport.DefaultPumpInterval,
		"interval between two data frames sent while reading", false)
	e.AddSetting(&e.SeekLimit, "seek-limit", "", "", transport.DefaultSeekLimit,
		"maximum number of steps waiting for the end of tape foil", false)
	e.AddSetting(&e.SeekStep, "seek-step", "", "", transport.DefaultSeekStep,
		"time between two looks at the end of tape sensor", false)

	return e
}

//
type Emulate struct {
	//
	Runner
	//
	Device     string
	Baud       uint
	Repository string
	Pump       time.Duration
	SeekLimit  int
	SeekStep   time.Duration
}

//
func (e *Emulate) Run() error {

	if err := e.ParseSettings(); err != nil {
		return err
	}

	if err := link.ValidateBaud(e.Baud); err != nil {
		return &InvalidArgumentError{Err: err}
	}
	if e.Pump <= 0 || e.SeekLimit <= 0 || e.SeekStep < 0 {
		return invalidArgument("pump interval and seek limit need to be positive")
	}

	wg := &sync.WaitGroup{}
	wg.Add(2)

	d := daemon.NewDaemon(e.Device, e.Baud, e.Pump,
		transport.Options{SeekLimit: e.SeekLimit, SeekStep: e.SeekStep})
	go func() {
		defer wg.Done()
		err := d.Serve()
		if err != nil && err != daemon.ErrDaemonStopped {
			log.Errorf("daemon closed with error: %v", err)
		} else {
			log.Info("daemon stopped")
		}
	}()

	api := control.NewAPIServer(e.Address, e.Repository, d)
	go func() {
		defer wg.Done()
		if err := api.Serve(); err != nil {
			log.Errorf("API server closed with error: %v", err)
		} else {
			log.Info("API server stopped")
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sigCount := 0
	done := make(chan bool)

	for {

		select {

		case sig := <-sigs: // interrupt signal
			log.WithField("signal", sig).Info("signal received")
			sigCount++

			switch sigCount {

			case 1:
				go func() {
					log.Info("shutting down, hit Ctrl-C twice to force exit...")
					if err := api.Stop(); err != nil {
						log.Errorf("error stopping API server: %v", err)
					}
					if err := d.Stop(); err != nil {
						log.Errorf("error stopping daemon: %v", err)
					}
					wg.Wait()
					log.Info("Lo8 emulator stopped")
					done <- true
				}()

			case 2:
				log.Warn("shutdown in progress, hit Ctrl-C again to force exit")

			default:
				log.Warn("forcing emulator to stop immediately")
				os.Exit(ExitFailure)
			}

		case <-done: // shutdown sequence complete
			return nil
		}
	}
}
