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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/link"
	"github.com/xelalexv/lo8/pkg/protocol"
	"github.com/xelalexv/lo8/pkg/stream"
)

//
func NewDrive() *Drive {

	d := &Drive{}
	d.Command = *NewCommand(
		`drive [-d|--device {device}] [-b|--baud {baud}] [-t|--track {1-4}] [-s|--seek]
      [-i|--info] [-r|--read | -w|--write [-e|--echo]]`,
		"operate the tape drive",
		`
Use the drive command to operate the tape drive connected to a serial port.
Data read from tape is written to stdout, data to write is taken from stdin.`,
		"", `- Reading and writing may not be performed simultaneously. Tapes must be
  inserted with the record button pressed in order to record, and cannot be
  read in that mode.

- If the --info flag is specified, information will be queried after seek and
  track switching operations have been completed (if specified).

- Hit Ctrl-C to stop reading or writing. The motor is always stopped before
  the command exits.

- Exit codes: 255 for invalid arguments, 254 when no tape is inserted, 1 for
  other failures.

`+loggingHelp+runnerHelpEpilogue, d.Run)

	d.AddSetting(&d.Device, "device", "d", "LO8_DEVICE", link.DefaultDevice,
		"serial port device of the drive", false)
	d.AddSetting(&d.Baud, "baud", "b", "LO8_BAUD", link.DefaultBaudRate,
		"baud rate: 4800, 9600, 19200, 38400, 57600, or 115200", false)
	d.AddSetting(&d.Track, "track", "t", "", -1,
		"track number (1-4) to select before starting", false)
	d.AddSetting(&d.Seek, "seek", "s", "", false,
		"seek to beginning of track before starting", false)
	d.AddSetting(&d.Read, "read", "r", "", false,
		"read data from tape and dump to stdout", false)
	d.AddSetting(&d.Write, "write", "w", "", false,
		"write data from stdin to tape", false)
	d.AddSetting(&d.Echo, "echo", "e", "", false,
		"with --write, echo input to stdout", false)
	d.AddSetting(&d.Info, "info", "i", "", false,
		"query and display status information", false)
	d.AddSetting(&d.Poll, "poll", "", "", stream.DefaultPollInterval,
		"pause between two frames when reading or writing", false)
	d.AddSetting(&d.Settle, "settle", "", "", stream.DefaultSettleDelay,
		"pause after entering write mode, before writing the first byte", false)

	return d
}

//
type Drive struct {
	//
	Command
	//
	Device string
	Baud   uint
	Track  int
	Seek   bool
	Read   bool
	Write  bool
	Echo   bool
	Info   bool
	Poll   time.Duration
	Settle time.Duration
}

//
func (d *Drive) Run() error {

	if err := d.ParseSettings(); err != nil {
		return err
	}

	if err := d.validate(); err != nil {
		return err
	}

	port, err := link.OpenPort(d.Device, d.Baud)
	if err != nil {
		return fmt.Errorf("unable to open %s: %v", d.Device, err)
	}
	defer port.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.WithField("signal", sig).Info("signal received, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	return d.operate(ctx, link.NewSession(port), os.Stdin, os.Stdout)
}

//
func (d *Drive) validate() error {

	if d.Read && d.Write {
		return invalidArgument("reading and writing cannot both be requested")
	}

	if d.Echo && !d.Write {
		return invalidArgument("echo can only be requested when writing")
	}

	if d.Track != -1 && (d.Track < 1 || d.Track > protocol.TrackCount) {
		return invalidArgument(
			"invalid track number: %d; valid numbers are 1 through %d",
			d.Track, protocol.TrackCount)
	}

	if err := link.ValidateBaud(d.Baud); err != nil {
		return &InvalidArgumentError{Err: err}
	}

	if d.Poll < 0 || d.Settle < 0 {
		return invalidArgument("poll and settle durations cannot be negative")
	}

	return nil
}

// operate runs the requested steps in order: track, seek, info, then read or
// write.
func (d *Drive) operate(ctx context.Context, s *link.Session, in io.Reader,
	out io.Writer) error {

	if d.Track != -1 {
		if err := s.RequireTape(); err != nil {
			return err
		}
		if err := s.SetTrack(byte(d.Track - 1)); err != nil {
			return err
		}
	}

	if d.Seek {
		if err := s.RequireTape(); err != nil {
			return err
		}
		if err := s.Seek(); err != nil {
			return err
		}
	}

	if d.Info {
		if err := printInfo(s, out); err != nil {
			return err
		}
	} else if err := s.ResetEOT(); err != nil {
		return err
	}

	c := stream.NewController(s,
		stream.Options{PollInterval: d.Poll, SettleDelay: d.Settle})

	var res stream.Result
	var err error

	switch {
	case d.Read:
		res, err = c.Read(ctx, out)
	case d.Write:
		var echo io.Writer
		if d.Echo {
			echo = out
		}
		res, err = c.Write(ctx, in, echo)
	default:
		return nil
	}

	if err == nil && res.Interrupted {
		log.Warnf("interrupted after %d bytes", res.Bytes)
	}
	return err
}

//
func printInfo(s *link.Session, out io.Writer) error {

	st, err := s.ReadStatusAndClearLatch()
	if err != nil {
		return err
	}

	present := func(b bool, yes, no string) string {
		if b {
			return yes
		}
		return no
	}

	_, err = fmt.Fprintf(out, "Track: %d\nTape: %s\nEOT: %s\n",
		st.Track()+1,
		present(st.TapePresent(), "Inserted", "Absent"),
		present(st.EOT(), "Present", "Absent"))
	return err
}
