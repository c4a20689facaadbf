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
	"io"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/lo8/pkg/protocol"
)

/*
	Session is the host end of the link. It sends one frame at a time and
	blocks until the device's response has been received completely. There is
	no timeout: if the device never answers, Send never returns.
*/
type Session struct {
	port     io.ReadWriter
	inFlight int32
	// set while the motor runs for reading; the device then sends DATA
	// frames on its own, which may precede the response to a command
	streaming bool
}

//
func NewSession(port io.ReadWriter) *Session {
	return &Session{port: port}
}

/*
	Send transmits a command frame and returns the data byte of the device's
	response. The response must echo the request's opcode, otherwise an
	*EchoMismatchError is returned. Nothing is retried.
*/
func (s *Session) Send(op protocol.Opcode, data byte) (byte, error) {

	if !atomic.CompareAndSwapInt32(&s.inFlight, 0, 1) {
		return 0, ErrFrameInFlight
	}
	defer atomic.StoreInt32(&s.inFlight, 0)

	req := protocol.NewFrame(op, data)
	log.WithField("frame", req).Trace("SEND")

	if n, err := s.port.Write(req.Bytes()); err != nil {
		return 0, &LinkIOError{Op: op, Err: err}
	} else if n != protocol.FrameLength {
		return 0, &LinkIOError{Op: op, Err: io.ErrShortWrite}
	}

	for {
		resp, err := s.receive()
		if err != nil {
			return 0, &LinkIOError{Op: op, Err: err}
		}

		if resp.Op == op {
			log.WithField("frame", resp).Trace("RECEIVE")
			return resp.Data, nil
		}

		if s.streaming && resp.Op.IsStream() {
			log.WithField("frame", resp).Debug(
				"discarding stream frame while waiting for response")
			continue
		}

		return 0, &EchoMismatchError{Expected: op, Received: resp.Op}
	}
}

/*
	Receive waits for the next frame the device sends on its own, i.e. the
	DATA and DATA_EOT frames produced while reading. No command is sent.
*/
func (s *Session) Receive() (protocol.Frame, error) {

	if !atomic.CompareAndSwapInt32(&s.inFlight, 0, 1) {
		return protocol.Frame{}, ErrFrameInFlight
	}
	defer atomic.StoreInt32(&s.inFlight, 0)

	f, err := s.receive()
	if err != nil {
		return f, &LinkIOError{Op: protocol.Data, Err: err}
	}
	log.WithField("frame", f).Trace("RECEIVE")
	return f, nil
}

//
func (s *Session) receive() (protocol.Frame, error) {
	raw := make([]byte, protocol.FrameLength)
	if _, err := io.ReadFull(s.port, raw); err != nil {
		return protocol.Frame{}, err
	}
	return protocol.Decode(raw), nil
}
