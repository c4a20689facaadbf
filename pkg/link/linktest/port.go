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

// Package linktest provides a scripted device for testing code that talks
// to the tape drive over a link session.
package linktest

import (
	"bytes"
	"io"

	"github.com/xelalexv/lo8/pkg/protocol"
)

// Responder returns the frames a scripted device sends back for a request.
type Responder func(req protocol.Frame) []protocol.Frame

/*
	Port is an in-memory port with a scripted device on the other end. Every
	complete request frame written to it is recorded and answered by the
	responder. Reading from an empty port returns io.EOF, just like a link
	that dropped.
*/
type Port struct {
	Requests []protocol.Frame
	WriteErr error
	//
	respond Responder
	partial []byte
	pending bytes.Buffer
}

// NewPort creates a port answered by respond. When respond is nil, every
// request is echoed with a zero data byte.
func NewPort(respond Responder) *Port {
	if respond == nil {
		respond = func(req protocol.Frame) []protocol.Frame {
			return []protocol.Frame{Echo(req, 0)}
		}
	}
	return &Port{respond: respond}
}

// Echo returns the response frame for req carrying data.
func Echo(req protocol.Frame, data byte) protocol.Frame {
	return protocol.NewFrame(req.Op, data)
}

// Queue places frames in the receive buffer, as if the device had sent them
// on its own.
func (p *Port) Queue(frames ...protocol.Frame) {
	for _, f := range frames {
		p.pending.Write(f.Bytes())
	}
}

// QueueRaw places raw bytes in the receive buffer.
func (p *Port) QueueRaw(b ...byte) {
	p.pending.Write(b)
}

//
func (p *Port) Write(b []byte) (int, error) {

	if p.WriteErr != nil {
		return 0, p.WriteErr
	}

	p.partial = append(p.partial, b...)
	for len(p.partial) >= protocol.FrameLength {
		req := protocol.Decode(p.partial[:protocol.FrameLength])
		p.partial = p.partial[protocol.FrameLength:]
		p.Requests = append(p.Requests, req)
		p.Queue(p.respond(req)...)
	}

	return len(b), nil
}

//
func (p *Port) Read(b []byte) (int, error) {
	if p.pending.Len() == 0 {
		return 0, io.EOF
	}
	return p.pending.Read(b)
}

//
func (p *Port) Close() error {
	return nil
}

// Count returns how many requests with opcode op have been received.
func (p *Port) Count(op protocol.Opcode) int {
	n := 0
	for _, r := range p.Requests {
		if r.Op == op {
			n++
		}
	}
	return n
}

// Sent returns the data bytes of all received requests with opcode op, in
// order.
func (p *Port) Sent(op protocol.Opcode) []byte {
	var ret []byte
	for _, r := range p.Requests {
		if r.Op == op {
			ret = append(ret, r.Data)
		}
	}
	return ret
}
