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
	"errors"
	"time"

	"github.com/xelalexv/lo8/pkg/link"
)

// timing of the Lo8 deck; other decks may need different values
const (
	DefaultPollInterval = time.Millisecond
	DefaultSettleDelay  = time.Second
)

// ErrWriteRefused is returned when the device does not enter write mode,
// usually because the cartridge's record tab is not set.
var ErrWriteRefused = errors.New(
	"device refused to enter write mode; is the record button pressed?")

//
type Options struct {
	// PollInterval paces the read and write loops. It is a rate limit, not
	// a timeout.
	PollInterval time.Duration
	// SettleDelay is the pause between entering write mode and writing the
	// first byte, allowing the transport to come up to speed.
	SettleDelay time.Duration
}

// DefaultOptions returns the timing of the Lo8 deck.
func DefaultOptions() Options {
	return Options{
		PollInterval: DefaultPollInterval,
		SettleDelay:  DefaultSettleDelay,
	}
}

// Result describes how a read or write loop ended.
type Result struct {
	Bytes       int
	EOT         bool
	Interrupted bool
}

/*
	Controller streams bytes from and to the tape over a link session. Only
	one loop may run at a time. Cancellation of the context passed to a loop
	is checked between frames, never while a frame is in flight, and always
	followed by stopping the motor or leaving write mode.
*/
type Controller struct {
	session *link.Session
	opts    Options
}

//
func NewController(s *link.Session, opts Options) *Controller {
	return &Controller{session: s, opts: opts}
}

// pause waits for d, or until ctx is done. It returns false in the latter
// case.
func pause(ctx context.Context, d time.Duration) bool {

	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
