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

package tape

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// AutoSave writes the tape to the auto-save file, unless it has not been
// modified since it was loaded or last saved. A missing tape removes the
// auto-save file.
func AutoSave(t *Tape) error {

	if t == nil {
		return AutoRemove()
	}

	if t.IsAutoSaved() || !t.IsModified() {
		return nil
	}

	start := time.Now()
	log.Info("auto-saving tape")

	file, err := autoSavePath(true)
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s_", file)

	fd, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()

	out := bufio.NewWriter(fd)

	if err := NewLo8().Write(t, out); err != nil {
		return err
	}

	if err := out.Flush(); err != nil {
		return err
	}

	if err := fd.Sync(); err != nil {
		return err
	}

	if err := fd.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp, file); err != nil {
		return err
	}

	t.SetAutoSaved(true)

	log.Debugf("auto-save took %v", time.Since(start))
	return nil
}

// AutoLoad reads the tape from the auto-save file. If there is none, nil is
// returned.
func AutoLoad() (*Tape, error) {

	log.Info("loading auto-save")

	file, err := autoSavePath(false)
	if err != nil {
		return nil, err
	}

	fd, err := os.Open(file)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Info("no auto-save file")
		return nil, nil
	}
	defer fd.Close()

	t, err := NewLo8().Read(bufio.NewReader(fd))
	if err != nil {
		return nil, err
	}

	// the tape was modified compared to the image it was created from
	t.SetModified(true)
	t.SetAutoSaved(true)
	return t, nil
}

//
func AutoRemove() error {

	file, err := autoSavePath(false)
	if err != nil {
		return err
	}

	if err := os.Remove(file); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		log.Info("removed auto-save")
	}

	return nil
}

//
func autoSavePath(create bool) (string, error) {

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".lo8", "deck")

	if create {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	return filepath.Join(dir, "tape.lo8"), nil
}
