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
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
)

//
func NewEject() *Eject {

	e := &Eject{}
	e.Runner = *NewRunner(
		`eject [-o|--output {file}] [-f|--force] [-a|--address {address}]`,
		"eject tape from emulator",
		`
Use the eject command to eject the tape from the emulated drive. If the tape
has been modified, it is only ejected when saving it first, or with --force.`,
		"", `- When saving, tape images with extension 'lo8' are written as Lo8 images,
  all others as raw images.

`+runnerHelpEpilogue, e.Run)

	e.AddBaseSettings()
	e.AddSetting(&e.File, "output", "o", "", nil,
		"save tape to this file before ejecting", false)
	e.AddSetting(&e.Force, "force", "f", "", false,
		"force ejecting modified tape", false)

	return e
}

//
type Eject struct {
	//
	Runner
	//
	File  string
	Force bool
}

//
func (e *Eject) Run() error {

	if err := e.ParseSettings(); err != nil {
		return err
	}

	if e.File != "" {
		if err := e.save(); err != nil {
			return err
		}
	}

	resp, err := e.apiCall("GET", fmt.Sprintf("/tape/eject?force=%s",
		strconv.FormatBool(e.Force)), false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	msg, err := ioutil.ReadAll(resp)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s", msg)
	return nil
}

//
func (e *Eject) save() error {

	if _, err := os.Stat(e.File); err == nil {
		if !GetUserConfirmation(
			fmt.Sprintf("file %s already exists, overwrite?", e.File)) {
			return fmt.Errorf("not overwriting %s", e.File)
		}
	}

	resp, err := e.apiCall("GET",
		fmt.Sprintf("/tape?type=%s", imageType(e.File)), false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	f, err := os.Create(e.File)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp); err != nil {
		return err
	}
	return f.Sync()
}
