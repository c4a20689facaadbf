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
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strconv"

	"github.com/xelalexv/lo8/pkg/tape"
)

//
func NewInsert() *Insert {

	i := &Insert{}
	i.Runner = *NewRunner(
		`insert -i|--input {file|repo://path} [-n|--name {name}] [-r|--record]
      [-f|--force] [-a|--address {address}]`,
		"insert tape into emulator",
		"\nUse the insert command to insert a tape into the emulated drive.",
		"", `- Tape images with extension 'lo8' are read as Lo8 images, all others as
  raw images, i.e. the plain contents of the four tracks, one after the other.

- Inputs starting with repo:// are taken from the emulator's tape repository.

`+runnerHelpEpilogue, i.Run)

	i.AddBaseSettings()
	i.AddSetting(&i.File, "input", "i", "", nil, "tape input file", true)
	i.AddSetting(&i.Name, "name", "n", "", nil, "name of the tape", false)
	i.AddSetting(&i.Record, "record", "r", "", false,
		"insert tape with record button pressed", false)
	i.AddSetting(&i.Force, "force", "f", "", false,
		"force replacing modified tape in emulator", false)

	return i
}

//
type Insert struct {
	//
	Runner
	//
	File   string
	Name   string
	Record bool
	Force  bool
}

//
func (i *Insert) Run() error {

	if err := i.ParseSettings(); err != nil {
		return err
	}

	typ := imageType(i.File)
	path := fmt.Sprintf("/tape?type=%s&record=%s&force=%s", typ,
		strconv.FormatBool(i.Record), strconv.FormatBool(i.Force))
	if i.Name != "" {
		path += "&name=" + url.QueryEscape(i.Name)
	}

	var resp io.ReadCloser
	var err error

	if tape.IsReference(i.File) {
		resp, err = i.apiCall("PUT",
			path+"&ref="+url.QueryEscape(i.File), false, nil)

	} else {
		f, ferr := os.Open(i.File)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		resp, err = i.apiCall("PUT", path, false, bufio.NewReader(f))
	}

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

// imageType derives the image format from a file's extension.
func imageType(file string) string {
	if getExtension(file) == "lo8" {
		return "lo8"
	}
	return "raw"
}
