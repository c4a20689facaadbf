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

package control

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/xelalexv/lo8/pkg/daemon"
	"github.com/xelalexv/lo8/pkg/tape"
)

//
func (a *api) insert(w http.ResponseWriter, req *http.Request) {

	var in io.Reader

	if ref, err := getArg(req, "ref"); ref != "" || err != nil {
		var rc io.ReadCloser
		if err == nil {
			rc, err = tape.Resolve(ref, a.repository)
		}
		if err != nil {
			handleError(err, http.StatusNotAcceptable, w)
			return
		}
		in = rc
		defer rc.Close()

	} else {
		in = io.LimitReader(req.Body, maxImageSize)
	}

	reader := getFormat(w, req)
	if reader == nil {
		return
	}

	t, err := reader.Read(in)
	if err != nil {
		handleError(fmt.Errorf("tape image corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return
	}

	if name, err := getArg(req, "name"); err == nil && name != "" {
		t.SetName(name)
	}
	if isFlagSet(req, "record") {
		t.SetRecordEnabled(true)
	}

	if err := a.daemon.Insert(t, isFlagSet(req, "force")); err != nil {
		handleError(err, statusForDeckError(err), w)
		return
	}

	sendReply([]byte(fmt.Sprintf("inserted tape %s", t.Name())), http.StatusOK, w)
}

//
func (a *api) save(w http.ResponseWriter, req *http.Request) {

	writer := getFormat(w, req)
	if writer == nil {
		return
	}

	var out bytes.Buffer
	err := a.daemon.Save(func(t *tape.Tape) error {
		return writer.Write(t, &out)
	})
	if err != nil {
		handleError(err, statusForDeckError(err), w)
		return
	}

	sendStreamReply(&out, http.StatusOK, w)
}

//
func (a *api) eject(w http.ResponseWriter, req *http.Request) {

	t, err := a.daemon.Eject(isFlagSet(req, "force"))
	if err != nil {
		if err == daemon.ErrTapeModified {
			err = fmt.Errorf("%v, save it first or use force", err)
			handleError(err, http.StatusConflict, w)
		} else {
			handleError(err, statusForDeckError(err), w)
		}
		return
	}

	sendReply([]byte(fmt.Sprintf("ejected tape %s", t.Name())), http.StatusOK, w)
}
