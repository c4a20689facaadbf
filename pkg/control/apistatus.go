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
	"net/http"
)

//
func (a *api) status(w http.ResponseWriter, req *http.Request) {

	stat := newStatus(a.daemon.GetStatus())

	if wantsJSON(req) {
		sendJSONReply(stat, http.StatusOK, w)
	} else {
		sendReply([]byte(stat.String()), http.StatusOK, w)
	}
}
