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

package main

import (
	"fmt"
	"os"

	"github.com/xelalexv/lo8/pkg/run"
)

//
var Lo8Version string

//
func synopsis() {
	fmt.Fprint(os.Stderr, `
synopsis: lo8ctl {drive|emulate|insert|eject|deck|version} ...

run 'lo8ctl {action} -h|--help' to see detailed info

`)
}

//
func version() {
	fmt.Fprintf(os.Stderr, "\nLo8 %s\n\n", Lo8Version)
}

//
func main() {

	var action string
	var args []string

	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	switch action {

	case "drive":
		run.DieOnError(run.NewDrive().Execute(args))

	case "emulate":
		version()
		run.DieOnError(run.NewEmulate().Execute(args))

	case "insert":
		run.DieOnError(run.NewInsert().Execute(args))

	case "eject":
		run.DieOnError(run.NewEject().Execute(args))

	case "deck":
		run.DieOnError(run.NewDeck().Execute(args))

	case "version":
		version()

	case "":
		fallthrough
	case "-h":
		fallthrough
	case "--help":
		synopsis()

	default:
		run.Die("unknown action: %s\n", action)
	}
}
