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
	"encoding/base64"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Version of the lo8 image format
const Lo8Version = 1

// lo8 images are YAML documents, with track data base64 encoded
type lo8Image struct {
	Version int      `yaml:"version"`
	Name    string   `yaml:"name"`
	Record  bool     `yaml:"record"`
	Length  int      `yaml:"length"`
	Tracks  []string `yaml:"tracks"`
}

//
type Lo8 struct{}

//
func NewLo8() *Lo8 {
	return &Lo8{}
}

//
func (l *Lo8) Read(in io.Reader) (*Tape, error) {

	var img lo8Image
	if err := yaml.NewDecoder(in).Decode(&img); err != nil {
		return nil, fmt.Errorf("error decoding lo8 image: %w", err)
	}

	if img.Version != Lo8Version {
		return nil, fmt.Errorf("unsupported lo8 image version %d", img.Version)
	}

	tracks := make([][]byte, len(img.Tracks))
	for ix, tr := range img.Tracks {
		data, err := base64.StdEncoding.DecodeString(tr)
		if err != nil {
			return nil, fmt.Errorf("track %d corrupted: %w", ix+1, err)
		}
		if len(data) != img.Length {
			return nil, fmt.Errorf("track %d has length %d, want %d",
				ix+1, len(data), img.Length)
		}
		tracks[ix] = data
	}

	t, err := NewFromTracks(img.Name, tracks)
	if err != nil {
		return nil, err
	}
	t.SetRecordEnabled(img.Record)
	return t, nil
}

//
func (l *Lo8) Write(t *Tape, out io.Writer) error {

	img := lo8Image{
		Version: Lo8Version,
		Name:    t.Name(),
		Record:  t.IsRecordEnabled(),
		Length:  t.Length(),
	}
	for ix := range t.tracks {
		img.Tracks = append(img.Tracks,
			base64.StdEncoding.EncodeToString(t.Track(ix)))
	}

	enc := yaml.NewEncoder(out)
	if err := enc.Encode(&img); err != nil {
		return err
	}
	return enc.Close()
}
