// This file is part of Eightbench.
//
// Eightbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Eightbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Eightbench.  If not, see <https://www.gnu.org/licenses/>.
package main

import (
	"os"

	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/hardware/zxspectrum"
	"github.com/jetsetilly/eightbench/logger"
	"github.com/jetsetilly/eightbench/prefs"
)

const prefsFile = "prefs"

// preferences that apply to every mode.
type preferences struct {
	dsk *prefs.Disk

	// record data reads and classify read bytes as Data
	dataAccess prefs.Bool

	// default Spectrum model for RUN and MONITOR
	model prefs.String

	// default number of frames for RUN
	frames prefs.Int

	// echo the log to stdout
	echo prefs.Bool
}

// newPreferences loads the preferences from the file at path. The file is
// created with the default values if it does not exist.
func newPreferences(path string) (*preferences, error) {
	p := &preferences{}

	p.dataAccess.SetDefault(true)
	p.model.SetDefault(zxspectrum.Model48K.String())
	p.frames.SetDefault(50)
	p.echo.SetDefault(false)

	p.model.SetHookPre(func(v prefs.Value) error {
		_, err := zxspectrum.ParseModel(v.(string))
		return err
	})
	p.frames.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return curated.Errorf("prefs: run.frames must be at least one")
		}
		return nil
	})
	p.echo.SetHookPost(func(v prefs.Value) error {
		if v.(bool) {
			logger.SetEcho(logger.NewColorizer(os.Stdout))
		} else {
			logger.SetEcho(nil)
		}
		return nil
	})

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("analysis.dataaccess", &p.dataAccess); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("zx.model", &p.model); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("run.frames", &p.frames); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("log.echo", &p.echo); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}
