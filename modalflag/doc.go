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
// Package modalflag wraps the flag package from the standard library so that
// a command line can be divided into modes, each with its own flags. The
// eightbench command uses it to select between RUN, MONITOR, SUMMARY and
// REPLAY.
//
// Unlike flag.FlagSet, the arguments are given to NewArgs() and Parse() is
// called without arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SUMMARY")
//	if p, _ := md.Parse(); p != modalflag.ParseContinue {
//		return
//	}
//
// After Parse() the selected mode is returned by Mode(). The first sub-mode
// is selected if the next argument does not name one. Flags for the selected
// mode are added after a call to NewMode() and parsed with a second call to
// Parse():
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 50, "number of frames to run")
//		origin := md.AddAddress("origin", 0x8000, "load address")
//		md.Parse()
//		run(*frames, *origin, md.GetArg(0))
//	}
//
// Modes can be nested as deeply as required. Path() returns the chain of
// modes selected so far.
package modalflag
