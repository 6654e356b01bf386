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

package macro

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/logger"
)

// Error patterns.
const (
	NotAMacro  = "macro: %s: not a macro file"
	MacroError = "macro: %s: %d: %v"
)

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

const headerID = "eightbenchmacro"

// Result summarises a run of a macro.
type Result struct {
	// number of bus cycles performed
	Cycles int

	// the run stopped early because a bus cycle was flagged with
	// bus.FlagBreak
	Break bool

	// the run stopped early because of a QUIT instruction
	Quit bool
}

// Macro replays a script of bus cycles against a machine.
type Macro struct {
	cpu    bus.CPUBus
	debug  bus.DebugBus
	raster func(int)

	filename     string
	instructions []string
}

// NewMacro is the preferred method of initialisation for the Macro type. The
// raster function is called by the RASTER instruction and can be nil.
func NewMacro(filename string, cpu bus.CPUBus, debug bus.DebugBus, raster func(int)) (*Macro, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}
	defer f.Close()
	return NewMacroFromReader(filename, f, cpu, debug, raster)
}

// NewMacroFromReader creates a macro from the contents of an io.Reader. The
// name is used in error messages.
func NewMacroFromReader(name string, r io.Reader, cpu bus.CPUBus, debug bus.DebugBus, raster func(int)) (*Macro, error) {
	mcr := &Macro{
		cpu:      cpu,
		debug:    debug,
		raster:   raster,
		filename: name,
	}

	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}

	// convert file contents to an array of lines
	mcr.instructions = strings.Split(strings.ReplaceAll(string(buffer), "\r\n", "\n"), "\n")
	if len(mcr.instructions) < headerNumLines {
		return nil, curated.Errorf(NotAMacro, name)
	}
	if strings.TrimSpace(mcr.instructions[headerLineID]) != headerID {
		return nil, curated.Errorf(NotAMacro, name)
	}

	// ignore version string for now

	// we no longer need the header
	mcr.instructions = mcr.instructions[headerNumLines:]

	return mcr, nil
}

func convertAddress(s string) (uint16, error) {
	// convert hex indicator to one that ParseUint can deal with
	if s[0] == '$' {
		s = fmt.Sprintf("0x%s", s[1:])
	}
	a, err := strconv.ParseUint(s, 0, 16)
	return uint16(a), err
}

func convertValue(s string) (uint8, error) {
	if s[0] == '$' {
		s = fmt.Sprintf("0x%s", s[1:])
	}
	v, err := strconv.ParseUint(s, 0, 8)
	return uint8(v), err
}

type loop struct {
	line int

	// loop counters count upwards
	count    int
	countEnd int
}

// Run the macro to completion. The run stops early if a bus cycle is flagged
// with bus.FlagBreak or if the macro contains a QUIT instruction.
func (mcr *Macro) Run() (Result, error) {
	var res Result
	var loops []loop
	var lines bus.Flags

	fail := func(ln int, err any) (Result, error) {
		return res, curated.Errorf(MacroError, mcr.filename, ln+headerNumLines+1, err)
	}

	// address and optional value arguments common to the bus instructions
	args := func(toks []string, valueRequired bool) (uint16, uint8, error) {
		n := 2
		if valueRequired {
			n = 3
		}
		if len(toks) < n {
			return 0, 0, fmt.Errorf("not enough arguments for %s", toks[0])
		}
		if len(toks) > 3 {
			return 0, 0, fmt.Errorf("too many arguments for %s", toks[0])
		}

		addr, err := convertAddress(toks[1])
		if err != nil {
			return 0, 0, fmt.Errorf("unrecognised address for %s: %s", toks[0], toks[1])
		}

		var val uint8
		if len(toks) == 3 {
			val, err = convertValue(toks[2])
			if err != nil {
				return 0, 0, fmt.Errorf("unrecognised value for %s: %s", toks[0], toks[2])
			}
		}

		return addr, val, nil
	}

	for ln := 0; ln < len(mcr.instructions); ln++ {
		toks := strings.Fields(mcr.instructions[ln])
		if len(toks) == 0 {
			continue // for loop
		}

		switch strings.ToUpper(toks[0]) {
		default:
			return fail(ln, fmt.Sprintf("unrecognised command: %s", toks[0]))

		case "--":
			// ignore comment lines

		case "DO":
			if len(toks) != 2 {
				return fail(ln, "DO requires a loop count")
			}
			ct, err := strconv.Atoi(toks[1])
			if err != nil {
				return fail(ln, err)
			}
			loops = append(loops, loop{line: ln, countEnd: ct})

		case "LOOP":
			idx := len(loops) - 1
			if idx == -1 {
				return fail(ln, "LOOP without a DO")
			}

			lp := &loops[idx]
			lp.count++
			if lp.count < lp.countEnd {
				// loop is ongoing so return to start of loop
				ln = lp.line
			} else {
				loops = loops[:idx]
			}

		case "FETCH":
			addr, val, err := args(toks, false)
			if err != nil {
				return fail(ln, err)
			}
			if len(toks) == 3 {
				mcr.debug.Poke(addr, val)
			}
			mcr.cpu.Fetch(addr)
			res.Cycles++

		case "READ":
			addr, val, err := args(toks, false)
			if err != nil {
				return fail(ln, err)
			}
			if len(toks) == 3 {
				mcr.debug.Poke(addr, val)
			}
			mcr.cpu.Read(addr)
			res.Cycles++

		case "WRITE":
			addr, val, err := args(toks, true)
			if err != nil {
				return fail(ln, err)
			}
			mcr.cpu.Write(addr, val)
			res.Cycles++

		case "POKE":
			addr, val, err := args(toks, true)
			if err != nil {
				return fail(ln, err)
			}
			mcr.debug.Poke(addr, val)
			continue // for loop

		case "IRQ", "NMI":
			f := bus.FlagIRQ
			if strings.ToUpper(toks[0]) == "NMI" {
				f = bus.FlagNMI
			}
			if len(toks) != 2 {
				return fail(ln, fmt.Sprintf("%s requires ON or OFF", toks[0]))
			}
			switch strings.ToUpper(toks[1]) {
			case "ON":
				lines |= f
			case "OFF":
				lines &^= f
			default:
				return fail(ln, fmt.Sprintf("%s requires ON or OFF", toks[0]))
			}
			mcr.cpu.SetLines(lines)
			continue // for loop

		case "RASTER":
			if len(toks) != 2 {
				return fail(ln, "RASTER requires a scanline")
			}
			v, err := strconv.Atoi(toks[1])
			if err != nil {
				return fail(ln, err)
			}
			if mcr.raster != nil {
				mcr.raster(v)
			}
			continue // for loop

		case "QUIT":
			res.Quit = true
			return res, nil
		}

		if mcr.cpu.Flags()&bus.FlagBreak == bus.FlagBreak {
			res.Break = true
			logger.Logf(logger.Allow, "macro", "%s: %d: break", mcr.filename, ln+headerNumLines+1)
			return res, nil
		}
	}

	if len(loops) > 0 {
		return res, curated.Errorf(MacroError, mcr.filename, loops[0].line+headerNumLines+1, "DO without a LOOP")
	}

	logger.Logf(logger.Allow, "macro", "%s: %d bus cycles", mcr.filename, res.Cycles)

	return res, nil
}
