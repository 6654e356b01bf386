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
package monitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/emulation"
	"github.com/jetsetilly/eightbench/hardware/zxspectrum"
	"github.com/jetsetilly/eightbench/logger"
	"github.com/jetsetilly/eightbench/terminal"
	"github.com/jetsetilly/eightbench/terminal/ansi"
)

// InputError is the pattern for errors from the Input.
const InputError = "monitor: input: %v"

// Input supplies key presses to the monitor.
type Input interface {
	ReadKey() (byte, error)
}

// Suspender is an optional interface for an Input. The monitor calls
// Suspend() when the suspend key is pressed.
type Suspender interface {
	Suspend() error
}

// Monitor drives a Spectrum from single key presses.
type Monitor struct {
	zx   *zxspectrum.Spectrum
	in   Input
	out  io.Writer
	lmtr *emulation.Limiter

	state emulation.State

	// number of frames run since the last status line while in the running
	// state
	sinceStatus int
}

// the status line is printed once a second while running
const statusInterval = 50

// NewMonitor is the preferred method of initialisation for the Monitor type.
// The fps argument is the frame rate while running. A rate of zero or less
// runs as fast as possible.
func NewMonitor(zx *zxspectrum.Spectrum, in Input, out io.Writer, fps float32) *Monitor {
	return &Monitor{
		zx:    zx,
		in:    in,
		out:   out,
		lmtr:  emulation.NewLimiter(fps),
		state: emulation.Initialising,
	}
}

// State returns the current state of the monitor.
func (m *Monitor) State() emulation.State {
	return m.state
}

type keyEvent struct {
	key byte
	err error
}

// Run the monitor until the quit key is pressed or the input is exhausted.
// An io.EOF from the input is not an error.
func (m *Monitor) Run() error {
	defer m.lmtr.Stop()

	keys := make(chan keyEvent, 1)
	go func() {
		for {
			k, err := m.in.ReadKey()
			keys <- keyEvent{key: k, err: err}
			if err != nil {
				return
			}
		}
	}()

	m.state = emulation.Paused
	m.help()
	m.status()

	handle := func(ev keyEvent) error {
		if ev.err != nil {
			m.state = emulation.Ending
			if ev.err == io.EOF {
				return nil
			}
			return curated.Errorf(InputError, ev.err)
		}
		return m.Command(ev.key)
	}

	for m.state != emulation.Ending {
		if m.state == emulation.Running {
			select {
			case ev := <-keys:
				if err := handle(ev); err != nil {
					return err
				}
				continue // for loop
			default:
			}

			m.frame()
			m.lmtr.Wait()

			m.sinceStatus++
			if m.sinceStatus >= statusInterval {
				m.sinceStatus = 0
				m.status()
			}
		} else {
			if err := handle(<-keys); err != nil {
				return err
			}
		}
	}

	return nil
}

// Command performs the action for a single key press.
func (m *Monitor) Command(key byte) error {
	switch key {
	case terminal.KeyNone:
	case 'q', terminal.KeyEsc, terminal.KeyInterrupt:
		m.state = emulation.Ending
	case terminal.KeySuspend:
		if s, ok := m.in.(Suspender); ok {
			return s.Suspend()
		}
	case ' ', 'f':
		m.state = emulation.Stepping
		m.frame()
		if m.state == emulation.Stepping {
			m.state = emulation.Paused
		}
		m.status()
	case 's', terminal.KeyCarriageReturn, terminal.KeyLineFeed:
		m.state = emulation.Stepping
		m.zx.Step()
		m.state = emulation.Paused
		if m.zx.Break() {
			m.printBreak()
		}
		m.status()
	case 'r':
		if m.state == emulation.Running {
			m.state = emulation.Paused
			m.status()
		} else {
			m.state = emulation.Running
			m.sinceStatus = 0
		}
	case 'x':
		m.zx.ResetAnalysis()
		logger.Log(logger.Allow, "monitor", "analysis reset")
		fmt.Fprintln(m.out, "analysis reset")
	case 'm':
		io.WriteString(m.out, m.zx.Summary())
	case 'b':
		io.WriteString(m.out, m.zx.Tap.Store.BlocksSummary())
	case 'i':
		io.WriteString(m.out, m.zx.IO.Summary())
	case 'v':
		m.handlers()
	case 'w':
		m.selfModifying()
	case 'a':
		m.accessHandlers()
	case 'h', '?':
		m.help()
	default:
		fmt.Fprintf(m.out, "unknown key (%q). press h for help\n", key)
	}
	return nil
}

// frame runs the machine to the end of the frame. The state is changed to
// Paused if an access handler requested a break.
func (m *Monitor) frame() {
	m.zx.RunFrame()
	if m.zx.Break() {
		m.state = emulation.Paused
		m.printBreak()
	}
}

func (m *Monitor) printBreak() {
	fmt.Fprintf(m.out, "%sbreak%s at $%04x\n", ansi.Pens["red"], ansi.NormalPen, m.zx.PC())
	for _, h := range m.zx.Tap.Store.AccessHandlers() {
		if h.Break && h.Hits > 0 {
			fmt.Fprintf(m.out, "  %s\n", h)
		}
	}
}

func (m *Monitor) status() {
	st := m.zx.Tap.Store
	last := st.LastFrame()
	fmt.Fprintf(m.out, "%s%s%s  frame %d  pc $%04x  t %d  instr %d  reads %d  writes %d  smc %d",
		ansi.Pens["cyan"], m.state, ansi.NormalPen,
		m.zx.Frames(), m.zx.PC(), m.zx.TStates(),
		last.Instructions, last.Reads, last.Writes, len(st.SelfModifying()))
	if m.zx.Halted() {
		io.WriteString(m.out, "  halted")
	}
	if m.state == emulation.Running {
		fmt.Fprintf(m.out, "  %.1ffps", m.lmtr.Actual())
	}
	io.WriteString(m.out, "\n")
}

func (m *Monitor) handlers() {
	reg := m.zx.Tap.Registry
	h := m.zx.Tap.Store.InterruptHandlers()
	if len(h) == 0 {
		fmt.Fprintln(m.out, "no interrupt handlers")
		return
	}
	for _, r := range h {
		fmt.Fprintf(m.out, "interrupt handler: %s\n", reg.Describe(r))
	}
}

func (m *Monitor) selfModifying() {
	smc := m.zx.Tap.Store.SelfModifying()
	if len(smc) == 0 {
		fmt.Fprintln(m.out, "no self-modifying code")
		return
	}
	s := make([]string, 0, len(smc))
	for _, a := range smc {
		s = append(s, fmt.Sprintf("$%04x", a))
	}
	fmt.Fprintf(m.out, "self-modifying: %s\n", strings.Join(s, " "))
}

func (m *Monitor) accessHandlers() {
	h := m.zx.Tap.Store.AccessHandlers()
	if len(h) == 0 {
		fmt.Fprintln(m.out, "no access handlers")
		return
	}
	for _, a := range h {
		fmt.Fprintln(m.out, a)
	}
}

func (m *Monitor) help() {
	fmt.Fprintln(m.out, "space/f: frame  s/return: step  r: run/pause  x: reset analysis")
	fmt.Fprintln(m.out, "m: memory map  b: blocks  i: io  v: interrupts  w: smc  a: access handlers")
	fmt.Fprintln(m.out, "h: help  q: quit")
}
