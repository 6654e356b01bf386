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

package emulation

// Stepper is implemented by a machine that can execute one instruction at a
// time.
type Stepper interface {
	// Step executes one instruction and returns the number of clock ticks it
	// took. A return value of zero means the machine could make no progress.
	Step() int
}

// Breaker is an optional interface for a Stepper. A machine that implements
// it can stop a run early, for example when an access handler is hit.
type Breaker interface {
	// Break returns true if the most recent step requested a break.
	Break() bool
}

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// Values are ordered so that order comparisons are meaningful. For example,
// Running is "greater than" Paused.
const (
	Initialising State = iota
	Paused
	Stepping
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case Initialising:
		return "initialising"
	case Paused:
		return "paused"
	case Stepping:
		return "stepping"
	case Running:
		return "running"
	case Ending:
		return "ending"
	}
	return "unknown state"
}
