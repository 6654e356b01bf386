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

import "time"

// Budget runs the machine until at least the requested number of ticks have
// been consumed. A budget of zero or less is treated as a budget of one so
// that the machine always makes progress.
//
// The run ends early if the machine makes no progress or if it implements the
// Breaker interface and requests a break. Returns the number of ticks
// actually consumed.
func Budget(m Stepper, ticks int) int {
	if ticks < 1 {
		ticks = 1
	}

	brk, _ := m.(Breaker)

	var consumed int
	for consumed < ticks {
		n := m.Step()
		if n <= 0 {
			break
		}
		consumed += n
		if brk != nil && brk.Break() {
			break
		}
	}

	return consumed
}

// TicksFor converts a duration of machine time into clock ticks for a clock
// of the given frequency. Fractions of a tick are discarded.
func TicksFor(d time.Duration, clockHz int) int {
	return int(d.Microseconds() * int64(clockHz) / 1000000)
}
