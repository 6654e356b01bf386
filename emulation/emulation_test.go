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

package emulation_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/eightbench/emulation"
	"github.com/jetsetilly/eightbench/test"
)

// machine that takes a fixed number of ticks for every instruction.
type machine struct {
	ticks    int
	steps    int
	breakAt  int
	progress bool
}

func (m *machine) Step() int {
	if !m.progress {
		return 0
	}
	m.steps++
	return m.ticks
}

type breaker struct {
	machine
}

func (m *breaker) Break() bool {
	return m.steps == m.breakAt
}

func TestBudget(t *testing.T) {
	m := &machine{ticks: 4, progress: true}
	test.ExpectEquality(t, emulation.Budget(m, 10), 12)
	test.ExpectEquality(t, m.steps, 3)

	m = &machine{ticks: 4, progress: true}
	test.ExpectEquality(t, emulation.Budget(m, 12), 12)
	test.ExpectEquality(t, m.steps, 3)
}

func TestBudgetClamp(t *testing.T) {
	m := &machine{ticks: 7, progress: true}
	test.ExpectEquality(t, emulation.Budget(m, 0), 7)
	test.ExpectEquality(t, m.steps, 1)

	test.ExpectEquality(t, emulation.Budget(m, -100), 7)
	test.ExpectEquality(t, m.steps, 2)
}

func TestBudgetNoProgress(t *testing.T) {
	m := &machine{ticks: 4}
	test.ExpectEquality(t, emulation.Budget(m, 1000), 0)
}

func TestBudgetBreak(t *testing.T) {
	m := &breaker{machine{ticks: 4, progress: true, breakAt: 2}}
	test.ExpectEquality(t, emulation.Budget(m, 1000), 8)
	test.ExpectEquality(t, m.steps, 2)
}

func TestTicksFor(t *testing.T) {
	test.ExpectEquality(t, emulation.TicksFor(time.Second, 3500000), 3500000)
	test.ExpectEquality(t, emulation.TicksFor(20*time.Millisecond, 3500000), 70000)
	test.ExpectEquality(t, emulation.TicksFor(time.Microsecond, 985248), 0)
	test.ExpectEquality(t, emulation.TicksFor(0, 3500000), 0)
}

func TestLimiter(t *testing.T) {
	lmtr := emulation.NewLimiter(0)
	defer lmtr.Stop()

	// an unlimited limiter never blocks
	for range 10 {
		lmtr.Wait()
	}

	lmtr.SetRate(1000)
	start := time.Now()
	for range 5 {
		lmtr.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) >= 3*time.Millisecond)
}

func TestStateString(t *testing.T) {
	test.ExpectEquality(t, emulation.Running.String(), "running")
	test.ExpectSuccess(t, emulation.Running > emulation.Paused)
}
