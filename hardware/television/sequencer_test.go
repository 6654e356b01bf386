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

package television_test

import (
	"testing"

	"github.com/jetsetilly/eightbench/hardware/television"
	"github.com/jetsetilly/eightbench/test"
)

type counter struct {
	starts int
	ends   int
	order  []string
}

func (c *counter) OnFrameStart() {
	c.starts++
	c.order = append(c.order, "start")
}

func (c *counter) OnFrameEnd() {
	c.ends++
	c.order = append(c.order, "end")
}

const last = 311

func TestFullCycle(t *testing.T) {
	seq := television.NewSequencer(0, last)
	c := &counter{}
	seq.AddFrameTrigger(c)

	test.ExpectEquality(t, seq.State(), television.BeforeFrame)

	for p := 0; p <= last; p++ {
		seq.OnScanlinePositionChanged(p)
		if p == 0 {
			test.ExpectEquality(t, c.starts, 1)
			test.ExpectEquality(t, seq.State(), television.InFrame)
		}
	}
	seq.OnScanlinePositionChanged(0)

	test.ExpectEquality(t, c.starts, 2)
	test.ExpectEquality(t, c.ends, 1)
	test.DemandEquality(t, len(c.order), 3)
	test.ExpectEquality(t, c.order[0], "start")
	test.ExpectEquality(t, c.order[1], "end")
	test.ExpectEquality(t, c.order[2], "start")
	test.ExpectEquality(t, seq.FrameNum(), 2)
}

func TestRepeatedPositions(t *testing.T) {
	seq := television.NewSequencer(0, last)
	c := &counter{}
	seq.AddFrameTrigger(c)

	// repeated positions are not edges
	for i := 0; i < 100; i++ {
		seq.OnScanlinePositionChanged(0)
	}
	test.ExpectEquality(t, c.starts, 1)

	for i := 0; i < 100; i++ {
		seq.OnScanlinePositionChanged(last)
	}
	test.ExpectEquality(t, c.ends, 1)
}

func TestStartMidFrame(t *testing.T) {
	seq := television.NewSequencer(0, last)
	c := &counter{}
	seq.AddFrameTrigger(c)

	// an end position before any start position causes no event
	seq.OnScanlinePositionChanged(100)
	seq.OnScanlinePositionChanged(last)
	test.ExpectEquality(t, c.ends, 0)
	test.ExpectEquality(t, c.starts, 0)

	seq.OnScanlinePositionChanged(0)
	test.ExpectEquality(t, c.starts, 1)

	seq.Reset()
	test.ExpectEquality(t, seq.State(), television.BeforeFrame)
	test.ExpectEquality(t, seq.FrameNum(), 0)
}

func TestManyCycles(t *testing.T) {
	seq := television.NewSequencer(0, last)
	c := &counter{}
	seq.AddFrameTrigger(c)

	const frames = 10
	for f := 0; f < frames; f++ {
		for p := 0; p <= last; p++ {
			seq.OnScanlinePositionChanged(p)
		}
	}
	test.ExpectEquality(t, c.starts, frames)
	test.ExpectEquality(t, c.ends, frames)
}
