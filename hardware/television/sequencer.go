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

package television

// FrameTrigger implementations listen for frame start and frame end events.
type FrameTrigger interface {
	OnFrameStart()
	OnFrameEnd()
}

// State of the Sequencer.
type State int

// List of valid State values.
const (
	BeforeFrame State = iota
	InFrame
)

func (s State) String() string {
	switch s {
	case BeforeFrame:
		return "before frame"
	case InFrame:
		return "in frame"
	}
	return "unknown state"
}

// Sequencer is an edge detector for raster positions. A frame starts when
// the position changes to the top scanline and ends when the position changes
// to the last scanline.
type Sequencer struct {
	top  int
	last int

	state    State
	position int

	// number of frames that have started
	frameNum int

	triggers []FrameTrigger
}

// NewSequencer is the preferred method of initialisation for the Sequencer
// type. The top and last arguments are the scanline numbers that mark the
// start and end of a frame.
func NewSequencer(top int, last int) *Sequencer {
	return &Sequencer{
		top:      top,
		last:     last,
		position: -1,
	}
}

// AddFrameTrigger registers a listener for frame events. Listeners are called
// in the order they were added.
func (seq *Sequencer) AddFrameTrigger(t FrameTrigger) {
	seq.triggers = append(seq.triggers, t)
}

// OnScanlinePositionChanged should be called with the current raster position.
// It is safe to call the function with the same position many times in
// succession. Only a change of position can cause an event.
func (seq *Sequencer) OnScanlinePositionChanged(position int) {
	if position == seq.position {
		return
	}
	seq.position = position

	switch seq.state {
	case BeforeFrame:
		if position == seq.top {
			seq.state = InFrame
			seq.frameNum++
			for _, t := range seq.triggers {
				t.OnFrameStart()
			}
		}
	case InFrame:
		if position == seq.last {
			seq.state = BeforeFrame
			for _, t := range seq.triggers {
				t.OnFrameEnd()
			}
		}
	}
}

// State returns the current state of the sequencer.
func (seq *Sequencer) State() State {
	return seq.state
}

// FrameNum returns the number of frames that have started.
func (seq *Sequencer) FrameNum() int {
	return seq.frameNum
}

// Reset the sequencer to the state it was in when it was created. Listeners
// are not removed.
func (seq *Sequencer) Reset() {
	seq.state = BeforeFrame
	seq.position = -1
	seq.frameNum = 0
}
