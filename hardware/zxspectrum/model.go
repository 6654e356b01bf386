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

package zxspectrum

import (
	"strings"

	"github.com/jetsetilly/eightbench/curated"
)

// Model of ZX Spectrum.
type Model int

// List of valid Model values.
const (
	Model48K Model = iota
	Model128K
)

// Error patterns.
const (
	UnknownModel = "zxspectrum: unknown model (%s)"
)

func (m Model) String() string {
	switch m {
	case Model48K:
		return "48K"
	case Model128K:
		return "128K"
	}
	return "unknown model"
}

// ParseModel returns the Model named by s. The comparison is not case
// sensitive.
func ParseModel(s string) (Model, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "48K", "48":
		return Model48K, nil
	case "128K", "128":
		return Model128K, nil
	}
	return Model48K, curated.Errorf(UnknownModel, s)
}

// Timing describes the video timing of a model. All values are in T-states
// unless stated otherwise.
type Timing struct {
	ClockHz   int
	LineTicks int

	// number of scanlines in a frame
	Lines int

	// number of T-states the interrupt line is held at the start of a frame
	IntLength int
}

// FrameTicks returns the number of T-states in a frame.
func (t Timing) FrameTicks() int {
	return t.LineTicks * t.Lines
}

// Timing returns the video timing for the model.
func (m Model) Timing() Timing {
	if m == Model128K {
		return Timing{ClockHz: 3546900, LineTicks: 228, Lines: 311, IntLength: 36}
	}
	return Timing{ClockHz: 3500000, LineTicks: 224, Lines: 312, IntLength: 32}
}

// number of ROMs and RAM banks for the model.
func (m Model) numROMs() int {
	if m == Model128K {
		return 2
	}
	return 1
}
