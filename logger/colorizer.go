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

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/eightbench/terminal/ansi"
	"golang.org/x/term"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is drawn in a dim pen. Coloring is only applied if the underlying
// writer is a terminal.
type Colorizer struct {
	out   io.Writer
	color bool
}

// NewColorizer is the preferred method of initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	c := Colorizer{out: out}
	if f, ok := out.(*os.File); ok {
		c.color = term.IsTerminal(int(f.Fd()))
	}
	return c
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	if !c.color {
		return c.out.Write(p)
	}

	s := string(p)
	tag, detail, ok := strings.Cut(s, ": ")
	if !ok {
		return c.out.Write(p)
	}

	_, err = io.WriteString(c.out, ansi.DimPens["cyan"]+tag+ansi.NormalPen+": "+detail)
	if err != nil {
		return 0, err
	}

	return len(p), nil
}
