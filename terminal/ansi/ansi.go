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

// Package ansi defines the small number of ANSI control codes used by the
// log colorizer and the monitor.
package ansi

import "fmt"

// ansi color.
const (
	colRed    = 1
	colGreen  = 2
	colYellow = 3
	colCyan   = 6
)

func pen(col int, bright bool) string {
	if bright {
		return fmt.Sprintf("\033[1;3%dm", col)
	}
	return fmt.Sprintf("\033[3%dm", col)
}

// NormalPen is the CSI sequence for regular text.
const NormalPen = "\033[0m"

// Pens is the table of colors to be used for text.
var Pens = map[string]string{
	"red":    pen(colRed, true),
	"green":  pen(colGreen, true),
	"yellow": pen(colYellow, true),
	"cyan":   pen(colCyan, true),
}

// DimPens is the table of pastel colors to be used for text.
var DimPens = map[string]string{
	"red":    pen(colRed, false),
	"green":  pen(colGreen, false),
	"yellow": pen(colYellow, false),
	"cyan":   pen(colCyan, false),
}
