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

// Package macro replays scripts of CPU bus cycles against a machine. It is
// used to drive a machine for which there is no CPU core, or to reproduce a
// sequence of bus cycles captured elsewhere.
//
// The first line of a macro file must be
//
//	eightbenchmacro
//
// and the second line is a version string, which is currently ignored.
//
// Bus cycles are given with the FETCH, READ and WRITE instructions. The value
// is optional for FETCH and READ. When it is given it is poked into memory
// before the cycle so that the cycle sees it.
//
//	FETCH $c000 $a9
//	READ $c001
//	WRITE $d020 $06
//
// Memory can be changed without a bus cycle with POKE. The interrupt lines
// are controlled with IRQ and NMI, and the raster line with RASTER.
//
//	POKE $fffe $48
//	IRQ ON
//	NMI OFF
//	RASTER 311
//
// Instructions can be repeated with a loop. Loops can be nested.
//
//	DO loopCt
//		...
//	LOOP
//
// The macro stops early when a bus cycle is flagged with bus.FlagBreak, or on
// the QUIT instruction.
//
// Lines can be commented by prefixing the line with two dashes (--). Leading
// and trailing white space is ignored.
package macro
