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

// Package analysis accumulates what has been learned about a running program
// by observing the CPU bus.
//
// Counters for execution, read and write access are kept for every physical
// address. Classification (code, data, self-modifying code) and provenance
// (the instruction that last wrote to a byte) are kept against the
// banks.AddressRef of the byte so that they remain correct after the memory
// map changes.
//
// The Store is written to by the tap package on every bus cycle. None of the
// Register functions allocate memory.
//
// Memory blocks are computed on request by scanning the entire address space.
// They are intended for display and should not be computed every frame.
package analysis
