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

// Package tap connects a CPU core to the analysis store. The Tap type
// implements the bus.Observer interface and is called for every bus cycle of
// the emulated CPU.
//
// The rules that differ between machines are provided by an implementation of
// the Machine interface. The machine is chosen when the Tap is created and is
// not changed afterwards.
//
// The order of work for each bus cycle is:
//
//	1. data reads and writes are counted and the last writer is recorded
//	2. access to I/O is forwarded to the I/O observer
//	3. an opcode fetch completes the previous instruction
//	4. interrupt vector reads add to the set of interrupt handlers
//	5. the raster position is passed to the frame sequencer
//	6. the memory map is recalculated if the paging state has changed
package tap
