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

// Package zxspectrum is the memory system of the ZX Spectrum 48K and 128K,
// driven by the Z80 core from github.com/user-none/go-chip-z80.
//
// Both models use the same banks. The 48K machine is a 128K machine that has
// one ROM, three RAM banks and no paging port:
//
//	$0000  ROM 0 (ROM 0 or ROM 1 on the 128K)
//	$4000  RAM 5
//	$8000  RAM 2
//	$c000  RAM 0 (any RAM bank on the 128K)
//
// The 128K paging port is decoded when address lines A15 and A1 are low. Bit
// 5 of the port locks paging until the next reset.
//
// Every memory and port cycle of the CPU is reported to a tap.Tap. Interrupt
// acknowledgement is not visible on the bus of the Z80 core so the Spectrum
// type detects it and flags the first opcode fetch of the interrupt handler
// with bus.FlagIntAck.
package zxspectrum
