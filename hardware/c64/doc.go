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

// Package c64 implements the memory and paging of the Commodore 64 for the
// purposes of analysis. It does not emulate the CPU or the video and sound
// chips. A CPU core drives the machine through the Memory type, which
// implements the bus.CPUBus interface.
//
// The 64K address space is built from nine banks:
//
//	LoRAM             $0000 - $9fff  always mapped
//	BasicROM          $a000 - $bfff  read when LORAM and HIRAM are set
//	RAMBehindBasicROM $a000 - $bfff
//	HiRAM             $c000 - $cfff  always mapped
//	IOArea            $d000 - $dfff  read and written when CHAREN is set
//	CharacterROM      $d000 - $dfff  read when CHAREN is clear
//	RAMBehindCharROM  $d000 - $dfff
//	KernalROM         $e000 - $ffff  read when HIRAM is set
//	RAMBehindKernalROM $e000 - $ffff
//
// The RAM beneath a ROM is always mapped for writing. The CPU port at
// address $0001 selects which banks are visible. A write to the CPU port
// changes the memory map before the next bus cycle.
package c64
