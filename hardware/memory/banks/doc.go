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

// Package banks owns the memory banks of an emulated machine. A bank is a
// named block of RAM or ROM that can be mapped into the physical address space
// by the memorymap package.
//
// Banks borrow their backing storage from the caller. The storage is never
// copied and never released by the registry, so the caller must keep it alive
// for as long as the registry is in use. This allows a bank to share storage
// with a CPU core's own memory array.
//
// Analysis data is attached to every byte of a bank and is addressed by
// AddressRef, the pair of bank ID and offset. Unlike a physical address, an
// AddressRef does not change meaning when the mapping changes and so it is the
// key for all persistent analysis data.
package banks
