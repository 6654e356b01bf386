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

// Package memorymap maps the banks of a banks.Registry into the 64K physical
// address space seen by the CPU.
//
// The address space is divided into slots of banks.PageSize bytes. Each slot
// has a read mapping and a write mapping and the two are independent. This is
// how ROM and the RAM beneath it share an address range: reads from the slot
// resolve to the ROM bank while writes resolve to the RAM bank.
//
// Resolving an address is a pair of table lookups. MapBank() changes the
// tables immediately so the effect of a paging register write is visible to
// the very next access.
package memorymap
