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

package tap

import (
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
)

// Vector describes where the address of an interrupt handler can be found.
type Vector struct {
	Address uint16

	// if Indirect is true then the handler address is the word stored at
	// Address. otherwise Address is the handler address
	Indirect bool
}

// Machine is the set of rules specific to an emulated machine.
type Machine interface {
	// Remap sets the memory map according to the current paging state.
	Remap(mem *memorymap.Map)

	// Paging examines a bus cycle and returns true if the cycle has changed
	// the paging state. The cycle has already been applied to the machine's
	// memory when Paging is called.
	Paging(address uint16, data uint8, write bool, flags bus.Flags) bool

	// IsIO returns true if the address of a memory cycle is currently mapped
	// to I/O chips.
	IsIO(address uint16) bool

	// InterruptVector returns the location of an interrupt handler if the bus
	// cycle is the CPU responding to an interrupt.
	InterruptVector(address uint16, write bool, fetch bool, flags bus.Flags) (Vector, bool)
}
