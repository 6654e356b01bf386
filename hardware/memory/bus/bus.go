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

package bus

import (
	"strings"

	"github.com/jetsetilly/eightbench/hardware/memory/banks"
)

// Flags is the state of the CPU control lines for a single bus cycle.
type Flags uint16

// List of valid Flags.
const (
	// the interrupt request line is asserted
	FlagIRQ Flags = 1 << iota

	// the non-maskable interrupt line is asserted
	FlagNMI

	// the cycle is an I/O port cycle rather than a memory cycle. only used
	// by CPUs with a separate I/O address space
	FlagIORQ

	// the cycle is the first instruction fetch after an interrupt has been
	// accepted by the CPU
	FlagIntAck

	// returned by the observer to request the host stop emulation at the end
	// of the current instruction
	FlagBreak

	// returned by the observer when the cycle caused the memory map to change
	FlagRemapped
)

func (f Flags) String() string {
	s := strings.Builder{}
	add := func(b Flags, n string) {
		if f&b == b {
			if s.Len() > 0 {
				s.WriteString("|")
			}
			s.WriteString(n)
		}
	}
	add(FlagIRQ, "IRQ")
	add(FlagNMI, "NMI")
	add(FlagIORQ, "IORQ")
	add(FlagIntAck, "INTACK")
	add(FlagBreak, "BREAK")
	add(FlagRemapped, "REMAPPED")
	if s.Len() == 0 {
		return "-"
	}
	return s.String()
}

// Observer is implemented by types that want to see every bus cycle.
//
// The address and data arguments are the values on the bus. The write
// argument is true for a write cycle. The fetch argument is true for the
// opcode fetch of an instruction. The returned flags are the input flags with
// any bits added by the observer.
//
// Implementations must not allocate.
type Observer interface {
	OnBusEvent(address uint16, data uint8, write bool, fetch bool, flags Flags) Flags
}

// IOObserver is implemented by types that analyse access to the I/O chips of
// a machine. The pc argument is the instruction responsible for the access.
type IOObserver interface {
	OnIORead(address uint16, data uint8, pc banks.AddressRef)
	OnIOWrite(address uint16, data uint8, pc banks.AddressRef)
	ResetIO()
}

// DebugBus defines the meta-operations for memory. Think of these functions
// as "debugging" functions, that is operations outside of the normal
// operation of the machine.
type DebugBus interface {
	Peek(address uint16) uint8
	Poke(address uint16, value uint8)
}

// CPUBus defines the operations for the memory system when accessed from the
// CPU. Every call is reported to the machine's Observer.
type CPUBus interface {
	// Fetch reads the opcode of an instruction
	Fetch(address uint16) uint8

	// Read reads an operand or data byte
	Read(address uint16) uint8

	Write(address uint16, data uint8)

	// SetLines sets the state of the CPU control lines for subsequent bus
	// cycles. Only FlagIRQ and FlagNMI are meaningful
	SetLines(lines Flags)

	// Flags returns the flags returned by the Observer for the most recent
	// bus cycle
	Flags() Flags
}
