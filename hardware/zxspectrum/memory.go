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

package zxspectrum

import (
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/logger"
)

// BankSize is the size of every ROM and RAM bank.
const BankSize = 0x4000

// Bits of the 128K paging port.
const (
	PagingRAM    = 0x07
	PagingScreen = 0x08
	PagingROM    = 0x10
	PagingLock   = 0x20
)

// the opcode of the DI instruction.
const opDI = 0xf3

// IsULAPort returns true if the ULA responds to the port.
func IsULAPort(port uint16) bool {
	return port&0x0001 == 0x0000
}

// IsPagingPort returns true if the 128K paging logic responds to the port.
func IsPagingPort(port uint16) bool {
	return port&0x8002 == 0x0000
}

// IsAYSelectPort returns true if the port selects an AY register.
func IsAYSelectPort(port uint16) bool {
	return port&0xc002 == 0xc000
}

// IsAYDataPort returns true if the port writes to the selected AY register.
func IsAYDataPort(port uint16) bool {
	return port&0xc002 == 0x8000
}

// Memory is the Z80's view of the Spectrum. It satisfies the bus interface
// required by the Z80 core and reports every cycle to the observer.
type Memory struct {
	model Model

	ROM [][]uint8
	RAM [8][]uint8

	// value most recently written to the paging port and whether paging is
	// locked
	paging uint8
	locked bool

	// ULA output
	border uint8
	ear    uint8

	// the AY chip is not emulated but the register values are kept so that
	// they can be read back
	ayRegister  uint8
	AYRegisters [16]uint8

	mem      *memorymap.Map
	observer bus.Observer

	// state of the control lines. FlagIntAck is cleared after the next
	// instruction fetch
	lines bus.Flags

	// flags returned by the observer during the current step
	flags bus.Flags

	// whether the opcode of the current step has been fetched and the value
	// of that opcode
	fetched bool
	opcode  uint8
}

func newMemory(model Model) *Memory {
	m := &Memory{
		model: model,
		ROM:   make([][]uint8, model.numROMs()),
	}
	for i := range m.ROM {
		m.ROM[i] = make([]uint8, BankSize)
	}

	if model == Model128K {
		for i := range m.RAM {
			m.RAM[i] = make([]uint8, BankSize)
		}
	} else {
		for _, i := range []int{0, 2, 5} {
			m.RAM[i] = make([]uint8, BankSize)
		}
	}

	return m
}

func (m *Memory) reset() {
	m.paging = 0
	m.locked = false
	m.border = 0
	m.ear = 0
	m.ayRegister = 0
	m.lines = 0
	m.flags = 0
	m.fetched = false
}

// beginStep must be called before the CPU executes an instruction.
func (m *Memory) beginStep() {
	m.fetched = false
	m.opcode = 0x00
	m.flags = 0
}

// Fetch reads an opcode during an M1 cycle. Only the first M1 cycle of an
// instruction is reported to the observer as an instruction fetch. The fetch
// of the opcode that follows a prefix is reported as a read.
func (m *Memory) Fetch(address uint16) uint8 {
	d := m.mem.ReadByte(address)
	if m.fetched {
		m.notify(address, d, false, false, 0)
		return d
	}
	m.fetched = true
	m.opcode = d
	m.notify(address, d, false, true, 0)
	return d
}

// Read implements the bus.CPUBus interface.
func (m *Memory) Read(address uint16) uint8 {
	d := m.mem.ReadByte(address)
	m.notify(address, d, false, false, 0)
	return d
}

// Write implements the bus.CPUBus interface. Writes to ROM are ignored.
func (m *Memory) Write(address uint16, data uint8) {
	m.mem.WriteByte(address, data)
	m.notify(address, data, true, false, 0)
}

// In reads from a port. Keyboard and joystick input is not emulated and the
// ULA port always reads as if no keys are pressed.
func (m *Memory) In(port uint16) uint8 {
	d := uint8(0xff)
	if m.model == Model128K && IsAYSelectPort(port) {
		d = m.AYRegisters[m.ayRegister]
	}
	m.notify(port, d, false, false, bus.FlagIORQ)
	return d
}

// Out writes to a port. A port can be decoded by more than one device.
func (m *Memory) Out(port uint16, data uint8) {
	if IsULAPort(port) {
		m.border = data & 0x07
		m.ear = data & 0x10
	}

	if m.model == Model128K {
		if IsPagingPort(port) && !m.locked {
			m.paging = data
			if data&PagingLock == PagingLock {
				m.locked = true
				logger.Logf(logger.Allow, "zxspectrum", "paging locked with %02x", data)
			}
		}
		if IsAYSelectPort(port) {
			m.ayRegister = data & 0x0f
		} else if IsAYDataPort(port) {
			m.AYRegisters[m.ayRegister] = data
		}
	}

	m.notify(port, data, true, false, bus.FlagIORQ)
}

// SetLines implements the bus.CPUBus interface.
func (m *Memory) SetLines(lines bus.Flags) {
	m.lines = lines
}

// Flags implements the bus.CPUBus interface. The flags are accumulated over
// every cycle of the current instruction.
func (m *Memory) Flags() bus.Flags {
	return m.flags
}

// Peek implements the bus.DebugBus interface.
func (m *Memory) Peek(address uint16) uint8 {
	return m.mem.ReadByte(address)
}

// Poke implements the bus.DebugBus interface. Poking the ROM area changes
// the ROM.
func (m *Memory) Poke(address uint16, data uint8) {
	m.mem.Poke(address, data)
}

// Border returns the current border colour.
func (m *Memory) Border() uint8 {
	return m.border
}

func (m *Memory) notify(address uint16, data uint8, write bool, fetch bool, cycle bus.Flags) {
	if m.observer != nil {
		m.flags |= m.observer.OnBusEvent(address, data, write, fetch, m.lines|cycle)
	}
	if fetch {
		m.lines &^= bus.FlagIntAck
	}
}
