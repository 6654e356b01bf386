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

package c64

import (
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
)

// Bits of the CPU port that control paging.
const (
	LORAM  = 0x01
	HIRAM  = 0x02
	CHAREN = 0x04
)

// the port and data direction register values after a reset.
const (
	resetDDR  = 0x2f
	resetData = 0x37
)

// bits of the CPU port that read as high when configured as inputs.
const portPullUps = 0x17

// Memory is the CPU's view of the C64. It holds the backing storage for every
// bank and reports every bus cycle to the observer.
type Memory struct {
	RAM       []uint8
	BasicROM  []uint8
	KernalROM []uint8
	CharROM   []uint8

	// write-through buffer for the I/O area. reads of I/O registers return
	// the value most recently written
	IO []uint8

	ddr  uint8
	data uint8

	mem      *memorymap.Map
	observer bus.Observer

	// state of the interrupt lines
	lines bus.Flags

	// flags returned by the observer for the most recent bus cycle
	flags bus.Flags
}

func newMemory() *Memory {
	m := &Memory{
		RAM:       make([]uint8, 0x10000),
		BasicROM:  make([]uint8, 0x2000),
		KernalROM: make([]uint8, 0x2000),
		CharROM:   make([]uint8, 0x1000),
		IO:        make([]uint8, 0x1000),
	}
	m.Reset()
	return m
}

// Reset the CPU port to its power-on state. Memory contents are unchanged.
func (m *Memory) Reset() {
	m.ddr = resetDDR
	m.data = resetData
	m.lines = 0
	m.flags = 0
}

// Port returns the value of the CPU port as seen by the paging logic.
func (m *Memory) Port() uint8 {
	return (m.data & m.ddr) | (^m.ddr & portPullUps)
}

// Read implements the bus.CPUBus interface.
func (m *Memory) Read(address uint16) uint8 {
	d := m.peek(address)
	m.notify(address, d, false, false)
	return d
}

// Fetch implements the bus.CPUBus interface.
func (m *Memory) Fetch(address uint16) uint8 {
	d := m.peek(address)
	m.notify(address, d, false, true)
	return d
}

// Write implements the bus.CPUBus interface.
func (m *Memory) Write(address uint16, data uint8) {
	switch address {
	case 0x0000:
		m.ddr = data
	case 0x0001:
		m.data = data
	}

	// the CPU port registers are also written to the RAM beneath them
	m.mem.WriteByte(address, data)
	m.notify(address, data, true, false)
}

// SetLines implements the bus.CPUBus interface.
func (m *Memory) SetLines(lines bus.Flags) {
	m.lines = lines
}

// Flags implements the bus.CPUBus interface.
func (m *Memory) Flags() bus.Flags {
	return m.flags
}

// Peek implements the bus.DebugBus interface. The observer is not notified.
func (m *Memory) Peek(address uint16) uint8 {
	return m.peek(address)
}

// Poke implements the bus.DebugBus interface. The CPU port is not affected.
func (m *Memory) Poke(address uint16, data uint8) {
	m.mem.Poke(address, data)
}

func (m *Memory) peek(address uint16) uint8 {
	switch address {
	case 0x0000:
		return m.ddr
	case 0x0001:
		return m.Port()
	}
	return m.mem.ReadByte(address)
}

func (m *Memory) notify(address uint16, data uint8, write bool, fetch bool) {
	if m.observer == nil {
		return
	}
	m.flags = m.observer.OnBusEvent(address, data, write, fetch, m.lines)
}
