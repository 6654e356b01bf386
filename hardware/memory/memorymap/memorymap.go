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

package memorymap

import (
	"fmt"

	"github.com/jetsetilly/eightbench/hardware/memory/banks"
)

// NumSlots is the number of slots in the physical address space.
const NumSlots = 0x10000 / banks.PageSize

// slotShift converts a physical address to a slot index.
const slotShift = 10

// slotMask extracts the offset within a slot from a physical address.
const slotMask = banks.PageSize - 1

// Access is the direction(s) in which a bank is mapped.
type Access int

// List of valid Access values.
const (
	AccessNone Access = iota
	AccessRead
	AccessWrite
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessNone:
		return "--"
	case AccessRead:
		return "r-"
	case AccessWrite:
		return "-w"
	case AccessReadWrite:
		return "rw"
	}
	return "??"
}

// Mapping describes the read and write side of a single slot. A side that is
// not mapped has a Bank of banks.InvalidID.
type Mapping struct {
	ReadBank  banks.ID
	ReadPage  int
	WriteBank banks.ID
	WritePage int
}

// Access returns the derived access mode of the slot.
func (m Mapping) Access() Access {
	r := m.ReadBank != banks.InvalidID
	w := m.WriteBank != banks.InvalidID
	switch {
	case r && w:
		return AccessReadWrite
	case r:
		return AccessRead
	case w:
		return AccessWrite
	}
	return AccessNone
}

// side is one direction of a slot. the bank pointer is cached so that reading
// and writing through the map does not need to consult the registry.
type side struct {
	id   banks.ID
	page int
	bank *banks.Bank

	// offset of the first byte of the slot within the bank
	base uint16
}

var unmapped = side{id: banks.InvalidID}

// Map is the physical address space of a machine.
type Map struct {
	reg   *banks.Registry
	read  [NumSlots]side
	write [NumSlots]side
}

// NewMap is the preferred method of initialisation for the Map type. All slots
// are initially unmapped.
func NewMap(reg *banks.Registry) *Map {
	m := &Map{reg: reg}
	for i := range m.read {
		m.read[i] = unmapped
		m.write[i] = unmapped
	}
	return m
}

// Registry returns the bank registry used by the map.
func (m *Map) Registry() *banks.Registry {
	return m.reg
}

// MapBank installs every page of a bank into consecutive slots beginning with
// the specified slot. The access argument selects which side of the slots is
// changed. The other side is left as it was. Mapping with AccessNone removes
// both sides of the slots.
//
// Mapping an unknown bank or a bank that does not fit in the address space at
// the requested slot is a programming error and causes a panic.
func (m *Map) MapBank(id banks.ID, slot int, access Access) {
	b := m.reg.GetBank(id)
	if b == nil {
		panic(fmt.Sprintf("memorymap: unknown bank %d", id))
	}
	m.MapPages(id, 0, b.NumPages(), slot, access)
}

// MapPages is like MapBank but installs only count pages of the bank
// beginning with firstPage.
func (m *Map) MapPages(id banks.ID, firstPage int, count int, slot int, access Access) {
	b := m.reg.GetBank(id)
	if b == nil {
		panic(fmt.Sprintf("memorymap: unknown bank %d", id))
	}
	if firstPage < 0 || count <= 0 || firstPage+count > b.NumPages() {
		panic(fmt.Sprintf("memorymap: pages %d to %d out of range for bank %s", firstPage, firstPage+count-1, b.Name))
	}
	if slot < 0 || slot+count > NumSlots {
		panic(fmt.Sprintf("memorymap: slot %d out of range for %d pages of bank %s", slot, count, b.Name))
	}

	for i := 0; i < count; i++ {
		s := side{
			id:   id,
			page: firstPage + i,
			bank: b,
			base: uint16((firstPage + i) * banks.PageSize),
		}
		switch access {
		case AccessNone:
			m.read[slot+i] = unmapped
			m.write[slot+i] = unmapped
		case AccessRead:
			m.read[slot+i] = s
		case AccessWrite:
			m.write[slot+i] = s
		case AccessReadWrite:
			m.read[slot+i] = s
			m.write[slot+i] = s
		}
	}
}

// Slot returns the mapping of a slot.
func (m *Map) Slot(slot int) Mapping {
	return Mapping{
		ReadBank:  m.read[slot].id,
		ReadPage:  m.read[slot].page,
		WriteBank: m.write[slot].id,
		WritePage: m.write[slot].page,
	}
}

// Slots returns the mapping of every slot. The result is comparable with the
// == operator.
func (m *Map) Slots() [NumSlots]Mapping {
	var s [NumSlots]Mapping
	for i := range s {
		s[i] = m.Slot(i)
	}
	return s
}

// SlotOf returns the slot index containing the address.
func SlotOf(address uint16) int {
	return int(address >> slotShift)
}

// Resolve returns the AddressRef that a read of the physical address will
// access. Returns banks.InvalidRef if the address is not mapped for reading.
func (m *Map) Resolve(address uint16) banks.AddressRef {
	s := &m.read[address>>slotShift]
	if s.bank == nil {
		return banks.InvalidRef
	}
	return banks.AddressRef{Bank: s.id, Offset: s.base + address&slotMask}
}

// ResolveWrite returns the AddressRef that a write to the physical address
// will access. Returns banks.InvalidRef if the address is not mapped for
// writing.
func (m *Map) ResolveWrite(address uint16) banks.AddressRef {
	s := &m.write[address>>slotShift]
	if s.bank == nil {
		return banks.InvalidRef
	}
	return banks.AddressRef{Bank: s.id, Offset: s.base + address&slotMask}
}

// ReadByte returns the byte visible to the CPU at the physical address.
// Unmapped addresses read as zero.
func (m *Map) ReadByte(address uint16) uint8 {
	s := &m.read[address>>slotShift]
	if s.bank == nil {
		return 0
	}
	return s.bank.Read(s.base + address&slotMask)
}

// ReadWord returns the little-endian word at the physical address.
func (m *Map) ReadWord(address uint16) uint16 {
	return uint16(m.ReadByte(address)) | uint16(m.ReadByte(address+1))<<8
}

// WriteByte writes to the bank mapped on the write side of the physical
// address. Returns false if the address is unmapped or the bank is
// read-only.
func (m *Map) WriteByte(address uint16, data uint8) bool {
	s := &m.write[address>>slotShift]
	if s.bank == nil {
		return false
	}
	return s.bank.Write(s.base+address&slotMask, data)
}

// Peek is an alias for ReadByte(). Implements the bus.DebugBus interface.
func (m *Map) Peek(address uint16) uint8 {
	return m.ReadByte(address)
}

// Poke writes to the bank mapped on the read side of the physical address,
// ignoring the read-only flag of the bank. Implements the bus.DebugBus
// interface.
func (m *Map) Poke(address uint16, data uint8) {
	s := &m.read[address>>slotShift]
	if s.bank == nil {
		return
	}
	s.bank.Poke(s.base+address&slotMask, data)
}
