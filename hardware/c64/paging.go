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
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/tap"
)

// BankIDs are the identifiers of the C64 banks.
type BankIDs struct {
	LoRAM              banks.ID
	HiRAM              banks.ID
	IOArea             banks.ID
	BasicROM           banks.ID
	RAMBehindBasicROM  banks.ID
	KernalROM          banks.ID
	RAMBehindKernalROM banks.ID
	CharacterROM       banks.ID
	RAMBehindCharROM   banks.ID
}

// slot index for each of the switchable regions.
const (
	slotLoRAM  = 0
	slotBasic  = 40
	slotHiRAM  = 48
	slotIO     = 52
	slotKernal = 56
)

// Paging implements the tap.Machine interface for the C64.
type Paging struct {
	ids BankIDs
	mem *Memory

	// paging bits of the CPU port at the time of the last remap
	lastPort uint8

	// which of the switchable banks are currently mapped for reading
	BasicROMMapped  bool
	KernalROMMapped bool
	CharROMMapped   bool
	IOMapped        bool
}

func newPaging(ids BankIDs, mem *Memory) *Paging {
	return &Paging{
		ids:      ids,
		mem:      mem,
		lastPort: mem.Port() & (LORAM | HIRAM | CHAREN),
	}
}

// Remap implements the tap.Machine interface.
func (p *Paging) Remap(mem *memorymap.Map) {
	port := p.mem.Port() & (LORAM | HIRAM | CHAREN)

	p.BasicROMMapped = false
	p.KernalROMMapped = false
	p.CharROMMapped = false
	p.IOMapped = false

	mem.MapBank(p.ids.LoRAM, slotLoRAM, memorymap.AccessReadWrite)
	mem.MapBank(p.ids.HiRAM, slotHiRAM, memorymap.AccessReadWrite)

	// the RAM beneath the ROMs is always written to. the ROMs are mapped
	// on top of the RAM for reading only
	mem.MapBank(p.ids.RAMBehindBasicROM, slotBasic, memorymap.AccessReadWrite)
	mem.MapBank(p.ids.RAMBehindCharROM, slotIO, memorymap.AccessReadWrite)
	mem.MapBank(p.ids.RAMBehindKernalROM, slotKernal, memorymap.AccessReadWrite)

	if port&(LORAM|HIRAM) == 0 {
		return
	}

	if port&(LORAM|HIRAM) == LORAM|HIRAM {
		mem.MapBank(p.ids.BasicROM, slotBasic, memorymap.AccessRead)
		p.BasicROMMapped = true
	}

	if port&HIRAM == HIRAM {
		mem.MapBank(p.ids.KernalROM, slotKernal, memorymap.AccessRead)
		p.KernalROMMapped = true
	}

	if port&CHAREN == CHAREN {
		mem.MapBank(p.ids.IOArea, slotIO, memorymap.AccessReadWrite)
		p.IOMapped = true
	} else {
		mem.MapBank(p.ids.CharacterROM, slotIO, memorymap.AccessRead)
		p.CharROMMapped = true
	}
}

// Paging implements the tap.Machine interface. Only writes to the CPU port
// and its data direction register can change the paging state.
func (p *Paging) Paging(address uint16, data uint8, write bool, flags bus.Flags) bool {
	if !write || address > 0x0001 {
		return false
	}
	port := p.mem.Port() & (LORAM | HIRAM | CHAREN)
	changed := port^p.lastPort != 0
	p.lastPort = port
	return changed
}

// IsIO implements the tap.Machine interface.
func (p *Paging) IsIO(address uint16) bool {
	return p.IOMapped && address>>12 == 0xd
}

// the hardware vectors.
const (
	nmiVector = 0xfffa
	irqVector = 0xfffe
)

// InterruptVector implements the tap.Machine interface. The 6502 reads the
// handler address from a vector when it responds to an interrupt.
func (p *Paging) InterruptVector(address uint16, write bool, fetch bool, flags bus.Flags) (tap.Vector, bool) {
	if write || fetch {
		return tap.Vector{}, false
	}
	if flags&bus.FlagIRQ == bus.FlagIRQ && (address == irqVector || address == irqVector+1) {
		return tap.Vector{Address: irqVector, Indirect: true}, true
	}
	if flags&bus.FlagNMI == bus.FlagNMI && (address == nmiVector || address == nmiVector+1) {
		return tap.Vector{Address: nmiVector, Indirect: true}, true
	}
	return tap.Vector{}, false
}
