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
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/tap"
)

// BankIDs are the identifiers of the Spectrum banks. RAM banks that are not
// present in the model are banks.InvalidID.
type BankIDs struct {
	ROM [2]banks.ID
	RAM [8]banks.ID
}

// Paging implements the tap.Machine interface for the Spectrum.
type Paging struct {
	model Model
	ids   BankIDs
	mem   *Memory

	// value of the paging port at the most recent remap
	last uint8
}

// Remap implements the tap.Machine interface.
func (p *Paging) Remap(mem *memorymap.Map) {
	p.last = p.mem.paging

	mem.MapBank(p.ids.ROM[p.ROMSelected()], 0, memorymap.AccessRead)
	mem.MapBank(p.ids.RAM[5], 16, memorymap.AccessReadWrite)
	mem.MapBank(p.ids.RAM[2], 32, memorymap.AccessReadWrite)
	mem.MapBank(p.ids.RAM[p.RAMSelected()], 48, memorymap.AccessReadWrite)
}

// Paging implements the tap.Machine interface.
func (p *Paging) Paging(address uint16, data uint8, write bool, flags bus.Flags) bool {
	if p.model != Model128K || !write || flags&bus.FlagIORQ != bus.FlagIORQ {
		return false
	}
	return IsPagingPort(address) && p.mem.paging != p.last
}

// IsIO implements the tap.Machine interface. The Spectrum has no memory
// mapped I/O.
func (p *Paging) IsIO(address uint16) bool {
	return false
}

// InterruptVector implements the tap.Machine interface. The first fetch after
// an interrupt has been acknowledged is the first instruction of the handler.
func (p *Paging) InterruptVector(address uint16, write bool, fetch bool, flags bus.Flags) (tap.Vector, bool) {
	if fetch && flags&bus.FlagIntAck == bus.FlagIntAck {
		return tap.Vector{Address: address}, true
	}
	return tap.Vector{}, false
}

// ROMSelected returns the ROM mapped at $0000.
func (p *Paging) ROMSelected() int {
	if p.model != Model128K {
		return 0
	}
	return int(p.mem.paging&PagingROM) >> 4
}

// RAMSelected returns the RAM bank mapped at $c000.
func (p *Paging) RAMSelected() int {
	if p.model != Model128K {
		return 0
	}
	return int(p.mem.paging & PagingRAM)
}

// Screen returns the RAM bank the ULA is displaying.
func (p *Paging) Screen() int {
	if p.mem.paging&PagingScreen == PagingScreen {
		return 7
	}
	return 5
}

// Locked returns true if paging has been locked until the next reset.
func (p *Paging) Locked() bool {
	return p.mem.locked
}
