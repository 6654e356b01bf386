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
	"github.com/jetsetilly/eightbench/analysis"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/hardware/television"
)

// Tap is the analysis context for a single machine. It owns nothing that the
// machine itself needs in order to run.
type Tap struct {
	Registry  *banks.Registry
	Map       *memorymap.Map
	Store     *analysis.Store
	Sequencer *television.Sequencer

	machine Machine
	io      bus.IOObserver

	// optional accessors supplied by the CPU core and the video timing
	pc     func() uint16
	raster func() int

	// the most recent opcode fetch and the byte it resolved to at the time
	prevPC     uint16
	prevRef    banks.AddressRef
	havePrevPC bool
}

// NewTap is the preferred method of initialisation for the Tap type. The io
// argument can be nil. The Store is added as a frame trigger to the Sequencer.
//
// The current paging state of the machine is applied to the memory map.
func NewTap(reg *banks.Registry, mem *memorymap.Map, store *analysis.Store, seq *television.Sequencer, machine Machine, io bus.IOObserver) *Tap {
	t := &Tap{
		Registry:  reg,
		Map:       mem,
		Store:     store,
		Sequencer: seq,
		machine:   machine,
		io:        io,
		prevRef:   banks.InvalidRef,
	}
	seq.AddFrameTrigger(store)
	machine.Remap(mem)
	return t
}

// SetPCAccessor sets the function used to find the current program counter.
// Without an accessor the address of the most recent opcode fetch is used.
func (t *Tap) SetPCAccessor(pc func() uint16) {
	t.pc = pc
}

// SetRasterAccessor sets the function used to find the current raster
// position. Without an accessor frames are never started or ended.
func (t *Tap) SetRasterAccessor(raster func() int) {
	t.raster = raster
}

// currentPC returns the reference of the instruction responsible for the
// current bus cycle.
func (t *Tap) currentPC() banks.AddressRef {
	if t.pc != nil {
		return t.Map.Resolve(t.pc())
	}
	return t.prevRef
}

// OnBusEvent implements the bus.Observer interface.
func (t *Tap) OnBusEvent(address uint16, data uint8, write bool, fetch bool, flags bus.Flags) bus.Flags {
	brk := false

	if flags&bus.FlagIORQ == bus.FlagIORQ {
		// port cycles are outside of the memory address space
		if t.io != nil {
			if write {
				t.io.OnIOWrite(address, data, t.currentPC())
			} else {
				t.io.OnIORead(address, data, t.currentPC())
			}
		}
	} else {
		if !fetch {
			pc := t.currentPC()
			if write {
				brk = t.Store.RegisterWrite(address, t.Map.ResolveWrite(address), pc)
			} else {
				brk = t.Store.RegisterRead(address, t.Map.Resolve(address), pc)
			}

			if t.io != nil && t.machine.IsIO(address) {
				if write {
					t.io.OnIOWrite(address, data, pc)
				} else {
					t.io.OnIORead(address, data, pc)
				}
			}
		} else {
			// the fetch completes the previous instruction
			if t.havePrevPC {
				if t.Store.RegisterExecute(t.prevPC, t.prevRef) {
					brk = true
				}
			}
			t.prevPC = address
			t.prevRef = t.Map.Resolve(address)
			t.havePrevPC = true
		}

		if v, ok := t.machine.InterruptVector(address, write, fetch, flags); ok {
			target := v.Address
			if v.Indirect {
				target = t.Map.ReadWord(v.Address)
			}
			t.Store.RegisterInterruptHandler(t.Map.Resolve(target))
		}
	}

	if t.raster != nil {
		t.Sequencer.OnScanlinePositionChanged(t.raster())
	}

	if t.machine.Paging(address, data, write, flags) {
		t.machine.Remap(t.Map)
		flags |= bus.FlagRemapped
	}

	if brk {
		flags |= bus.FlagBreak
	}

	return flags
}

// PrevPC returns the address of the most recent opcode fetch. The second
// return value is false if there has been no fetch since the last reset.
func (t *Tap) PrevPC() (uint16, bool) {
	return t.prevPC, t.havePrevPC
}

// ResetAnalysis clears all analysis state, including the I/O observer. The
// memory map and bank definitions are not changed.
func (t *Tap) ResetAnalysis() {
	t.Store.ResetAnalysis()
	if t.io != nil {
		t.io.ResetIO()
	}
	t.havePrevPC = false
	t.prevRef = banks.InvalidRef
}
