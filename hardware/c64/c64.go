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
	"fmt"
	"strings"

	"github.com/jetsetilly/eightbench/analysis"
	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/hardware/television"
	"github.com/jetsetilly/eightbench/logger"
	"github.com/jetsetilly/eightbench/tap"
)

// PAL timing.
const (
	Scanlines    = 312
	TopScanline  = 0
	LastScanline = Scanlines - 1
)

// Error patterns.
const (
	InitialisationError = "c64: %v"
	LoadError           = "c64: load: %v"
)

// vicRegion is the bank seen by the VIC in a 4K region of the address space.
// The base field is the address in the CPU address space that corresponds to
// the first byte of the bank.
type vicRegion struct {
	id   banks.ID
	base uint16
}

// C64 is a Commodore 64 memory system with an analysis tap attached.
type C64 struct {
	Mem    *Memory
	Banks  BankIDs
	Paging *Paging
	IO     *IOAnalysis
	Tap    *tap.Tap

	// the current raster line. it is fed to the frame sequencer on every bus
	// cycle
	raster int

	vicMapping [16]vicRegion
}

// NewC64 is the preferred method of initialisation for the C64 type.
func NewC64() (*C64, error) {
	c := &C64{
		Mem: newMemory(),
	}

	reg := banks.NewRegistry()

	type bankDef struct {
		id       *banks.ID
		name     string
		storage  []uint8
		readOnly bool
		resident bool
	}

	defs := []bankDef{
		{&c.Banks.LoRAM, "RAM", c.Mem.RAM[0x0000:0xa000], false, true},
		{&c.Banks.HiRAM, "HiRAM", c.Mem.RAM[0xc000:0xd000], false, true},
		{&c.Banks.IOArea, "IO", c.Mem.IO, false, false},
		{&c.Banks.BasicROM, "BASIC ROM", c.Mem.BasicROM, true, false},
		{&c.Banks.RAMBehindBasicROM, "RAM behind BASIC ROM", c.Mem.RAM[0xa000:0xc000], false, false},
		{&c.Banks.KernalROM, "Kernal ROM", c.Mem.KernalROM, true, false},
		{&c.Banks.RAMBehindKernalROM, "RAM behind Kernal ROM", c.Mem.RAM[0xe000:], false, false},
		{&c.Banks.CharacterROM, "Char ROM", c.Mem.CharROM, true, false},
		{&c.Banks.RAMBehindCharROM, "RAM behind Char ROM", c.Mem.RAM[0xd000:0xe000], false, false},
	}

	for _, d := range defs {
		id, err := reg.CreateBank(d.name, len(d.storage)/banks.PageSize, d.storage, d.readOnly, d.resident)
		if err != nil {
			return nil, curated.Errorf(InitialisationError, err)
		}
		*d.id = id
	}

	addIOLabels(reg.GetBank(c.Banks.IOArea))

	mem := memorymap.NewMap(reg)
	c.Mem.mem = mem

	c.Paging = newPaging(c.Banks, c.Mem)
	c.IO = NewIOAnalysis(reg)

	store := analysis.NewStore(reg, mem)
	seq := television.NewSequencer(TopScanline, LastScanline)
	c.Tap = tap.NewTap(reg, mem, store, seq, c.Paging, c.IO)
	c.Tap.SetRasterAccessor(func() int {
		return c.raster
	})
	c.Mem.observer = c.Tap

	c.initVICMapping()
	c.Reset()

	logger.Logf(logger.Allow, "c64", "created with %d banks", reg.NumBanks())

	return c, nil
}

func (c *C64) initVICMapping() {
	for i := range c.vicMapping {
		c.vicMapping[i] = vicRegion{id: c.Banks.LoRAM, base: 0x0000}
	}

	// the VIC sees the character ROM in place of RAM in the second 4K of
	// VIC banks 0 and 2
	c.vicMapping[0x1] = vicRegion{id: c.Banks.CharacterROM, base: 0x1000}
	c.vicMapping[0x9] = vicRegion{id: c.Banks.CharacterROM, base: 0x9000}

	c.vicMapping[0xa] = vicRegion{id: c.Banks.RAMBehindBasicROM, base: 0xa000}
	c.vicMapping[0xb] = vicRegion{id: c.Banks.RAMBehindBasicROM, base: 0xa000}
	c.vicMapping[0xc] = vicRegion{id: c.Banks.HiRAM, base: 0xc000}
	c.vicMapping[0xd] = vicRegion{id: c.Banks.RAMBehindCharROM, base: 0xd000}
	c.vicMapping[0xe] = vicRegion{id: c.Banks.RAMBehindKernalROM, base: 0xe000}
	c.vicMapping[0xf] = vicRegion{id: c.Banks.RAMBehindKernalROM, base: 0xe000}
}

// Reset the CPU port and reapply the memory map. The contents of memory and
// the analysis are not changed.
func (c *C64) Reset() {
	c.Mem.Reset()

	// the CIA2 port A lines controlling the VIC bank are pulled high
	c.Mem.IO[cia2Origin] = 0x03

	c.Paging.lastPort = c.Mem.Port() & (LORAM | HIRAM | CHAREN)
	c.Paging.Remap(c.Tap.Map)
}

// ResetAnalysis clears all analysis state. Banks, labels and the memory map
// are unchanged.
func (c *C64) ResetAnalysis() {
	c.Tap.ResetAnalysis()
}

// SetRaster sets the current raster line. The line is passed to the frame
// sequencer on the next bus cycle.
func (c *C64) SetRaster(line int) {
	c.raster = line
}

// Raster returns the current raster line.
func (c *C64) Raster() int {
	return c.raster
}

// Load copies data into RAM starting at origin. The data is written beneath
// any ROM that is currently mapped and is not seen by the analysis.
func (c *C64) Load(origin uint16, data []uint8) error {
	if int(origin)+len(data) > len(c.Mem.RAM) {
		return curated.Errorf(LoadError, "data does not fit in RAM")
	}
	copy(c.Mem.RAM[origin:], data)
	return nil
}

// VICBankBase returns the address of the 16K region of memory currently seen
// by the VIC. The region is selected by the inverted low bits of CIA2 port A.
func (c *C64) VICBankBase() uint16 {
	return uint16(3-(c.Mem.IO[cia2Origin]&0x03)) * 0x4000
}

// VICAddress returns the AddressRef of a 14 bit VIC address in the current
// VIC bank.
func (c *C64) VICAddress(address uint16) banks.AddressRef {
	physical := c.VICBankBase() + address&0x3fff
	r := c.vicMapping[physical>>12]
	return banks.AddressRef{Bank: r.id, Offset: physical - r.base}
}

// IsAddressedByVIC returns true if the VIC is able to read the byte in any of
// its four banks.
func (c *C64) IsAddressedByVIC(ref banks.AddressRef) bool {
	for i, r := range c.vicMapping {
		if r.id != ref.Bank {
			continue
		}
		start := uint16(i<<12) - r.base
		if ref.Offset >= start && ref.Offset < start+0x1000 {
			return true
		}
	}
	return false
}

// ColourRAMAddress returns the AddressRef of a colour RAM byte.
func (c *C64) ColourRAMAddress(address uint16) banks.AddressRef {
	return banks.AddressRef{Bank: c.Banks.IOArea, Offset: colourRAMOrigin + address&0x03ff}
}

// Summary returns the current memory map and the state of the switchable
// regions.
func (c *C64) Summary() string {
	s := strings.Builder{}
	s.WriteString(c.Tap.Map.Summary())
	s.WriteString(fmt.Sprintf("port: %03b  basic: %v  kernal: %v  char: %v  io: %v\n",
		c.Mem.Port()&(LORAM|HIRAM|CHAREN),
		c.Paging.BasicROMMapped, c.Paging.KernalROMMapped,
		c.Paging.CharROMMapped, c.Paging.IOMapped))
	s.WriteString(fmt.Sprintf("vic bank: %04x\n", c.VICBankBase()))
	return s.String()
}
