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

package c64_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/eightbench/hardware/c64"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/tap"
	"github.com/jetsetilly/eightbench/test"
)

func newC64(t *testing.T) *c64.C64 {
	t.Helper()
	c, err := c64.NewC64()
	test.DemandSuccess(t, err)
	return c
}

func TestInterfaces(t *testing.T) {
	c := newC64(t)
	test.ExpectImplements[tap.Machine](t, c.Paging)
	test.ExpectImplements[bus.IOObserver](t, c.IO)
	test.ExpectImplements[bus.CPUBus](t, c.Mem)
	test.ExpectImplements[bus.DebugBus](t, c.Mem)
	test.ExpectImplements[bus.Observer](t, c.Tap)
}

func TestPowerOnMapping(t *testing.T) {
	c := newC64(t)
	mem := c.Tap.Map

	test.ExpectEquality(t, c.Mem.Port()&0x07, 0x07)
	test.ExpectEquality(t, mem.Resolve(0x0800).Bank, c.Banks.LoRAM)
	test.ExpectEquality(t, mem.Resolve(0xa000).Bank, c.Banks.BasicROM)
	test.ExpectEquality(t, mem.ResolveWrite(0xa000).Bank, c.Banks.RAMBehindBasicROM)
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, c.Banks.HiRAM)
	test.ExpectEquality(t, mem.Resolve(0xd020).Bank, c.Banks.IOArea)
	test.ExpectEquality(t, mem.Resolve(0xd020).Offset, 0x0020)
	test.ExpectEquality(t, mem.Resolve(0xe000).Bank, c.Banks.KernalROM)
	test.ExpectEquality(t, mem.ResolveWrite(0xe000).Bank, c.Banks.RAMBehindKernalROM)

	test.ExpectSuccess(t, c.Paging.BasicROMMapped)
	test.ExpectSuccess(t, c.Paging.KernalROMMapped)
	test.ExpectSuccess(t, c.Paging.IOMapped)
	test.ExpectFailure(t, c.Paging.CharROMMapped)
}

func TestBasicShadowWrite(t *testing.T) {
	c := newC64(t)
	c.Mem.BasicROM[0] = 0x94

	// instruction at $c000 writes beneath the BASIC ROM
	c.Mem.Fetch(0xc000)
	c.Mem.Write(0xa000, 0x55)

	test.ExpectEquality(t, c.Mem.Read(0xa000), 0x94)
	test.ExpectEquality(t, c.Mem.RAM[0xa000], 0x55)
	test.ExpectEquality(t, c.Mem.BasicROM[0], 0x94)

	writer, ok := c.Tap.Store.GetLastWriter(0xa000)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, writer, banks.AddressRef{Bank: c.Banks.HiRAM, Offset: 0x0000})

	// clear LORAM. the RAM beneath BASIC is now visible
	c.Mem.Write(0x0001, 0x36)
	test.ExpectEquality(t, c.Mem.Flags()&bus.FlagRemapped, bus.FlagRemapped)
	test.ExpectFailure(t, c.Paging.BasicROMMapped)
	test.ExpectSuccess(t, c.Paging.KernalROMMapped)
	test.ExpectEquality(t, c.Tap.Map.Resolve(0xa000).Bank, c.Banks.RAMBehindBasicROM)
	test.ExpectEquality(t, c.Mem.Read(0xa000), 0x55)

	// the last writer is attached to the RAM byte and survives the remap
	writer, ok = c.Tap.Store.GetLastWriter(0xa000)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, writer, banks.AddressRef{Bank: c.Banks.HiRAM, Offset: 0x0000})
}

func TestAllRAM(t *testing.T) {
	c := newC64(t)

	c.Mem.Write(0x0001, 0x34)
	test.ExpectEquality(t, c.Mem.Port()&0x07, 0x04)

	mem := c.Tap.Map
	test.ExpectEquality(t, mem.Resolve(0xa000).Bank, c.Banks.RAMBehindBasicROM)
	test.ExpectEquality(t, mem.Resolve(0xd000).Bank, c.Banks.RAMBehindCharROM)
	test.ExpectEquality(t, mem.Resolve(0xe000).Bank, c.Banks.RAMBehindKernalROM)
	test.ExpectEquality(t, mem.ResolveWrite(0xd000).Bank, c.Banks.RAMBehindCharROM)

	test.ExpectFailure(t, c.Paging.BasicROMMapped)
	test.ExpectFailure(t, c.Paging.KernalROMMapped)
	test.ExpectFailure(t, c.Paging.IOMapped)
	test.ExpectFailure(t, c.Paging.CharROMMapped)
	test.ExpectFailure(t, c.Paging.IsIO(0xd020))

	// writes to $d020 go to RAM and are not seen by the I/O analysis
	c.Mem.Write(0xd020, 0x01)
	test.ExpectEquality(t, c.Mem.RAM[0xd020], 0x01)
	test.ExpectEquality(t, c.IO.Stats(c64.VIC)[0x20].Writes, 0)
}

func TestCharacterROM(t *testing.T) {
	c := newC64(t)
	c.Mem.CharROM[0x0010] = 0x3c

	c.Mem.Write(0x0001, 0x33)
	test.ExpectSuccess(t, c.Paging.CharROMMapped)
	test.ExpectFailure(t, c.Paging.IOMapped)
	test.ExpectEquality(t, c.Mem.Read(0xd010), 0x3c)

	c.Mem.Write(0xd010, 0x99)
	test.ExpectEquality(t, c.Mem.Read(0xd010), 0x3c)
	test.ExpectEquality(t, c.Mem.RAM[0xd010], 0x99)
}

func TestDDR(t *testing.T) {
	c := newC64(t)

	// making LORAM an input lets it float high
	c.Mem.Write(0x0001, 0x36)
	test.ExpectFailure(t, c.Paging.BasicROMMapped)
	c.Mem.Write(0x0000, 0x2e)
	test.ExpectEquality(t, c.Mem.Flags()&bus.FlagRemapped, bus.FlagRemapped)
	test.ExpectSuccess(t, c.Paging.BasicROMMapped)
	test.ExpectEquality(t, c.Mem.Peek(0x0000), 0x2e)
}

func TestRemapIdempotence(t *testing.T) {
	c := newC64(t)
	c.Mem.Write(0x0001, 0x35)
	before := c.Tap.Map.Slots()

	c.Paging.Remap(c.Tap.Map)
	test.ExpectEquality(t, c.Tap.Map.Slots(), before)

	// writing the same value does not cause a remap
	c.Mem.Write(0x0001, 0x35)
	test.ExpectEquality(t, c.Mem.Flags()&bus.FlagRemapped, 0)
	test.ExpectEquality(t, c.Tap.Map.Slots(), before)

	// nor does a write to an unrelated bit of the port
	c.Mem.Write(0x0001, 0x25)
	test.ExpectEquality(t, c.Mem.Flags()&bus.FlagRemapped, 0)
}

func TestIOAnalysis(t *testing.T) {
	c := newC64(t)

	label, ok := c.Tap.Registry.GetBank(c.Banks.IOArea).Label(0x0020)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, label, "VIC_EXTCOL")
	label, ok = c.Tap.Registry.GetBank(c.Banks.IOArea).Label(0x0d0d)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, label, "CIA2_ICR")

	c.Mem.Fetch(0xc000)
	c.Mem.Write(0xd020, 0x06)

	// write-through to the I/O buffer
	test.ExpectEquality(t, c.Mem.Read(0xd020), 0x06)

	// mirrored VIC register
	c.Mem.Write(0xd060, 0x0e)

	s := c.IO.Stats(c64.VIC)[0x20]
	test.ExpectEquality(t, s.Writes, 2)
	test.ExpectEquality(t, s.Reads, 1)
	test.ExpectEquality(t, s.LastValue, 0x0e)
	test.ExpectEquality(t, s.LastWriter, banks.AddressRef{Bank: c.Banks.HiRAM, Offset: 0x0000})

	c.Mem.Read(0xdc0d)
	test.ExpectEquality(t, c.IO.Stats(c64.CIA1)[0x0d].Reads, 1)
	c.Mem.Write(0xd418, 0x0f)
	test.ExpectEquality(t, c.IO.Stats(c64.SID)[0x18].Writes, 1)
	c.Mem.Write(0xd800, 0x01)
	test.ExpectEquality(t, c.IO.Stats(c64.ColourRAM)[0].Writes, 1)

	summary := c.IO.Summary()
	test.ExpectSuccess(t, strings.Contains(summary, "EXTCOL"))
	test.ExpectSuccess(t, strings.Contains(summary, "SIGVOL"))

	c.ResetAnalysis()
	test.ExpectEquality(t, c.IO.Stats(c64.VIC)[0x20].Writes, 0)
	test.ExpectFailure(t, c.IO.Stats(c64.VIC)[0x20].LastWriter.IsValid())
	test.ExpectEquality(t, c.IO.Summary(), "")
}

func TestChipOf(t *testing.T) {
	chip, reg := c64.ChipOf(0xd3ff)
	test.ExpectEquality(t, chip, c64.VIC)
	test.ExpectEquality(t, reg, 0x3f)
	chip, reg = c64.ChipOf(0xd7e4)
	test.ExpectEquality(t, chip, c64.SID)
	test.ExpectEquality(t, reg, 0x04)
	chip, _ = c64.ChipOf(0xdbff)
	test.ExpectEquality(t, chip, c64.ColourRAM)
	chip, reg = c64.ChipOf(0xdcf1)
	test.ExpectEquality(t, chip, c64.CIA1)
	test.ExpectEquality(t, reg, 0x01)
	chip, _ = c64.ChipOf(0xdd00)
	test.ExpectEquality(t, chip, c64.CIA2)
	chip, _ = c64.ChipOf(0xdf00)
	test.ExpectEquality(t, chip, c64.Expansion)

	test.ExpectEquality(t, c64.RegisterName(c64.VIC, 0x21), "BGCOL0")
	test.ExpectEquality(t, c64.RegisterName(c64.VIC, 0x3f), "")
	test.ExpectEquality(t, c64.RegisterName(c64.ColourRAM, 0), "")
}

func TestInterruptHandler(t *testing.T) {
	c := newC64(t)
	c.Mem.KernalROM[0x1ffe] = 0x48
	c.Mem.KernalROM[0x1fff] = 0xff

	// no interrupt line. the read is an ordinary data read
	c.Mem.Read(0xfffe)
	test.ExpectEquality(t, len(c.Tap.Store.InterruptHandlers()), 0)

	c.Mem.SetLines(bus.FlagIRQ)
	c.Mem.Read(0xfffe)
	c.Mem.Read(0xffff)
	c.Mem.SetLines(0)

	handlers := c.Tap.Store.InterruptHandlers()
	test.DemandEquality(t, len(handlers), 1)
	test.ExpectEquality(t, handlers[0], banks.AddressRef{Bank: c.Banks.KernalROM, Offset: 0x1f48})
}

func TestFrames(t *testing.T) {
	c := newC64(t)

	c.SetRaster(c64.TopScanline)
	for i := 0; i < 5; i++ {
		c.Mem.Fetch(0xc000 + uint16(i))
	}
	c.SetRaster(c64.LastScanline)
	c.Mem.Fetch(0xc005)

	test.ExpectEquality(t, c.Tap.Sequencer.FrameNum(), 1)
	test.ExpectEquality(t, c.Tap.Store.LastFrame().Instructions, 5)
}

func TestVICBanks(t *testing.T) {
	c := newC64(t)

	test.ExpectEquality(t, c.VICBankBase(), 0x0000)
	test.ExpectEquality(t, c.VICAddress(0x1000), banks.AddressRef{Bank: c.Banks.CharacterROM, Offset: 0x0000})
	test.ExpectEquality(t, c.VICAddress(0x0400), banks.AddressRef{Bank: c.Banks.LoRAM, Offset: 0x0400})

	c.Mem.Write(0xdd00, 0x02)
	test.ExpectEquality(t, c.VICBankBase(), 0x4000)
	test.ExpectEquality(t, c.VICAddress(0x0400), banks.AddressRef{Bank: c.Banks.LoRAM, Offset: 0x4400})

	c.Mem.Write(0xdd00, 0x00)
	test.ExpectEquality(t, c.VICBankBase(), 0xc000)
	test.ExpectEquality(t, c.VICAddress(0x1000), banks.AddressRef{Bank: c.Banks.RAMBehindCharROM, Offset: 0x0000})
	test.ExpectEquality(t, c.VICAddress(0x3fff), banks.AddressRef{Bank: c.Banks.RAMBehindKernalROM, Offset: 0x1fff})

	test.ExpectSuccess(t, c.IsAddressedByVIC(banks.AddressRef{Bank: c.Banks.CharacterROM, Offset: 0x0800}))
	test.ExpectSuccess(t, c.IsAddressedByVIC(banks.AddressRef{Bank: c.Banks.RAMBehindBasicROM, Offset: 0x1fff}))
	test.ExpectFailure(t, c.IsAddressedByVIC(banks.AddressRef{Bank: c.Banks.KernalROM, Offset: 0x0000}))
	test.ExpectFailure(t, c.IsAddressedByVIC(banks.AddressRef{Bank: c.Banks.IOArea, Offset: 0x0020}))

	test.ExpectEquality(t, c.ColourRAMAddress(0x0400), banks.AddressRef{Bank: c.Banks.IOArea, Offset: 0x0800})
}

func TestLoad(t *testing.T) {
	c := newC64(t)
	test.ExpectSuccess(t, c.Load(0x0801, []uint8{0x0b, 0x08}))
	test.ExpectEquality(t, c.Mem.Peek(0x0802), 0x08)
	test.ExpectFailure(t, c.Load(0xffff, []uint8{0x01, 0x02}))
}

func TestSummary(t *testing.T) {
	c := newC64(t)
	s := c.Summary()
	test.ExpectSuccess(t, strings.Contains(s, "a000 -> bfff\tr- BASIC ROM / -w RAM behind BASIC ROM"))
	test.ExpectSuccess(t, strings.Contains(s, "d000 -> dfff\trw IO"))
	test.ExpectSuccess(t, strings.Contains(s, "vic bank: 0000"))
}
