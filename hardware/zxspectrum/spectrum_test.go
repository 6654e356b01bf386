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

package zxspectrum_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/jetsetilly/eightbench/analysis"
	"github.com/jetsetilly/eightbench/emulation"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/zxspectrum"
	"github.com/jetsetilly/eightbench/tap"
	"github.com/jetsetilly/eightbench/test"
)

// create a Spectrum with a program at $8000 and a boot stub that jumps to it.
func newSpectrum(t *testing.T, model zxspectrum.Model, program ...uint8) *zxspectrum.Spectrum {
	t.Helper()
	s, err := zxspectrum.NewSpectrum(model)
	test.DemandSuccess(t, err)
	s.InstallBootStub(0x8000)
	test.DemandSuccess(t, s.Load(0x8000, program))
	return s
}

func steps(s *zxspectrum.Spectrum, n int) {
	for range n {
		s.Step()
	}
}

func TestParseModel(t *testing.T) {
	m, err := zxspectrum.ParseModel("128k")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, zxspectrum.Model128K)
	m, err = zxspectrum.ParseModel(" 48 ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, zxspectrum.Model48K)
	_, err = zxspectrum.ParseModel("+3")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, zxspectrum.Model48K.Timing().FrameTicks(), 69888)
	test.ExpectEquality(t, zxspectrum.Model128K.Timing().FrameTicks(), 70908)
}

func TestInterfaces(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K)
	test.ExpectImplements[tap.Machine](t, s.Paging)
	test.ExpectImplements[bus.IOObserver](t, s.IO)
	test.ExpectImplements[bus.CPUBus](t, s.Mem)
	test.ExpectImplements[bus.DebugBus](t, s.Mem)
	test.ExpectImplements[emulation.Stepper](t, s)
	test.ExpectImplements[emulation.Breaker](t, s)
}

func TestPortDecoding(t *testing.T) {
	test.ExpectSuccess(t, zxspectrum.IsULAPort(0x00fe))
	test.ExpectFailure(t, zxspectrum.IsULAPort(0x7ffd))
	test.ExpectSuccess(t, zxspectrum.IsPagingPort(0x7ffd))
	test.ExpectFailure(t, zxspectrum.IsPagingPort(0x00fe))
	test.ExpectFailure(t, zxspectrum.IsPagingPort(0xfffd))
	test.ExpectSuccess(t, zxspectrum.IsAYSelectPort(0xfffd))
	test.ExpectSuccess(t, zxspectrum.IsAYDataPort(0xbffd))

	d := zxspectrum.DecodePort(zxspectrum.Model48K, 0x7ffd)
	test.ExpectSuccess(t, d.Has(zxspectrum.Unknown))
	test.ExpectFailure(t, d.Has(zxspectrum.PagingPort))
	d = zxspectrum.DecodePort(zxspectrum.Model128K, 0x7ffd)
	test.ExpectSuccess(t, d.Has(zxspectrum.PagingPort))
	test.ExpectFailure(t, d.Has(zxspectrum.Unknown))
}

func Test48KMapping(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K)
	mem := s.Tap.Map

	test.ExpectEquality(t, mem.Resolve(0x0000).Bank, s.Banks.ROM[0])
	test.ExpectEquality(t, mem.ResolveWrite(0x0000), banks.InvalidRef)
	test.ExpectEquality(t, mem.Resolve(0x4000).Bank, s.Banks.RAM[5])
	test.ExpectEquality(t, mem.Resolve(0x8000).Bank, s.Banks.RAM[2])
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, s.Banks.RAM[0])
	test.ExpectEquality(t, mem.Resolve(0xffff).Offset, 0x3fff)
	test.ExpectEquality(t, s.Banks.RAM[7], banks.InvalidID)
	test.ExpectEquality(t, s.Tap.Registry.NumBanks(), 4)

	// writes to ROM have no effect
	s.Mem.Write(0x0000, 0x00)
	test.ExpectEquality(t, s.Mem.Peek(0x0000), 0xc3)

	// the 48K machine ignores the paging port
	before := mem.Slots()
	s.Mem.Out(0x7ffd, 0x17)
	test.ExpectEquality(t, mem.Slots(), before)
	test.ExpectEquality(t, s.Mem.Flags()&bus.FlagRemapped, 0)
}

func TestProgram(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K,
		0x3e, 0x05, // LD A,5
		0xd3, 0xfe, // OUT (FE),A
		0x32, 0x00, 0x90, // LD (9000),A
		0x76, // HALT
	)

	// the jump in the boot stub and three instructions
	steps(s, 4)
	test.ExpectEquality(t, s.PC(), 0x8007)
	test.ExpectEquality(t, s.Mem.Border(), 0x05)
	test.ExpectEquality(t, s.Mem.RAM[2][0x1000], 0x05)

	writer, ok := s.Tap.Store.GetLastWriter(0x9000)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, writer, banks.AddressRef{Bank: s.Banks.RAM[2], Offset: 0x0004})

	// execution is counted when the next instruction is fetched
	exec, _, _ := s.Tap.Store.GetAccessCounts(0x8004)
	test.ExpectEquality(t, exec, 0)
	steps(s, 1)
	exec, _, _ = s.Tap.Store.GetAccessCounts(0x8004)
	test.ExpectEquality(t, exec, 1)
	exec, _, _ = s.Tap.Store.GetAccessCounts(0x0000)
	test.ExpectEquality(t, exec, 1)

	ula := s.IO.Stats(zxspectrum.ULA)
	test.ExpectEquality(t, ula.Writes, 1)
	test.ExpectEquality(t, ula.LastValue, 0x05)
	test.ExpectEquality(t, ula.LastWriter, banks.AddressRef{Bank: s.Banks.RAM[2], Offset: 0x0002})
	test.ExpectSuccess(t, strings.Contains(s.IO.Summary(), "ULA"))

	test.ExpectEquality(t, s.Tap.Store.Classify(0x8000), analysis.UseCode)
	test.ExpectEquality(t, s.Tap.Store.Classify(0x9000), analysis.UseData)
}

func TestSelfModifying(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K,
		0x3e, 0x00, // LD A,0
		0x32, 0x07, 0x80, // LD (8007),A
		0x18, 0x00, // JR 8007
		0x00,       // NOP
		0x18, 0xf6, // JR 8000
	)

	steps(s, 10)
	test.ExpectSuccess(t, s.Tap.Store.IsSelfModifying(0x8007))
	test.ExpectFailure(t, s.Tap.Store.IsSelfModifying(0x8005))
	test.ExpectSuccess(t, slices.Contains(s.Tap.Store.SelfModifying(), 0x8007))
	test.ExpectSuccess(t, s.Tap.Store.IsSelfModifyingRef(banks.AddressRef{Bank: s.Banks.RAM[2], Offset: 0x0007}))

	blocks := s.Tap.Store.ComputeMemoryBlocks()
	var found bool
	for _, b := range blocks {
		if b.Start <= 0x8007 && b.End >= 0x8007 {
			found = true
			test.ExpectEquality(t, b.Use, analysis.UseCode)
			test.ExpectSuccess(t, b.SelfModifying)
		}
	}
	test.ExpectSuccess(t, found)

	s.ResetAnalysis()
	test.ExpectFailure(t, s.Tap.Store.IsSelfModifying(0x8007))
	test.ExpectFailure(t, s.Tap.Store.IsSelfModifyingRef(banks.AddressRef{Bank: s.Banks.RAM[2], Offset: 0x0007}))
	test.ExpectEquality(t, len(s.Tap.Store.SelfModifying()), 0)
}

func Test128KPaging(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model128K,
		0x01, 0xfd, 0x7f, // LD BC,7FFD
		0x3e, 0x13, // LD A,13
		0xed, 0x79, // OUT (C),A
		0x3e, 0x24, // LD A,24
		0xed, 0x79, // OUT (C),A
		0x3e, 0x01, // LD A,1
		0xed, 0x79, // OUT (C),A
		0x76, // HALT
	)
	mem := s.Tap.Map

	test.ExpectEquality(t, mem.Resolve(0x0000).Bank, s.Banks.ROM[0])
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, s.Banks.RAM[0])

	// ROM 1 and RAM 3
	steps(s, 4)
	test.ExpectEquality(t, s.Mem.Flags()&bus.FlagRemapped, bus.FlagRemapped)
	test.ExpectEquality(t, mem.Resolve(0x0000).Bank, s.Banks.ROM[1])
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, s.Banks.RAM[3])
	test.ExpectEquality(t, mem.Resolve(0x4000).Bank, s.Banks.RAM[5])
	test.ExpectEquality(t, mem.Resolve(0x8000).Bank, s.Banks.RAM[2])
	test.ExpectFailure(t, s.Paging.Locked())

	// remapping again changes nothing
	before := mem.Slots()
	s.Paging.Remap(mem)
	test.ExpectEquality(t, mem.Slots(), before)

	// RAM 4 and lock
	steps(s, 2)
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, s.Banks.RAM[4])
	test.ExpectEquality(t, mem.Resolve(0x0000).Bank, s.Banks.ROM[0])
	test.ExpectSuccess(t, s.Paging.Locked())

	// ignored
	steps(s, 2)
	test.ExpectEquality(t, s.Mem.Flags()&bus.FlagRemapped, 0)
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, s.Banks.RAM[4])
	test.ExpectEquality(t, s.IO.Stats(zxspectrum.PagingPort).Writes, 3)
	test.ExpectSuccess(t, strings.Contains(s.Summary(), "locked: true"))

	// reset unlocks paging
	s.Reset()
	test.ExpectFailure(t, s.Paging.Locked())
	test.ExpectEquality(t, mem.Resolve(0xc000).Bank, s.Banks.RAM[0])
}

func TestAY(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model128K)

	s.Mem.Out(0xfffd, 0x07)
	s.Mem.Out(0xbffd, 0x38)
	test.ExpectEquality(t, s.Mem.In(0xfffd), 0x38)
	test.ExpectEquality(t, s.IO.AYWrites[7], 1)
	test.ExpectEquality(t, s.IO.Stats(zxspectrum.AYSelect).Reads, 1)
}

func TestBorderAndBeeper(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K)

	s.Mem.Out(0x00fe, 0x01)
	s.Mem.Out(0x00fe, 0x11)
	s.Mem.Out(0x00fe, 0x12)
	s.Mem.Out(0x00fe, 0x02)
	test.ExpectEquality(t, s.IO.BorderChanges, 1)
	test.ExpectEquality(t, s.IO.BeeperToggles, 2)
	test.ExpectEquality(t, s.Mem.Border(), 0x02)

	s.ResetAnalysis()
	test.ExpectEquality(t, s.IO.BorderChanges, 0)
	test.ExpectEquality(t, s.IO.Stats(zxspectrum.ULA).Writes, 0)
}

func TestInterruptHandler(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K,
		0xed, 0x56, // IM 1
		0xfb,       // EI
		0x76,       // HALT
		0x18, 0xfd, // JR 8003
	)

	s.RunFrame()
	s.RunFrame()
	test.ExpectSuccess(t, s.Frames() >= 2)

	handlers := s.Tap.Store.InterruptHandlers()
	test.DemandEquality(t, len(handlers), 1)
	test.ExpectEquality(t, handlers[0], banks.AddressRef{Bank: s.Banks.ROM[0], Offset: 0x0038})
	test.ExpectEquality(t, s.Tap.Registry.Describe(handlers[0]), "ROM 0:MASK_INT")
}

func TestFrames(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K,
		0x00,             // NOP
		0xc3, 0x00, 0x80, // JP 8000
	)

	ticks := s.RunFrame()
	test.ExpectSuccess(t, ticks >= s.Timing.FrameTicks())
	test.ExpectEquality(t, s.Frames(), 1)
	test.ExpectEquality(t, s.Tap.Sequencer.FrameNum(), 2)
	test.ExpectSuccess(t, s.Tap.Store.LastFrame().Instructions > 0)

	// both instructions of the loop are executed early in the new frame
	steps(s, 3)
	test.ExpectSuccess(t, s.Tap.Store.ExecutedThisFrame(0x8000))
	test.ExpectSuccess(t, s.Tap.Store.ExecutedThisFrame(0x8001))

	// a budget of zero still executes one instruction
	test.ExpectSuccess(t, s.Run(0) > 0)
}

func TestBreak(t *testing.T) {
	s := newSpectrum(t, zxspectrum.Model48K,
		0x3e, 0x07, // LD A,7
		0x32, 0x00, 0x40, // LD (4000),A
		0x18, 0xf9, // JR 8000
	)

	h, err := s.Tap.Store.AddAccessHandler("screen", analysis.AccessWrite, 0x4000, 0x57ff, true)
	test.DemandSuccess(t, err)

	ticks := s.RunFrame()
	test.ExpectSuccess(t, s.Break())
	test.ExpectSuccess(t, ticks < s.Timing.FrameTicks())
	test.ExpectEquality(t, h.Hits, 1)
	test.ExpectEquality(t, s.Mem.RAM[5][0], 0x07)
}

func TestLoad(t *testing.T) {
	s, err := zxspectrum.NewSpectrum(zxspectrum.Model48K)
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, s.Load(0xfff0, make([]uint8, 0x20)))
	test.ExpectFailure(t, s.LoadROM(1, make([]uint8, zxspectrum.BankSize)))
	test.ExpectFailure(t, s.LoadROM(0, make([]uint8, 10)))

	rom := make([]uint8, zxspectrum.BankSize)
	rom[0] = 0xf3
	test.ExpectSuccess(t, s.LoadROM(0, rom))
	test.ExpectEquality(t, s.Mem.Peek(0x0000), 0xf3)
}
