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
	"fmt"
	"time"

	"github.com/jetsetilly/eightbench/analysis"
	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/emulation"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/bus"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/hardware/television"
	"github.com/jetsetilly/eightbench/logger"
	"github.com/jetsetilly/eightbench/tap"
	"github.com/user-none/go-chip-z80"
)

// Error patterns.
const (
	InitialisationError = "zxspectrum: %v"
	LoadError           = "zxspectrum: load: %v"
)

// Spectrum is a ZX Spectrum with an analysis tap attached.
type Spectrum struct {
	Model  Model
	Timing Timing

	Mem    *Memory
	Banks  BankIDs
	Paging *Paging
	IO     *IOAnalysis
	Tap    *tap.Tap

	cpu *z80.CPU

	// T-states since the start of the frame
	tstates int

	// number of frames since reset
	frames int

	// whether the interrupt line is asserted
	intLine bool

	// the most recent step hit an access handler with the break flag set
	brk bool
}

// NewSpectrum is the preferred method of initialisation for the Spectrum type.
func NewSpectrum(model Model) (*Spectrum, error) {
	s := &Spectrum{
		Model:  model,
		Timing: model.Timing(),
		Mem:    newMemory(model),
	}

	reg := banks.NewRegistry()

	for i := range s.Banks.ROM {
		s.Banks.ROM[i] = banks.InvalidID
	}
	for i := range s.Banks.RAM {
		s.Banks.RAM[i] = banks.InvalidID
	}

	var err error
	for i, r := range s.Mem.ROM {
		s.Banks.ROM[i], err = reg.CreateBank(fmt.Sprintf("ROM %d", i), BankSize/banks.PageSize, r, true, false)
		if err != nil {
			return nil, curated.Errorf(InitialisationError, err)
		}
	}
	for i, r := range s.Mem.RAM {
		if r == nil {
			continue
		}

		// banks 5 and 2 are always mapped
		resident := i == 5 || i == 2
		s.Banks.RAM[i], err = reg.CreateBank(fmt.Sprintf("RAM %d", i), BankSize/banks.PageSize, r, false, resident)
		if err != nil {
			return nil, curated.Errorf(InitialisationError, err)
		}
	}

	mem := memorymap.NewMap(reg)
	s.Mem.mem = mem

	s.Paging = &Paging{
		model: model,
		ids:   s.Banks,
		mem:   s.Mem,
	}
	s.IO = NewIOAnalysis(reg, model)

	store := analysis.NewStore(reg, mem)
	seq := television.NewSequencer(0, s.Timing.Lines-1)
	s.Tap = tap.NewTap(reg, mem, store, seq, s.Paging, s.IO)
	s.Tap.SetRasterAccessor(s.raster)
	s.Mem.observer = s.Tap

	s.cpu = z80.New(s.Mem)
	s.Reset()

	logger.Logf(logger.Allow, "zxspectrum", "created %s model with %d banks", model, reg.NumBanks())

	return s, nil
}

// Reset the CPU and the paging state. Memory contents and analysis are not
// changed.
func (s *Spectrum) Reset() {
	s.cpu.Reset()
	s.Mem.reset()
	s.Paging.Remap(s.Tap.Map)
	s.Tap.Sequencer.Reset()
	s.tstates = 0
	s.frames = 0
	s.brk = false

	// the interrupt line is asserted at the start of every frame
	s.setInt(true)
}

// ResetAnalysis clears all analysis state. Banks, labels and the memory map
// are unchanged.
func (s *Spectrum) ResetAnalysis() {
	s.Tap.ResetAnalysis()
}

func (s *Spectrum) raster() int {
	return s.tstates / s.Timing.LineTicks
}

func (s *Spectrum) setInt(active bool) {
	s.intLine = active
	s.cpu.INT(active, 0xff)
	if active {
		s.Mem.lines |= bus.FlagIRQ
	} else {
		s.Mem.lines &^= bus.FlagIRQ
	}
}

// Step implements the emulation.Stepper interface.
func (s *Spectrum) Step() int {
	iff1 := s.cpu.Registers().IFF1

	s.Mem.beginStep()
	n := s.cpu.Step()

	// IFF1 is cleared by DI and by the acknowledgement of an interrupt
	if s.intLine && iff1 && !s.cpu.Registers().IFF1 && s.Mem.opcode != opDI {
		s.setInt(false)
		s.Mem.lines |= bus.FlagIntAck
	}

	s.brk = s.Mem.flags&bus.FlagBreak == bus.FlagBreak
	s.advance(n)

	return n
}

// Break implements the emulation.Breaker interface.
func (s *Spectrum) Break() bool {
	return s.brk
}

func (s *Spectrum) advance(ticks int) {
	s.tstates += ticks

	if s.intLine && s.tstates >= s.Timing.IntLength {
		s.setInt(false)
	}

	if s.tstates >= s.Timing.FrameTicks() {
		s.tstates -= s.Timing.FrameTicks()
		s.frames++
		s.setInt(true)
	}

	// the CPU makes no bus cycles while it is halted
	s.Tap.Sequencer.OnScanlinePositionChanged(s.raster())
}

// RunFrame runs the machine until the end of the current frame. Returns the
// number of T-states executed, which will be less than a frame if a break was
// requested.
func (s *Spectrum) RunFrame() int {
	return emulation.Budget(s, s.Timing.FrameTicks()-s.tstates)
}

// Run the machine for approximately the duration of machine time.
func (s *Spectrum) Run(d time.Duration) int {
	return emulation.Budget(s, emulation.TicksFor(d, s.Timing.ClockHz))
}

// Frames returns the number of frames since the last reset.
func (s *Spectrum) Frames() int {
	return s.frames
}

// TStates returns the number of T-states since the start of the frame.
func (s *Spectrum) TStates() int {
	return s.tstates
}

// PC returns the program counter of the CPU.
func (s *Spectrum) PC() uint16 {
	return s.cpu.Registers().PC
}

// Halted returns true if the CPU is waiting for an interrupt.
func (s *Spectrum) Halted() bool {
	return s.cpu.Halted()
}

// Load copies data into memory through the current memory map, starting at
// origin.
func (s *Spectrum) Load(origin uint16, data []uint8) error {
	if int(origin)+len(data) > 0x10000 {
		return curated.Errorf(LoadError, "data does not fit in memory")
	}
	for i, d := range data {
		s.Mem.Poke(origin+uint16(i), d)
	}
	return nil
}

// LoadROM replaces the contents of a ROM.
func (s *Spectrum) LoadROM(rom int, data []uint8) error {
	if rom < 0 || rom >= len(s.Mem.ROM) {
		return curated.Errorf(LoadError, fmt.Sprintf("no ROM %d in %s model", rom, s.Model))
	}
	if len(data) != BankSize {
		return curated.Errorf(LoadError, fmt.Sprintf("ROM must be %d bytes", BankSize))
	}
	copy(s.Mem.ROM[rom], data)
	return nil
}

// the boot program put into ROM 0 by InstallBootStub().
const (
	bootJP      = 0x0000
	bootMaskInt = 0x0038
)

// InstallBootStub replaces the start of ROM 0 with a jump to origin and an
// IM 1 interrupt handler that returns immediately. This is enough to run a
// program that does not use the ROM routines.
func (s *Spectrum) InstallBootStub(origin uint16) {
	rom := s.Mem.ROM[0]
	rom[bootJP] = 0xc3
	rom[bootJP+1] = uint8(origin)
	rom[bootJP+2] = uint8(origin >> 8)

	// EI; RET
	rom[bootMaskInt] = 0xfb
	rom[bootMaskInt+1] = 0xc9

	b := s.Tap.Registry.GetBank(s.Banks.ROM[0])
	b.SetLabel(bootJP, "BOOT")
	b.SetLabel(bootMaskInt, "MASK_INT")
}

// Summary returns the current memory map and paging state.
func (s *Spectrum) Summary() string {
	summary := s.Tap.Map.Summary()
	if s.Model == Model128K {
		summary += fmt.Sprintf("paging: %02x  rom: %d  ram: %d  screen: %d  locked: %v\n",
			s.Mem.paging, s.Paging.ROMSelected(), s.Paging.RAMSelected(),
			s.Paging.Screen(), s.Paging.Locked())
	}
	return summary
}
