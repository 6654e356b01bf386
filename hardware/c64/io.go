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

	"github.com/jetsetilly/eightbench/hardware/memory/banks"
)

// Chip identifies the device occupying part of the I/O area.
type Chip int

// List of valid Chip values.
const (
	VIC Chip = iota
	SID
	ColourRAM
	CIA1
	CIA2
	Expansion
	numChips
)

func (c Chip) String() string {
	switch c {
	case VIC:
		return "VIC"
	case SID:
		return "SID"
	case ColourRAM:
		return "Colour RAM"
	case CIA1:
		return "CIA1"
	case CIA2:
		return "CIA2"
	case Expansion:
		return "Expansion"
	}
	return "unknown chip"
}

// ChipOf returns the chip responsible for an address in the I/O area and the
// register number within that chip. Mirrored registers are folded onto the
// canonical register. Colour RAM and the expansion area are not divided
// into registers and always return register zero.
func ChipOf(address uint16) (Chip, int) {
	offset := int(address & 0x0fff)
	switch {
	case offset < sidOrigin:
		return VIC, offset & 0x3f
	case offset < colourRAMOrigin:
		return SID, offset & 0x1f
	case offset < cia1Origin:
		return ColourRAM, 0
	case offset < cia2Origin:
		return CIA1, offset & 0x0f
	case offset < expansionOrigin:
		return CIA2, offset & 0x0f
	}
	return Expansion, 0
}

// RegisterName returns the canonical name of a chip register. The empty
// string is returned for unused registers.
func RegisterName(chip Chip, register int) string {
	var names []string
	switch chip {
	case VIC:
		names = VICRegisters
	case SID:
		names = SIDRegisters
	case CIA1, CIA2:
		names = CIARegisters
	default:
		return ""
	}
	if register < 0 || register >= len(names) {
		return ""
	}
	return names[register]
}

// RegisterStats is the access history of a single register.
type RegisterStats struct {
	Reads  int
	Writes int

	// value of the most recent write and the instruction that wrote it.
	// LastWriter is invalid if Writes is zero
	LastValue  uint8
	LastWriter banks.AddressRef
}

func (r *RegisterStats) reset() {
	*r = RegisterStats{LastWriter: banks.InvalidRef}
}

// IOAnalysis records the accesses made by the CPU to the chips in the I/O
// area. It implements the bus.IOObserver interface.
type IOAnalysis struct {
	reg *banks.Registry

	vic       [0x40]RegisterStats
	sid       [0x20]RegisterStats
	colour    [1]RegisterStats
	cia1      [0x10]RegisterStats
	cia2      [0x10]RegisterStats
	expansion [1]RegisterStats
}

// NewIOAnalysis is the preferred method of initialisation for the IOAnalysis
// type. The registry is used to describe the instructions that access the
// chips.
func NewIOAnalysis(reg *banks.Registry) *IOAnalysis {
	io := &IOAnalysis{reg: reg}
	io.ResetIO()
	return io
}

// Stats returns the register statistics for a chip. The returned slice
// refers to the live statistics and should not be retained.
func (io *IOAnalysis) Stats(chip Chip) []RegisterStats {
	switch chip {
	case VIC:
		return io.vic[:]
	case SID:
		return io.sid[:]
	case ColourRAM:
		return io.colour[:]
	case CIA1:
		return io.cia1[:]
	case CIA2:
		return io.cia2[:]
	case Expansion:
		return io.expansion[:]
	}
	return nil
}

func (io *IOAnalysis) stats(address uint16) *RegisterStats {
	chip, register := ChipOf(address)
	return &io.Stats(chip)[register]
}

// OnIORead implements the bus.IOObserver interface.
func (io *IOAnalysis) OnIORead(address uint16, data uint8, pc banks.AddressRef) {
	io.stats(address).Reads++
}

// OnIOWrite implements the bus.IOObserver interface.
func (io *IOAnalysis) OnIOWrite(address uint16, data uint8, pc banks.AddressRef) {
	s := io.stats(address)
	s.Writes++
	s.LastValue = data
	s.LastWriter = pc
}

// ResetIO implements the bus.IOObserver interface.
func (io *IOAnalysis) ResetIO() {
	for c := Chip(0); c < numChips; c++ {
		s := io.Stats(c)
		for i := range s {
			s[i].reset()
		}
	}
}

// Summary returns a multi-line description of every register that has been
// accessed. Registers are grouped by chip.
func (io *IOAnalysis) Summary() string {
	b := strings.Builder{}
	for c := Chip(0); c < numChips; c++ {
		for i, s := range io.Stats(c) {
			if s.Reads == 0 && s.Writes == 0 {
				continue
			}

			name := RegisterName(c, i)
			if name == "" {
				name = fmt.Sprintf("$%02x", i)
			}
			b.WriteString(fmt.Sprintf("%-10s %-8s r:%-6d w:%-6d", c, name, s.Reads, s.Writes))
			if s.LastWriter.IsValid() {
				b.WriteString(fmt.Sprintf(" last=$%02x by %s", s.LastValue, io.reg.Describe(s.LastWriter)))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
