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
	"strings"

	"github.com/jetsetilly/eightbench/hardware/memory/banks"
)

// Device is one of the devices attached to the Z80's port space.
type Device int

// List of valid Device values.
const (
	ULA Device = iota
	AYSelect
	AYData
	PagingPort
	Unknown
	numDevices
)

func (d Device) String() string {
	switch d {
	case ULA:
		return "ULA"
	case AYSelect:
		return "AY select"
	case AYData:
		return "AY data"
	case PagingPort:
		return "paging"
	case Unknown:
		return "unknown"
	}
	return "unknown device"
}

// Devices is a set of Device values.
type Devices uint8

// Has returns true if the device is in the set.
func (d Devices) Has(dev Device) bool {
	return d&(1<<dev) != 0
}

// DecodePort returns the devices that respond to a port on the model. The
// Unknown device is returned if no other device responds.
func DecodePort(model Model, port uint16) Devices {
	var d Devices
	if IsULAPort(port) {
		d |= 1 << ULA
	}
	if model == Model128K {
		if IsPagingPort(port) {
			d |= 1 << PagingPort
		}
		if IsAYSelectPort(port) {
			d |= 1 << AYSelect
		} else if IsAYDataPort(port) {
			d |= 1 << AYData
		}
	}
	if d == 0 {
		d = 1 << Unknown
	}
	return d
}

// PortStats is the access history of a device.
type PortStats struct {
	Reads  int
	Writes int

	// value of the most recent write and the instruction that wrote it
	LastValue  uint8
	LastWriter banks.AddressRef
}

// IOAnalysis records the accesses made by the CPU to the port space. It
// implements the bus.IOObserver interface.
type IOAnalysis struct {
	reg   *banks.Registry
	model Model

	devices [numDevices]PortStats

	// changes of the border colour and of the beeper output. the first write
	// to the ULA is not a change
	BorderChanges int
	BeeperToggles int
	ula           uint8
	ulaWritten    bool

	// number of writes to each AY register
	ayRegister uint8
	AYWrites   [16]int
}

// NewIOAnalysis is the preferred method of initialisation for the IOAnalysis
// type.
func NewIOAnalysis(reg *banks.Registry, model Model) *IOAnalysis {
	io := &IOAnalysis{
		reg:   reg,
		model: model,
	}
	io.ResetIO()
	return io
}

// Stats returns the statistics for a device.
func (io *IOAnalysis) Stats(dev Device) PortStats {
	return io.devices[dev]
}

// OnIORead implements the bus.IOObserver interface.
func (io *IOAnalysis) OnIORead(port uint16, data uint8, pc banks.AddressRef) {
	devs := DecodePort(io.model, port)
	for d := Device(0); d < numDevices; d++ {
		if devs.Has(d) {
			io.devices[d].Reads++
		}
	}
}

// OnIOWrite implements the bus.IOObserver interface.
func (io *IOAnalysis) OnIOWrite(port uint16, data uint8, pc banks.AddressRef) {
	devs := DecodePort(io.model, port)
	for d := Device(0); d < numDevices; d++ {
		if devs.Has(d) {
			s := &io.devices[d]
			s.Writes++
			s.LastValue = data
			s.LastWriter = pc
		}
	}

	if devs.Has(ULA) {
		if io.ulaWritten {
			if (data^io.ula)&0x07 != 0 {
				io.BorderChanges++
			}
			if (data^io.ula)&0x10 != 0 {
				io.BeeperToggles++
			}
		}
		io.ula = data
		io.ulaWritten = true
	}

	if devs.Has(AYSelect) {
		io.ayRegister = data & 0x0f
	}
	if devs.Has(AYData) {
		io.AYWrites[io.ayRegister]++
	}
}

// ResetIO implements the bus.IOObserver interface.
func (io *IOAnalysis) ResetIO() {
	for i := range io.devices {
		io.devices[i] = PortStats{LastWriter: banks.InvalidRef}
	}
	io.BorderChanges = 0
	io.BeeperToggles = 0
	io.ula = 0
	io.ulaWritten = false
	io.ayRegister = 0
	io.AYWrites = [16]int{}
}

// Summary returns a multi-line description of the port activity.
func (io *IOAnalysis) Summary() string {
	b := strings.Builder{}
	for d := Device(0); d < numDevices; d++ {
		s := io.devices[d]
		if s.Reads == 0 && s.Writes == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%-10s r:%-6d w:%-6d", d, s.Reads, s.Writes))
		if s.LastWriter.IsValid() {
			b.WriteString(fmt.Sprintf(" last=$%02x by %s", s.LastValue, io.reg.Describe(s.LastWriter)))
		}
		b.WriteString("\n")
	}
	if io.ulaWritten {
		b.WriteString(fmt.Sprintf("border changes: %d  beeper toggles: %d\n", io.BorderChanges, io.BeeperToggles))
	}
	for r, n := range io.AYWrites {
		if n > 0 {
			b.WriteString(fmt.Sprintf("AY R%-2d w:%d\n", r, n))
		}
	}
	return b.String()
}
