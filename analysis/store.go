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

package analysis

import (
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/hardware/memory/memorymap"
	"github.com/jetsetilly/eightbench/logger"
)

// addressSpace is the number of physical addresses.
const addressSpace = 0x10000

// FrameStats are the counts of bus activity during a single frame.
type FrameStats struct {
	Frame        int
	Instructions int
	Reads        int
	Writes       int
}

// Store is the cross-reference and provenance store for a single machine.
type Store struct {
	reg *banks.Registry
	mem *memorymap.Map

	// RegisterDataAccess controls whether reads are counted and whether
	// accessed bytes are classified as Data. Writes are always counted
	// because self-modifying code detection depends on them
	RegisterDataAccess bool

	exec  [addressSpace]uint32
	read  [addressSpace]uint32
	write [addressSpace]uint32

	// frame in which the physical address was last executed
	execFrame [addressSpace]int

	// physical addresses that have been both executed and written to. smcList
	// has the addresses in the order they were discovered
	smc     [addressSpace]bool
	smcList []uint16

	handlers       HandlerSet
	accessHandlers []*AccessHandler

	frame     FrameStats
	lastFrame FrameStats
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore(reg *banks.Registry, mem *memorymap.Map) *Store {
	s := &Store{
		reg:                reg,
		mem:                mem,
		RegisterDataAccess: true,
		smcList:            make([]uint16, 0, addressSpace),
		accessHandlers:     make([]*AccessHandler, 0, MaxAccessHandlers),
	}
	s.frame.Frame = 1
	return s
}

// RegisterExecute records the execution of an instruction at the physical
// address. The ref argument is the AddressRef the address resolved to at the
// time of the fetch.
//
// Returns true if an access handler requested a break.
func (s *Store) RegisterExecute(address uint16, ref banks.AddressRef) bool {
	s.exec[address]++
	s.execFrame[address] = s.frame.Frame
	s.frame.Instructions++

	if s.write[address] > 0 {
		s.addSelfModifying(address)
	}

	if b := s.reg.GetBank(ref.Bank); b != nil {
		info := b.Info(ref.Offset)
		info.Flags |= banks.Code
		info.ExecFrame = s.frame.Frame
		b.Page(int(ref.Offset) / banks.PageSize).ExecCount++
	}

	return s.checkAccessHandlers(AccessExecute, address, ref)
}

// RegisterRead records a data read of the physical address by the instruction
// at pc.
//
// Returns true if an access handler requested a break.
func (s *Store) RegisterRead(address uint16, ref banks.AddressRef, pc banks.AddressRef) bool {
	if !s.RegisterDataAccess {
		return false
	}

	s.read[address]++
	s.frame.Reads++

	if info := s.reg.Info(ref); info != nil {
		info.Flags |= banks.Data
	}

	return s.checkAccessHandlers(AccessRead, address, pc)
}

// RegisterWrite records a write to the physical address by the instruction at
// pc. The ref argument is the AddressRef the address resolved to for writing.
// The ref becomes self-modifying if it has previously been executed.
//
// Returns true if an access handler requested a break.
func (s *Store) RegisterWrite(address uint16, ref banks.AddressRef, pc banks.AddressRef) bool {
	s.write[address]++
	s.frame.Writes++
	if s.exec[address] > 0 {
		s.addSelfModifying(address)
	}

	if info := s.reg.Info(ref); info != nil {
		if s.RegisterDataAccess {
			info.Flags |= banks.Data
		}
		if info.Flags&banks.Code == banks.Code {
			info.Flags |= banks.SelfModifying
		}
		info.LastWriter = pc
		info.Flags |= banks.Written
	}

	return s.checkAccessHandlers(AccessWrite, address, pc)
}

func (s *Store) addSelfModifying(address uint16) {
	if s.smc[address] {
		return
	}
	s.smc[address] = true
	s.smcList = append(s.smcList, address)
}

// RegisterInterruptHandler adds the reference to the set of interrupt
// handlers. Returns true if the handler was not already known.
func (s *Store) RegisterInterruptHandler(ref banks.AddressRef) bool {
	if !ref.IsValid() {
		return false
	}
	return s.handlers.Add(ref)
}

// InterruptHandlers returns the references of all known interrupt handlers.
func (s *Store) InterruptHandlers() []banks.AddressRef {
	return s.handlers.List()
}

// IsInterruptHandler returns true if the reference is a known interrupt
// handler.
func (s *Store) IsInterruptHandler(ref banks.AddressRef) bool {
	return s.handlers.Contains(ref)
}

// GetAccessCounts returns the number of times the physical address has been
// executed, read and written.
func (s *Store) GetAccessCounts(address uint16) (exec int, read int, write int) {
	return int(s.exec[address]), int(s.read[address]), int(s.write[address])
}

// IsSelfModifying returns true if the physical address has been both executed
// and written to.
func (s *Store) IsSelfModifying(address uint16) bool {
	return s.exec[address] > 0 && s.write[address] > 0
}

// IsSelfModifyingRef returns true if the referenced byte was written to after
// it had been executed. Unlike IsSelfModifying() this is unaffected by the
// byte being visible at a different physical address.
func (s *Store) IsSelfModifyingRef(ref banks.AddressRef) bool {
	info := s.reg.Info(ref)
	return info != nil && info.Flags&banks.SelfModifying == banks.SelfModifying
}

// SelfModifying returns the physical addresses that have been both executed
// and written to, in the order they were discovered.
func (s *Store) SelfModifying() []uint16 {
	l := make([]uint16, len(s.smcList))
	copy(l, s.smcList)
	return l
}

// GetLastWriter returns the instruction that last wrote to the byte that the
// physical address currently resolves to for writing. The second return value
// is false if the byte has never been written to.
func (s *Store) GetLastWriter(address uint16) (banks.AddressRef, bool) {
	return s.LastWriterOf(s.mem.ResolveWrite(address))
}

// LastWriterOf returns the instruction that last wrote to the referenced byte.
// The second return value is false if the byte has never been written to.
func (s *Store) LastWriterOf(ref banks.AddressRef) (banks.AddressRef, bool) {
	info := s.reg.Info(ref)
	if info == nil || info.Flags&banks.Written != banks.Written {
		return banks.InvalidRef, false
	}
	return info.LastWriter, true
}

// ExecutedThisFrame returns true if the physical address has been executed
// during the current frame.
func (s *Store) ExecutedThisFrame(address uint16) bool {
	return s.exec[address] > 0 && s.execFrame[address] == s.frame.Frame
}

// Frame returns the statistics for the current frame.
func (s *Store) Frame() FrameStats {
	return s.frame
}

// LastFrame returns the statistics for the most recently completed frame.
func (s *Store) LastFrame() FrameStats {
	return s.lastFrame
}

// OnFrameStart implements the television.FrameTrigger interface.
func (s *Store) OnFrameStart() {
	s.frame = FrameStats{Frame: s.frame.Frame + 1}
}

// OnFrameEnd implements the television.FrameTrigger interface.
func (s *Store) OnFrameEnd() {
	s.lastFrame = s.frame
}

// ResetAnalysis clears all accumulated analysis. This includes the access
// counters, self-modifying code, last writers, code and data classification,
// the interrupt handler set, access handler hits and frame statistics.
//
// Bank definitions, labels, access handler definitions and the memory map are
// not affected.
func (s *Store) ResetAnalysis() {
	s.exec = [addressSpace]uint32{}
	s.read = [addressSpace]uint32{}
	s.write = [addressSpace]uint32{}
	s.execFrame = [addressSpace]int{}
	s.smc = [addressSpace]bool{}
	s.smcList = s.smcList[:0]
	s.handlers.Clear()
	for _, h := range s.accessHandlers {
		h.reset()
	}
	s.frame = FrameStats{Frame: 1}
	s.lastFrame = FrameStats{}
	s.reg.ResetAnalysis()

	logger.Log(logger.Allow, "analysis", "reset")
}
