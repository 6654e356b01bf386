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
	"fmt"
	"strings"

	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
)

// MaxAccessHandlers is the maximum number of access handlers in a Store.
const MaxAccessHandlers = 32

// MaxCallers is the number of unique callers recorded by an AccessHandler.
const MaxCallers = 16

// Error patterns returned by AddAccessHandler().
const (
	TooManyAccessHandlers = "analysis: too many access handlers (max %d)"
	InvalidAccessRange    = "analysis: invalid range for access handler %s (%04x -> %04x)"
	DuplicateAccessName   = "analysis: access handler %s already exists"
)

// AccessType is the type of bus access an AccessHandler watches for.
type AccessType int

// List of valid AccessType values.
const (
	AccessRead AccessType = iota
	AccessWrite
	AccessExecute
)

func (t AccessType) String() string {
	switch t {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessExecute:
		return "execute"
	}
	return "unknown"
}

// AccessHandler watches a range of physical addresses for a type of access.
type AccessHandler struct {
	Name    string
	Type    AccessType
	Start   uint16
	End     uint16
	Enabled bool

	// request that emulation stops when the handler is hit
	Break bool

	// number of times the handler has been hit
	Hits int

	callers    [MaxCallers]banks.AddressRef
	numCallers int
}

// Callers returns the unique instructions that have hit the handler. Only the
// first MaxCallers callers are recorded.
func (h *AccessHandler) Callers() []banks.AddressRef {
	c := make([]banks.AddressRef, h.numCallers)
	copy(c, h.callers[:h.numCallers])
	return c
}

func (h *AccessHandler) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s %04x -> %04x hits=%d", h.Name, h.Type, h.Start, h.End, h.Hits))
	if h.Break {
		s.WriteString(" (break)")
	}
	if !h.Enabled {
		s.WriteString(" (disabled)")
	}
	return s.String()
}

// hit returns true if the handler matches the access and the handler requests
// a break.
func (h *AccessHandler) hit(typ AccessType, address uint16, pc banks.AddressRef) bool {
	if !h.Enabled || h.Type != typ || address < h.Start || address > h.End {
		return false
	}

	h.Hits++

	if pc.IsValid() && h.numCallers < MaxCallers {
		found := false
		for i := 0; i < h.numCallers; i++ {
			if h.callers[i] == pc {
				found = true
				break // for loop
			}
		}
		if !found {
			h.callers[h.numCallers] = pc
			h.numCallers++
		}
	}

	return h.Break
}

func (h *AccessHandler) reset() {
	h.Hits = 0
	h.numCallers = 0
}

// AddAccessHandler adds a new enabled access handler for the range of
// addresses from start to end inclusive.
func (s *Store) AddAccessHandler(name string, typ AccessType, start uint16, end uint16, brk bool) (*AccessHandler, error) {
	if len(s.accessHandlers) >= MaxAccessHandlers {
		return nil, curated.Errorf(TooManyAccessHandlers, MaxAccessHandlers)
	}
	if start > end {
		return nil, curated.Errorf(InvalidAccessRange, name, start, end)
	}
	for _, h := range s.accessHandlers {
		if h.Name == name {
			return nil, curated.Errorf(DuplicateAccessName, name)
		}
	}

	h := &AccessHandler{
		Name:    name,
		Type:    typ,
		Start:   start,
		End:     end,
		Enabled: true,
		Break:   brk,
	}
	s.accessHandlers = append(s.accessHandlers, h)

	return h, nil
}

// RemoveAccessHandler removes the named handler. Returns false if there is no
// handler with that name.
func (s *Store) RemoveAccessHandler(name string) bool {
	for i, h := range s.accessHandlers {
		if h.Name == name {
			s.accessHandlers = append(s.accessHandlers[:i], s.accessHandlers[i+1:]...)
			return true
		}
	}
	return false
}

// AccessHandlers returns the list of access handlers.
func (s *Store) AccessHandlers() []*AccessHandler {
	return s.accessHandlers
}

// checkAccessHandlers returns true if any handler requests a break.
func (s *Store) checkAccessHandlers(typ AccessType, address uint16, pc banks.AddressRef) bool {
	brk := false
	for _, h := range s.accessHandlers {
		if h.hit(typ, address, pc) {
			brk = true
		}
	}
	return brk
}
