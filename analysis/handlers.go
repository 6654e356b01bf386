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
)

// MaxInterruptHandlers is the capacity of a HandlerSet.
const MaxInterruptHandlers = 16

// HandlerSet is a set of unique interrupt handler addresses. It has a fixed
// capacity and adding to it never allocates.
type HandlerSet struct {
	refs [MaxInterruptHandlers]banks.AddressRef
	n    int
}

// Add a reference to the set. Returns true if the reference was not already in
// the set and there was room to add it.
func (h *HandlerSet) Add(ref banks.AddressRef) bool {
	if h.Contains(ref) || h.n >= len(h.refs) {
		return false
	}
	h.refs[h.n] = ref
	h.n++
	return true
}

// Contains returns true if the reference is in the set.
func (h *HandlerSet) Contains(ref banks.AddressRef) bool {
	for i := 0; i < h.n; i++ {
		if h.refs[i] == ref {
			return true
		}
	}
	return false
}

// Len returns the number of references in the set.
func (h *HandlerSet) Len() int {
	return h.n
}

// List returns a copy of the references in the order they were added.
func (h *HandlerSet) List() []banks.AddressRef {
	l := make([]banks.AddressRef, h.n)
	copy(l, h.refs[:h.n])
	return l
}

// Clear removes all references from the set.
func (h *HandlerSet) Clear() {
	h.n = 0
}
