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

package memorymap

import (
	"fmt"
	"strings"
)

// describe the mapping of a slot for the summary.
func (m *Map) describe(slot int) string {
	r := m.read[slot]
	w := m.write[slot]

	switch {
	case r.bank == nil && w.bank == nil:
		return "unmapped"
	case r.bank == w.bank:
		return fmt.Sprintf("%s %s", AccessReadWrite, r.bank.Name)
	case w.bank == nil:
		return fmt.Sprintf("%s %s", AccessRead, r.bank.Name)
	case r.bank == nil:
		return fmt.Sprintf("%s %s", AccessWrite, w.bank.Name)
	}

	return fmt.Sprintf("%s %s / %s %s", AccessRead, r.bank.Name, AccessWrite, w.bank.Name)
}

// Summary returns a single multiline string detailing the current mapping.
// Consecutive slots with the same banks are shown as a single range.
func (m *Map) Summary() string {
	s := strings.Builder{}

	current := m.describe(0)
	start := 0

	for slot := 1; slot < NumSlots; slot++ {
		d := m.describe(slot)
		if d != current {
			s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", start<<slotShift, slot<<slotShift-1, current))
			current = d
			start = slot
		}
	}

	// write last line of summary
	s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", start<<slotShift, 0xffff, current))

	return s.String()
}
