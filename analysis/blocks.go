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
)

// Use is the classification of a physical address.
type Use int

// List of valid Use values.
const (
	UseUnknown Use = iota
	UseCode
	UseData
)

func (u Use) String() string {
	switch u {
	case UseUnknown:
		return "Unknown"
	case UseCode:
		return "Code"
	case UseData:
		return "Data"
	}
	return "undefined"
}

// Block is a run of contiguous physical addresses with the same
// classification.
type Block struct {
	Use   Use
	Start uint16
	End   uint16

	// at least one address in the block is self-modifying
	SelfModifying bool
}

func (b Block) String() string {
	s := fmt.Sprintf("%04x -> %04x\t%s", b.Start, b.End, b.Use)
	if b.SelfModifying {
		s = fmt.Sprintf("%s (self-modifying)", s)
	}
	return s
}

// Classify returns the use of the physical address. An executed address is
// code even if it has also been read or written.
func (s *Store) Classify(address uint16) Use {
	if s.exec[address] > 0 {
		return UseCode
	}
	if s.read[address] > 0 || s.write[address] > 0 {
		return UseData
	}
	return UseUnknown
}

// ComputeMemoryBlocks scans the entire physical address space and returns the
// blocks of addresses that share the same classification. The blocks are in
// address order and cover the address space without gaps or overlaps.
func (s *Store) ComputeMemoryBlocks() []Block {
	blocks := make([]Block, 0, 64)

	current := Block{Use: s.Classify(0), SelfModifying: s.IsSelfModifying(0)}

	for a := 1; a < addressSpace; a++ {
		address := uint16(a)
		use := s.Classify(address)
		if use != current.Use {
			current.End = address - 1
			blocks = append(blocks, current)
			current = Block{Use: use, Start: address}
		}
		if s.IsSelfModifying(address) {
			current.SelfModifying = true
		}
	}

	current.End = 0xffff
	blocks = append(blocks, current)

	return blocks
}

// BlocksSummary returns a single multiline string listing the result of
// ComputeMemoryBlocks().
func (s *Store) BlocksSummary() string {
	b := strings.Builder{}
	for _, blk := range s.ComputeMemoryBlocks() {
		b.WriteString(blk.String())
		b.WriteString("\n")
	}
	return b.String()
}
