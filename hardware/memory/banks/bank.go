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

package banks

import (
	"fmt"
	"strings"
)

// PageSize is the number of bytes in a page. A page is the unit of mapping
// between a bank and the physical address space.
const PageSize = 1024

// MaxPages is the largest number of pages a bank can have. A bank larger than
// the physical address space can never be fully mapped.
const MaxPages = 64

// Flags classify a single byte of a bank.
type Flags uint8

// List of valid Flags.
const (
	// the byte has been executed as the start of an instruction
	Code Flags = 1 << iota

	// the byte has been read or written as an instruction operand
	Data

	// the byte was written to after it had been classified as Code
	SelfModifying

	// the LastWriter field of ByteInfo is valid
	Written
)

func (f Flags) String() string {
	s := strings.Builder{}
	if f&Code == Code {
		s.WriteString("C")
	} else {
		s.WriteString("-")
	}
	if f&Data == Data {
		s.WriteString("D")
	} else {
		s.WriteString("-")
	}
	if f&SelfModifying == SelfModifying {
		s.WriteString("S")
	} else {
		s.WriteString("-")
	}
	if f&Written == Written {
		s.WriteString("W")
	} else {
		s.WriteString("-")
	}
	return s.String()
}

// ByteInfo is the analysis record for a single byte of a bank.
type ByteInfo struct {
	Flags Flags

	// the instruction that most recently wrote to this byte. only valid if
	// Flags has the Written bit set
	LastWriter AddressRef

	// the frame number in which the byte was most recently executed. zero if
	// it has never been executed
	ExecFrame int
}

// Page is the analysis metadata for one page of a bank.
type Page struct {
	Bytes [PageSize]ByteInfo

	// number of instructions executed in this page
	ExecCount int

	// labels keyed by offset within the page. nil until the first label is
	// added
	labels map[uint16]string
}

// Bank is a named block of memory that can be mapped into the address space.
type Bank struct {
	id       ID
	Name     string
	ReadOnly bool

	// a resident bank is always visible somewhere in the address space
	Resident bool

	data  []uint8
	pages []Page
}

// ID returns the bank's identifier in the Registry that created it.
func (b *Bank) ID() ID {
	return b.id
}

// NumPages returns the number of pages in the bank.
func (b *Bank) NumPages() int {
	return len(b.pages)
}

// Size returns the number of bytes in the bank.
func (b *Bank) Size() int {
	return len(b.pages) * PageSize
}

// Data returns the backing storage of the bank, limited to the bank size.
func (b *Bank) Data() []uint8 {
	return b.data
}

// Read returns the byte at offset.
func (b *Bank) Read(offset uint16) uint8 {
	return b.data[offset]
}

// Write sets the byte at offset. Writes to a read-only bank are ignored and
// the function returns false.
func (b *Bank) Write(offset uint16, data uint8) bool {
	if b.ReadOnly {
		return false
	}
	b.data[offset] = data
	return true
}

// Poke sets the byte at offset even if the bank is read-only.
func (b *Bank) Poke(offset uint16, data uint8) {
	b.data[offset] = data
}

// Page returns the metadata for page n.
func (b *Bank) Page(n int) *Page {
	return &b.pages[n]
}

// Info returns the analysis record for the byte at offset.
func (b *Bank) Info(offset uint16) *ByteInfo {
	return &b.pages[offset/PageSize].Bytes[offset%PageSize]
}

// Ref returns the AddressRef of the byte at offset.
func (b *Bank) Ref(offset uint16) AddressRef {
	return AddressRef{Bank: b.id, Offset: offset}
}

// SetLabel associates a label with the byte at offset. An empty label removes
// any existing label.
func (b *Bank) SetLabel(offset uint16, label string) {
	p := &b.pages[offset/PageSize]
	if label == "" {
		delete(p.labels, offset%PageSize)
		return
	}
	if p.labels == nil {
		p.labels = make(map[uint16]string)
	}
	p.labels[offset%PageSize] = label
}

// Label returns the label for the byte at offset, if there is one.
func (b *Bank) Label(offset uint16) (string, bool) {
	l, ok := b.pages[offset/PageSize].labels[offset%PageSize]
	return l, ok
}

// ResetAnalysis clears the analysis records and execution counters of every
// page. Labels are kept.
func (b *Bank) ResetAnalysis() {
	for i := range b.pages {
		b.pages[i].Bytes = [PageSize]ByteInfo{}
		b.pages[i].ExecCount = 0
	}
}

func (b *Bank) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%-24s %3dK", b.Name, b.Size()/1024))
	if b.ReadOnly {
		s.WriteString(" ro")
	} else {
		s.WriteString(" rw")
	}
	if b.Resident {
		s.WriteString(" resident")
	}
	return s.String()
}
