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

	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/logger"
)

// Error patterns returned by CreateBank().
const (
	InvalidStorage   = "banks: storage for %s is %d bytes (want at least %d)"
	InvalidPageCount = "banks: page count for %s must be between 1 and %d (got %d)"
)

// Registry is the set of banks for a single machine.
type Registry struct {
	banks []*Bank
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry() *Registry {
	return &Registry{
		banks: make([]*Bank, 0, 16),
	}
}

// CreateBank adds a new bank to the registry. The storage slice is borrowed
// and must be at least pageCount*PageSize bytes long. Storage beyond that
// length is not part of the bank.
//
// Returns InvalidID and an error if the bank cannot be created.
func (r *Registry) CreateBank(name string, pageCount int, storage []uint8, readOnly bool, resident bool) (ID, error) {
	if pageCount <= 0 || pageCount > MaxPages {
		return InvalidID, curated.Errorf(InvalidPageCount, name, MaxPages, pageCount)
	}

	sz := pageCount * PageSize
	if len(storage) < sz {
		return InvalidID, curated.Errorf(InvalidStorage, name, len(storage), sz)
	}

	b := &Bank{
		id:       ID(len(r.banks)),
		Name:     name,
		ReadOnly: readOnly,
		Resident: resident,
		data:     storage[:sz:sz],
		pages:    make([]Page, pageCount),
	}
	r.banks = append(r.banks, b)

	logger.Logf(logger.Allow, "banks", "created %d: %s", b.id, b.String())

	return b.id, nil
}

// GetBank returns the bank with the ID. Returns nil if there is no such bank.
func (r *Registry) GetBank(id ID) *Bank {
	if id < 0 || int(id) >= len(r.banks) {
		return nil
	}
	return r.banks[id]
}

// NumBanks returns the number of banks in the registry.
func (r *Registry) NumBanks() int {
	return len(r.banks)
}

// Info returns the analysis record for the referenced byte. Returns nil if the
// reference is not valid.
func (r *Registry) Info(ref AddressRef) *ByteInfo {
	b := r.GetBank(ref.Bank)
	if b == nil || int(ref.Offset) >= b.Size() {
		return nil
	}
	return b.Info(ref.Offset)
}

// Describe returns a human readable form of the reference. The label is used
// if one exists.
func (r *Registry) Describe(ref AddressRef) string {
	b := r.GetBank(ref.Bank)
	if b == nil {
		return ref.String()
	}
	if l, ok := b.Label(ref.Offset); ok {
		return fmt.Sprintf("%s:%s", b.Name, l)
	}
	return fmt.Sprintf("%s+$%04x", b.Name, ref.Offset)
}

// ResetAnalysis clears the analysis records of every bank.
func (r *Registry) ResetAnalysis() {
	for _, b := range r.banks {
		b.ResetAnalysis()
	}
}

// Summary returns a multiline string listing every bank.
func (r *Registry) Summary() string {
	s := strings.Builder{}
	for _, b := range r.banks {
		s.WriteString(fmt.Sprintf("%2d %s\n", b.id, b.String()))
	}
	return s.String()
}
