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

import "fmt"

// ID identifies a bank in a Registry. IDs are assigned in creation order
// starting from zero.
type ID int

// InvalidID is returned by CreateBank() when the bank could not be created. It
// is also the bank of an invalid AddressRef.
const InvalidID ID = -1

// AddressRef is the stable identity of a single byte in a bank.
type AddressRef struct {
	Bank   ID
	Offset uint16
}

// InvalidRef is the AddressRef used to indicate the absence of a reference.
var InvalidRef = AddressRef{Bank: InvalidID}

// IsValid returns false if the reference is InvalidRef or has a negative bank ID.
func (r AddressRef) IsValid() bool {
	return r.Bank >= 0
}

func (r AddressRef) String() string {
	if !r.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("%d:%04x", r.Bank, r.Offset)
}
