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

package banks_test

import (
	"testing"

	"github.com/jetsetilly/eightbench/curated"
	"github.com/jetsetilly/eightbench/hardware/memory/banks"
	"github.com/jetsetilly/eightbench/test"
)

func TestCreateBank(t *testing.T) {
	reg := banks.NewRegistry()

	ram := make([]uint8, 4*banks.PageSize)
	id, err := reg.CreateBank("RAM", 4, ram, false, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, id, banks.ID(0))

	rom := make([]uint8, 8*banks.PageSize)
	id, err = reg.CreateBank("ROM", 8, rom, true, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, id, banks.ID(1))
	test.ExpectEquality(t, reg.NumBanks(), 2)

	b := reg.GetBank(id)
	test.DemandSuccess(t, b != nil)
	test.ExpectEquality(t, b.Name, "ROM")
	test.ExpectEquality(t, b.NumPages(), 8)
	test.ExpectEquality(t, b.Size(), 8192)
	test.ExpectSuccess(t, b.ReadOnly)

	// unknown ids
	test.ExpectSuccess(t, reg.GetBank(2) == nil)
	test.ExpectSuccess(t, reg.GetBank(banks.InvalidID) == nil)
}

func TestCreateBankFailures(t *testing.T) {
	reg := banks.NewRegistry()

	id, err := reg.CreateBank("nil storage", 1, nil, false, false)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, banks.InvalidStorage))
	test.ExpectEquality(t, id, banks.InvalidID)

	id, err = reg.CreateBank("short storage", 2, make([]uint8, banks.PageSize), false, false)
	test.ExpectSuccess(t, curated.Is(err, banks.InvalidStorage))
	test.ExpectEquality(t, id, banks.InvalidID)

	id, err = reg.CreateBank("no pages", 0, make([]uint8, banks.PageSize), false, false)
	test.ExpectSuccess(t, curated.Is(err, banks.InvalidPageCount))
	test.ExpectEquality(t, id, banks.InvalidID)

	// failed banks do not use an id
	id, err = reg.CreateBank("ok", 1, make([]uint8, banks.PageSize), false, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, id, banks.ID(0))
}

func TestBorrowedStorage(t *testing.T) {
	reg := banks.NewRegistry()

	mem := make([]uint8, 2*banks.PageSize)
	id, err := reg.CreateBank("RAM", 2, mem, false, false)
	test.DemandSuccess(t, err)
	b := reg.GetBank(id)

	// changes to the storage are visible through the bank and vice versa
	mem[0x10] = 0xaa
	test.ExpectEquality(t, b.Read(0x10), 0xaa)
	test.ExpectSuccess(t, b.Write(0x11, 0xbb))
	test.ExpectEquality(t, mem[0x11], 0xbb)

	// read only banks ignore writes but can be poked
	id, err = reg.CreateBank("ROM", 1, make([]uint8, banks.PageSize), true, false)
	test.DemandSuccess(t, err)
	rom := reg.GetBank(id)
	test.ExpectFailure(t, rom.Write(0, 0x01))
	test.ExpectEquality(t, rom.Read(0), 0x00)
	rom.Poke(0, 0x01)
	test.ExpectEquality(t, rom.Read(0), 0x01)
}

func TestAnalysisRecords(t *testing.T) {
	reg := banks.NewRegistry()
	id, err := reg.CreateBank("RAM", 2, make([]uint8, 2*banks.PageSize), false, false)
	test.DemandSuccess(t, err)
	b := reg.GetBank(id)

	// records are zero on creation
	test.ExpectEquality(t, b.Info(0x400).Flags, banks.Flags(0))

	ref := b.Ref(0x401)
	test.ExpectEquality(t, ref, banks.AddressRef{Bank: id, Offset: 0x401})
	reg.Info(ref).Flags |= banks.Code
	test.ExpectEquality(t, b.Info(0x401).Flags, banks.Code)
	test.ExpectEquality(t, b.Info(0x401).Flags.String(), "C---")

	// invalid references have no record
	test.ExpectSuccess(t, reg.Info(banks.InvalidRef) == nil)
	test.ExpectSuccess(t, reg.Info(banks.AddressRef{Bank: id, Offset: 0x800}) == nil)

	b.SetLabel(0x401, "start")
	l, ok := b.Label(0x401)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, "start")
	test.ExpectEquality(t, reg.Describe(ref), "RAM:start")
	test.ExpectEquality(t, reg.Describe(b.Ref(0x10)), "RAM+$0010")

	// reset clears records but not labels
	reg.ResetAnalysis()
	test.ExpectEquality(t, b.Info(0x401).Flags, banks.Flags(0))
	_, ok = b.Label(0x401)
	test.ExpectSuccess(t, ok)

	b.SetLabel(0x401, "")
	_, ok = b.Label(0x401)
	test.ExpectFailure(t, ok)
}

func TestAddressRef(t *testing.T) {
	test.ExpectFailure(t, banks.InvalidRef.IsValid())
	test.ExpectEquality(t, banks.InvalidRef.String(), "invalid")
	ref := banks.AddressRef{Bank: 3, Offset: 0x1f}
	test.ExpectSuccess(t, ref.IsValid())
	test.ExpectEquality(t, ref.String(), "3:001f")
}
