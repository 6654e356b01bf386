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

package c64

import "fmt"

// offsets of each chip within the I/O bank.
const (
	vicOrigin       = 0x000
	sidOrigin       = 0x400
	colourRAMOrigin = 0x800
	cia1Origin      = 0xc00
	cia2Origin      = 0xd00
	expansionOrigin = 0xe00
)

// VICRegisters are the canonical names of the VIC-II registers, indexed by
// register number.
var VICRegisters = []string{
	"SP0X", "SP0Y", "SP1X", "SP1Y", "SP2X", "SP2Y", "SP3X", "SP3Y",
	"SP4X", "SP4Y", "SP5X", "SP5Y", "SP6X", "SP6Y", "SP7X", "SP7Y",
	"MSIGX", "SCROLY", "RASTER", "LPENX", "LPENY", "SPENA", "SCROLX", "YXPAND",
	"VMCSB", "VICIRQ", "IRQMSK", "SPBGPR", "SPMC", "XXPAND", "SPSPCL", "SPBGCL",
	"EXTCOL", "BGCOL0", "BGCOL1", "BGCOL2", "BGCOL3", "SPMC0", "SPMC1", "SP0COL",
	"SP1COL", "SP2COL", "SP3COL", "SP4COL", "SP5COL", "SP6COL", "SP7COL",
}

// SIDRegisters are the canonical names of the SID registers.
var SIDRegisters = []string{
	"FRELO1", "FREHI1", "PWLO1", "PWHI1", "VCREG1", "ATDCY1", "SUREL1",
	"FRELO2", "FREHI2", "PWLO2", "PWHI2", "VCREG2", "ATDCY2", "SUREL2",
	"FRELO3", "FREHI3", "PWLO3", "PWHI3", "VCREG3", "ATDCY3", "SUREL3",
	"CUTLO", "CUTHI", "RESON", "SIGVOL", "POTX", "POTY", "RANDOM", "ENV3",
}

// CIARegisters are the names of the registers common to both CIA chips.
var CIARegisters = []string{
	"PRA", "PRB", "DDRA", "DDRB", "TALO", "TAHI", "TBLO", "TBHI",
	"TOD10TH", "TODSEC", "TODMIN", "TODHRS", "SDR", "ICR", "CRA", "CRB",
}

// labeller is satisfied by banks.Bank.
type labeller interface {
	SetLabel(offset uint16, label string)
}

// addIOLabels attaches the register names to the I/O bank.
func addIOLabels(io labeller) {
	for i, n := range VICRegisters {
		io.SetLabel(uint16(vicOrigin+i), fmt.Sprintf("VIC_%s", n))
	}
	for i, n := range SIDRegisters {
		io.SetLabel(uint16(sidOrigin+i), fmt.Sprintf("SID_%s", n))
	}
	io.SetLabel(colourRAMOrigin, "COLOUR_RAM")
	for i, n := range CIARegisters {
		io.SetLabel(uint16(cia1Origin+i), fmt.Sprintf("CIA1_%s", n))
		io.SetLabel(uint16(cia2Origin+i), fmt.Sprintf("CIA2_%s", n))
	}
}
