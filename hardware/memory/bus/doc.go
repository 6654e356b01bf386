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

// Package bus defines the interfaces between a CPU core and the analysis
// layer that observes it.
//
// A CPU core reports every memory and I/O cycle to an Observer. The Observer
// interface has a single method so that the cost of the call on every cycle
// is as small as possible. The Flags type carries the state of the CPU
// control lines into the call and carries requests back to the CPU core.
package bus
