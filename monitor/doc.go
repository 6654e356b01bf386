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
// Package monitor is an interactive front end for the ZX Spectrum analyser.
// Single key presses step, run and pause the machine and print the state of
// the analysis. Key presses are read from an Input, usually a terminal in raw
// mode.
//
// The machine is paused when the monitor starts. While it is running the
// monitor checks for key presses at the end of every frame and the frame rate
// is paced by an emulation.Limiter. An access handler with the break flag set
// pauses the machine.
package monitor
