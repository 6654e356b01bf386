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

// Package prefs facilitates the storage of preferential values in the
// Eightbench system. It is intended to be used by other packages to store
// values which the user may want to change between sessions.
//
// Preference values are typed. The Bool, Int and String types are provided.
// Each type can have hook functions that are called before and after a new
// value is set.
//
// A Disk instance associates preference values with keys and loads/saves
// them from a file. Each line of the file is of the form:
//
//	key :: value
//
// The command line stack allows preferences to be set for a single run of
// the program. Values pushed to the stack are applied when a preference with
// the matching key is added to a Disk instance.
package prefs
