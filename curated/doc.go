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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Patterns that callers are expected to test for should be
// stored as package level string constants. For example:
//
//	const InvalidStorage = "banks: storage for %s too small (%d bytes, want %d)"
//
//	err := curated.Errorf(InvalidStorage, name, len(data), want)
//	if curated.Is(err, banks.InvalidStorage) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. A chain is formed by passing a curated error as one of the
// values to Errorf().
//
// The Error() function normalises the error chain so that it does not contain
// duplicate adjacent parts. The practical advantage is that it alleviates the
// problem of when and how to wrap errors. Wrapping "c64: %v" around an error
// whose message is "c64: bad port" results in "c64: bad port" rather than
// "c64: c64: bad port".
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': '.
package curated
