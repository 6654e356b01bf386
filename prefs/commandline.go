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
package prefs

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// each group on the stack maps keys to values that have not yet been claimed
// by a call to GetCommandLinePref()
var commandLineStack []map[string]Value

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the preferences in the group that were never
// claimed, sorted by key and in the same form as accepted by
// PushCommandLineStack().
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	unused := make([]string, 0, len(popped))
	for _, key := range slices.Sorted(maps.Keys(popped)) {
		unused = append(unused, fmt.Sprintf("%s::%v", key, popped[key]))
	}

	return strings.Join(unused, "; ")
}

// PushCommandLineStack parses a preferences string and adds it as a new
// group. The string is of the form:
//
//	key::value; key::value
//
// Entries without the key separator are ignored.
func PushCommandLineStack(prefs string) {
	group := make(map[string]Value)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if ok {
			group[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	commandLineStack = append(commandLineStack, group)
}

// GetCommandLinePref claims the value for key from the most recent group.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	group := commandLineStack[len(commandLineStack)-1]
	if v, ok := group[key]; ok {
		delete(group, key)
		return true, v
	}

	return false, nil
}
