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
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/eightbench/curated"
)

// WarningBoilerPlate is written as the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// keySep separates key from value in the preferences file.
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load. If a value for key
// has been pushed to the command line stack then that value is set
// immediately.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) {
		return curated.Errorf("prefs: illegal key %q", key)
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	return nil
}

// read existing file into a key/value map. a file that does not exist is
// not an error.
func (dsk *Disk) read() (map[string]string, error) {
	kv := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return kv, nil
		}
		return nil, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// check validity of file by checking the first line
	if scanner.Scan() && scanner.Text() != WarningBoilerPlate {
		return nil, curated.Errorf("prefs: not a valid prefs file (%s)", dsk.path)
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), keySep)
		if !ok {
			continue
		}
		kv[k] = v
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("prefs: %v", err)
	}

	return kv, nil
}

// Save current preference values to disk. Entries in the file for keys that
// have not been added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	kv, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		kv[k] = p.String()
	}

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, kv[k]))
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. If saveOnFail is true and the file does
// not exist then the current values are saved to disk.
func (dsk *Disk) Load(saveOnFail bool) error {
	if _, err := os.Stat(dsk.path); err != nil && errors.Is(err, fs.ErrNotExist) {
		if saveOnFail {
			return dsk.Save()
		}
		return nil
	}

	kv, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range kv {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %v", err)
			}
		}
	}

	return nil
}

// Reset all preferences added to the Disk instance to their default value.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}
	return nil
}
