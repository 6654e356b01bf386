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
package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/eightbench/paths"
	"github.com/jetsetilly/eightbench/test"
)

func TestLocalPath(t *testing.T) {
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".eightbench", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".eightbench", "foo", "bar", "baz"))

	// sub-directory has been created
	fi, err := os.Stat(filepath.Join(".eightbench", "foo", "bar"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())

	// but not the file
	_, err = os.Stat(pth)
	test.ExpectFailure(t, err)

	pth, err = paths.ResourcePath("", "prefs")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".eightbench", "prefs"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".eightbench")
}

func TestConfigPath(t *testing.T) {
	t.Chdir(t.TempDir())
	cnf := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cnf)
	t.Setenv("HOME", cnf)

	pth, err := paths.ResourcePath("", "prefs")
	test.ExpectSuccess(t, err)

	dir, err := os.UserConfigDir()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(dir, "eightbench", "prefs"))
}
