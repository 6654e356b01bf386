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
// Package paths returns the location of files used by eightbench, such as the
// preferences file.
//
// If a directory called .eightbench exists in the current working directory
// then files are found there. Otherwise they are found in the eightbench
// directory of the user's configuration directory, as returned by
// os.UserConfigDir().
package paths

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/eightbench/curated"
)

// PathError is the pattern for errors returned by ResourcePath().
const PathError = "paths: %v"

// name of the directory that holds resources.
const (
	localDir  = ".eightbench"
	configDir = "eightbench"
)

// ResourcePath returns the path to the named file in the sub-directory of the
// resource directory. Directories are created as required but the file itself
// is not touched.
//
// Empty strings for either argument are allowed.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, subPth)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", curated.Errorf(PathError, err)
	}

	return filepath.Join(dir, file), nil
}

func basePath() (string, error) {
	if fi, err := os.Stat(localDir); err == nil && fi.IsDir() {
		return localDir, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf(PathError, err)
	}
	return filepath.Join(cnf, configDir), nil
}
