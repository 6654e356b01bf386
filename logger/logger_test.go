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

package logger_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/eightbench/logger"
	"github.com/jetsetilly/eightbench/test"
)

func TestLogger(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(100)

	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\n")

	// clear the test.CompareWriter buffer before continuing, makes comparisons
	// easier to manage
	tw.Clear()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	log.Tail(tw, 100)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	log.Tail(tw, 2)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	tw.Clear()
	log.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "test2: this is another test\n")

	// and no entries
	tw.Clear()
	log.Tail(tw, 0)
	test.ExpectEquality(t, tw.String(), "")
}

func TestRepeatsAndTypes(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(100)

	log.Log(logger.Allow, "tag", "same")
	log.Log(logger.Allow, "tag", "same")
	log.Log(logger.Allow, "tag", "same")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "tag: same (repeat x3)\n")

	tw.Clear()
	log.Clear()
	log.Log(logger.Allow, "error", fmt.Errorf("an error"))
	log.Log(logger.Allow, "int", 10)
	log.Logf(logger.Allow, "fmt", "%04x", 0xa000)
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "error: an error\nint: 10\nfmt: a000\n")

	// denied entries never reach the log
	tw.Clear()
	log.Clear()
	log.Log(logger.Deny, "tag", "denied")
	test.ExpectFailure(t, log.Write(tw))
}

func TestMaxEntries(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(2)

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "b: 2\nc: 3\n")
}

func TestEcho(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.SetEcho(tw)
	log.Log(logger.Allow, "echo", "on")
	log.SetEcho(nil)
	log.Log(logger.Allow, "echo", "off")
	test.ExpectEquality(t, tw.String(), "echo: on\n")
}

func TestColorizerPlain(t *testing.T) {
	// a CompareWriter is not a terminal so no coloring is applied
	tw := &test.CompareWriter{}
	c := logger.NewColorizer(tw)
	n, err := c.Write([]byte("tag: detail\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 12)
	test.ExpectEquality(t, tw.String(), "tag: detail\n")
}
