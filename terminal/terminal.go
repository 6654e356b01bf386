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
// Package terminal puts the controlling terminal into raw mode so that the
// monitor can react to single key presses. It is a thin layer over
// github.com/pkg/term.
//
// In raw mode the terminal does not generate signals. The interrupt and
// suspend keys arrive as ordinary key presses (KeyInterrupt and KeySuspend)
// and should be handled by the caller. Output written through the Terminal
// has line feeds expanded to carriage return and line feed.
package terminal

import (
	"io"
	"os"
	"syscall"

	"github.com/jetsetilly/eightbench/curated"
	"github.com/pkg/term"
)

// OpenError is the pattern for errors returned by Open().
const OpenError = "terminal: %v"

const ttyDevice = "/dev/tty"

// Terminal is an open terminal in raw mode.
type Terminal struct {
	tty    *term.Term
	output io.Writer
}

// Open the controlling terminal and put it into raw mode. Output is written
// to the supplied writer, which will usually be os.Stdout.
func Open(output io.Writer) (*Terminal, error) {
	tty, err := term.Open(ttyDevice, term.RawMode)
	if err != nil {
		return nil, curated.Errorf(OpenError, err)
	}
	return &Terminal{
		tty:    tty,
		output: &crlf{w: output},
	}, nil
}

// ReadKey blocks until a key is pressed. Escape sequences produced by cursor
// and function keys are returned as KeyNone, except for a lone escape which
// is returned as KeyEsc.
func (t *Terminal) ReadKey() (byte, error) {
	var b [8]byte
	n, err := t.tty.Read(b[:])
	if err != nil {
		return KeyNone, err
	}
	if n == 0 {
		return KeyNone, nil
	}
	if n > 1 && b[0] == KeyEsc {
		return KeyNone, nil
	}
	return b[0], nil
}

// Write implements the io.Writer interface.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.output.Write(p)
}

// Suspend the process in the same way as the shell would for a terminal in
// canonical mode. Raw mode is restored when the process continues.
func (t *Terminal) Suspend() error {
	if err := t.tty.Restore(); err != nil {
		return curated.Errorf(OpenError, err)
	}
	if err := syscall.Kill(os.Getpid(), syscall.SIGTSTP); err != nil {
		return curated.Errorf(OpenError, err)
	}
	if err := t.tty.SetRaw(); err != nil {
		return curated.Errorf(OpenError, err)
	}
	return nil
}

// Close restores the terminal to the mode it was in before Open().
func (t *Terminal) Close() error {
	if err := t.tty.Restore(); err != nil {
		t.tty.Close()
		return curated.Errorf(OpenError, err)
	}
	return t.tty.Close()
}

// crlf expands line feeds. Raw mode turns off output processing.
type crlf struct {
	w io.Writer
}

func (c *crlf) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b != '\n' {
			continue
		}
		if _, err := c.w.Write(p[start:i]); err != nil {
			return start, err
		}
		if _, err := io.WriteString(c.w, "\r\n"); err != nil {
			return i, err
		}
		start = i + 1
	}
	if start < len(p) {
		if _, err := c.w.Write(p[start:]); err != nil {
			return start, err
		}
	}
	return len(p), nil
}
