// This file is part of Softgun.
//
// Softgun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Softgun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Softgun.  If not, see <https://www.gnu.org/licenses/>.

package cli

import (
	"bufio"

	"github.com/pkg/term"
)

// Terminal puts the controlling tty into raw mode for the lifetime of an
// interactive session, so a line editor can read one key at a time instead
// of waiting on the kernel's own line discipline.
type Terminal struct {
	t      *term.Term
	reader *bufio.Reader
}

// OpenTerminal opens /dev/tty and switches it to raw mode. Call Close to
// restore the previous mode.
func OpenTerminal() (*Terminal, error) {
	t, err := term.Open("/dev/tty")
	if err != nil {
		return nil, err
	}
	if err := t.SetRaw(); err != nil {
		_ = t.Close()
		return nil, err
	}
	return &Terminal{t: t, reader: bufio.NewReader(t)}, nil
}

// ReadByte reads a single raw byte from the terminal.
func (s *Terminal) ReadByte() (byte, error) {
	return s.reader.ReadByte()
}

// Close restores the terminal's original mode and closes it.
func (s *Terminal) Close() error {
	if err := s.t.Restore(); err != nil {
		return err
	}
	return s.t.Close()
}
