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

// Package cli is the interactive command surface: components register
// named commands, an interpreter routes incoming lines to the matching
// proc, and every proc reports one of a small set of result codes that
// the interpreter translates into session behaviour. There is no
// template grammar or tab completion; the registry and the result codes
// are the whole contract.
package cli

import (
	"strings"

	"github.com/sgcore/softgun/errors"
	"github.com/sgcore/softgun/registry"
)

// Result is the outcome of running one command line.
type Result int

// The result codes a command proc can report.
const (
	OK Result = iota
	ERROR
	BADARGS
	DELAYED
	QUIT
	ABORT
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case ERROR:
		return "ERROR"
	case BADARGS:
		return "BADARGS"
	case DELAYED:
		return "DELAYED"
	case QUIT:
		return "QUIT"
	case ABORT:
		return "ABORT"
	default:
		return "UNKNOWN"
	}
}

// Proc is a registered command's implementation. args excludes the command
// name itself. The returned string is the line to show the session.
type Proc func(args []string) (Result, string)

// AbortProc is a command's cleanup hook for a session that closes while the
// command may still hold in-flight state from a DELAYED result. It is
// called by Commands.Abort.
type AbortProc func()

type command struct {
	proc  Proc
	abort AbortProc
}

// Commands is a namespace of registered command procs.
type Commands struct {
	entries *registry.Registry[command]
}

// NewCommands creates an empty command namespace.
func NewCommands() *Commands {
	return &Commands{entries: registry.New[command](0)}
}

// Register adds a named command. abort may be nil if the command never
// returns DELAYED.
func (c *Commands) Register(name string, proc Proc, abort AbortProc) error {
	return c.entries.Create(strings.ToUpper(name), command{proc: proc, abort: abort})
}

// Dispatch splits line into a command name and arguments and runs the
// matching proc. An unrecognised command name or an empty line produces
// ERROR/BADARGS respectively rather than panicking: this is a runtime
// failure, not a configuration one.
func (c *Commands) Dispatch(line string) (Result, string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return BADARGS, errors.Errorf(errors.CLIBadArguments, line).Error()
	}

	name := strings.ToUpper(fields[0])
	cmd, ok := c.entries.Find(name)
	if !ok {
		return ERROR, errors.Errorf(errors.CLIUnknownCommand, fields[0]).Error()
	}
	return cmd.proc(fields[1:])
}

// Abort calls the AbortProc of every registered command that has one. It
// does not track which commands returned DELAYED: every AbortProc is
// called, whether or not its command was dispatched or is still in flight.
func (c *Commands) Abort() {
	c.entries.Each(func(_ string, cmd command) {
		if cmd.abort != nil {
			cmd.abort()
		}
	})
}

// Names lists every registered command name.
func (c *Commands) Names() []string {
	return c.entries.Names()
}
