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

// Package decoder is a table-driven instruction dispatch framework shared
// across instruction sets: a descriptor names a mask/icode pattern, a
// handler, and cycle/length bookkeeping; Build resolves the descriptor list
// once, at construction time, into a dispatch table that Dispatch then
// walks in constant time per opcode. The mask/icode matching rule and the
// first-level index-bit extraction are the ones the ARM core of this
// module's design is built around; Build generalises the scheme to an
// optional second level for instruction sets whose formats need more bits
// than a single index to disambiguate.
package decoder

import "fmt"

// Descriptor is one entry in an instruction set's opcode table. Mask selects
// which bits of an opcode are significant; ICode is the value those bits
// must hold for the descriptor to match. Exists, when non-nil, is evaluated
// once at Build time and excludes the descriptor entirely when it returns
// false (used for addressing-mode combinations that do not exist on a given
// core revision).
type Descriptor[H any] struct {
	Mask    uint64
	ICode   uint64
	Name    string
	Handler H

	// Length is the instruction's size, in the ISA's natural unit (bytes
	// for an 8-bit core, half-words for Thumb, words for ARM).
	Length int

	// BaseCycles is the undecorated cycle cost; Table scales it by the
	// configured CycleMultiplier when resolving a dispatch Result.
	BaseCycles int

	Exists func() bool

	// AccessCycles, when non-nil, is evaluated once at Build time and its
	// result added to BaseCycles before the cycle multiplier is applied.
	// Instruction sets whose addressing-mode probe counts the memory
	// accesses an encoding performs report that cost here.
	AccessCycles func() int
}

func (d Descriptor[H]) String() string {
	return fmt.Sprintf("%s{mask=%#x icode=%#x}", d.Name, d.Mask, d.ICode)
}

func popcount(v uint64) int {
	count := 0
	for v != 0 {
		count += int(v & 1)
		v >>= 1
	}
	return count
}

// Matches reports whether opcode satisfies the descriptor: every bit the
// mask cares about must equal the corresponding icode bit.
func (d Descriptor[H]) Matches(opcode uint64) bool {
	return opcode&d.Mask == d.ICode
}

func (d Descriptor[H]) valid() bool {
	return d.ICode&d.Mask == d.ICode
}
