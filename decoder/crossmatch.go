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

package decoder

import (
	"fmt"

	"github.com/sgcore/softgun/errors"
)

// checkCrossMatches panics if any two descriptors in the list overlap (some
// real opcode would satisfy both masks/icodes) while being equally
// specific. Two equally-specific, overlapping descriptors can never be
// resolved by mask popcount alone and indicate a mistake in the
// instruction table, not something a second-level sub-table can fix.
func checkCrossMatches[H any](descriptors []Descriptor[H]) {
	for i := 0; i < len(descriptors); i++ {
		for j := i + 1; j < len(descriptors); j++ {
			a, b := descriptors[i], descriptors[j]
			if popcount(a.Mask) != popcount(b.Mask) {
				continue
			}
			if overlaps(a, b) {
				panic(fmt.Sprintf(errors.DecoderCrossMatch, a, b))
			}
		}
	}
}

// overlaps reports whether some opcode could satisfy both a and b: on
// every bit both masks care about, the two icodes must agree, and on bits
// only one mask cares about, the overlap is possible regardless of the
// other's icode.
func overlaps[H any](a, b Descriptor[H]) bool {
	shared := a.Mask & b.Mask
	return a.ICode&shared == b.ICode&shared
}
