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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// DumpGraph writes a graphviz dot representation of the compiled table to
// w: every first-level entry, and any second-level sub-table it points to.
// Useful for inspecting how a large descriptor list settled once built.
func (t *Table[H]) DumpGraph(w io.Writer) {
	memviz.Map(w, t)
}
