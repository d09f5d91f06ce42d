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

package bus_test

import (
	"testing"

	"github.com/sgcore/softgun/bus"
	"github.com/sgcore/softgun/test"
)

func TestReadWriteRoundTrip(t *testing.T) {
	m := bus.NewMap()
	ram := bus.NewRAM(16)
	test.ExpectSuccess(t, m.Register(ram.Region("ram", 0x1000)))

	test.ExpectSuccess(t, m.Write(0x1000, 0x42))
	v, err := m.Read(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint64(0x42))
}

func TestOverlappingRegionRejected(t *testing.T) {
	m := bus.NewMap()
	a := bus.NewRAM(16)
	b := bus.NewRAM(16)
	test.ExpectSuccess(t, m.Register(a.Region("a", 0x1000)))
	test.ExpectFailure(t, m.Register(b.Region("b", 0x1008)))
}

func TestUnmappedAddressIsAnError(t *testing.T) {
	m := bus.NewMap()
	_, err := m.Read(0xdead)
	test.ExpectFailure(t, err)
}
