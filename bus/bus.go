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

// Package bus is the only channel through which a peripheral affects CPU
// state beyond a signal line: a registered IO region's Read/Write
// callbacks are invoked by the CPU front-end's load/store path. Addresses
// and values are uint64 so that one Region type serves every supported
// core; each board picks its own effective width.
package bus

import (
	"fmt"

	"github.com/sgcore/softgun/errors"
)

// Region is one mapped span of address space, owned by a single
// peripheral.
type Region struct {
	Name  string
	Base  uint64
	Size  uint64
	Read  func(addr uint64) (uint64, error)
	Write func(addr uint64, value uint64) error
}

func (r Region) end() uint64 {
	return r.Base + r.Size
}

func (r Region) overlaps(other Region) bool {
	return r.Base < other.end() && other.Base < r.end()
}

// Map is an ordered collection of non-overlapping Regions, looked up by
// address on every CPU load/store.
type Map struct {
	regions []Region
}

// NewMap creates an empty bus map.
func NewMap() *Map {
	return &Map{}
}

// Register adds region to the map. It returns an error if region overlaps
// one already registered; registration never silently shadows a prior
// mapping.
func (m *Map) Register(region Region) error {
	for _, existing := range m.regions {
		if region.overlaps(existing) {
			return errors.Errorf(errors.BusOverlappingRegion, region.Name, existing.Name)
		}
	}
	m.regions = append(m.regions, region)
	return nil
}

// find returns the region containing addr, if any.
func (m *Map) find(addr uint64) (Region, bool) {
	for _, r := range m.regions {
		if addr >= r.Base && addr < r.end() {
			return r, true
		}
	}
	return Region{}, false
}

// Read dispatches a CPU load to whichever region contains addr.
func (m *Map) Read(addr uint64) (uint64, error) {
	r, ok := m.find(addr)
	if !ok {
		return 0, errors.Errorf(errors.BusUnmappedAddress, addr)
	}
	return r.Read(addr)
}

// Write dispatches a CPU store to whichever region contains addr.
func (m *Map) Write(addr uint64, value uint64) error {
	r, ok := m.find(addr)
	if !ok {
		return errors.Errorf(errors.BusUnmappedAddress, addr)
	}
	return r.Write(addr, value)
}

// String lists every mapped region, for debugging.
func (m *Map) String() string {
	s := ""
	for _, r := range m.regions {
		s += fmt.Sprintf("%s: %#x-%#x\n", r.Name, r.Base, r.end()-1)
	}
	return s
}
