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

package bus

import (
	"os"

	"github.com/sgcore/softgun/errors"
)

// RAM is a flat byte-addressable backing store, the simplest possible
// Region.Read/Write implementation: most demo boards and test fixtures
// only need this, not a full peripheral model.
type RAM struct {
	bytes []byte
}

// NewRAM allocates a zeroed RAM of the given size.
func NewRAM(size uint64) *RAM {
	return &RAM{bytes: make([]byte, size)}
}

// Region returns a bus.Region backed by this RAM at base.
func (r *RAM) Region(name string, base uint64) Region {
	return Region{
		Name: name,
		Base: base,
		Size: uint64(len(r.bytes)),
		Read: func(addr uint64) (uint64, error) {
			return uint64(r.bytes[addr-base]), nil
		},
		Write: func(addr uint64, value uint64) error {
			r.bytes[addr-base] = byte(value)
			return nil
		},
	}
}

// LoadImage reads the file at path into r starting at offset. The file's
// bytes are copied as-is; no image format is assumed or detected.
func (r *RAM) LoadImage(path string, offset uint64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf(errors.BusImageLoadFailed, path, err.Error())
	}
	if offset+uint64(len(data)) > uint64(len(r.bytes)) {
		return errors.Errorf(errors.BusImageTooLarge, path, offset)
	}
	copy(r.bytes[offset:], data)
	return nil
}
