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

package registry_test

import (
	"testing"

	"github.com/sgcore/softgun/registry"
	"github.com/sgcore/softgun/test"
)

func TestCreateFindDelete(t *testing.T) {
	r := registry.New[int](0)

	test.ExpectSuccess(t, r.Create("a", 1))
	test.ExpectSuccess(t, r.Create("b", 2))

	v, ok := r.Find("a")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, 1)

	_, ok = r.Find("missing")
	test.ExpectEquality(t, ok, false)

	r.Delete("a")
	_, ok = r.Find("a")
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, r.Len(), 1)

	// deleting an unknown name is a no-op
	r.Delete("missing")
	test.ExpectEquality(t, r.Len(), 1)
}

func TestDuplicateCreateRefused(t *testing.T) {
	r := registry.New[string](0)
	test.ExpectSuccess(t, r.Create("a", "first"))
	test.ExpectFailure(t, r.Create("a", "second"))

	// the original entry must survive the refused create
	v, _ := r.Find("a")
	test.ExpectEquality(t, v, "first")
}

func TestEachInInsertionOrder(t *testing.T) {
	r := registry.New[int](0)
	_ = r.Create("z", 26)
	_ = r.Create("a", 1)
	_ = r.Create("m", 13)

	var order []string
	r.Each(func(name string, _ int) {
		order = append(order, name)
	})

	test.ExpectEquality(t, len(order), 3)
	test.ExpectEquality(t, order[0], "z")
	test.ExpectEquality(t, order[1], "a")
	test.ExpectEquality(t, order[2], "m")
}

func TestNamesSorted(t *testing.T) {
	r := registry.New[int](0)
	_ = r.Create("z", 26)
	_ = r.Create("a", 1)

	names := r.Names()
	test.ExpectEquality(t, names[0], "a")
	test.ExpectEquality(t, names[1], "z")
}
