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

// Package test collects small helpers shared by the unit tests of the other
// packages in this module.
package test

import "testing"

// ExpectEquality fails the test immediately if got and want differ.
func ExpectEquality[T comparable](t *testing.T, got T, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, wanted %v", got, want)
	}
}

// ExpectSuccess fails the test if err is non-nil.
func ExpectSuccess(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ExpectFailure fails the test if err is nil.
func ExpectFailure(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got none")
	}
}
