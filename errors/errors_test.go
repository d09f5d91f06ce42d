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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/sgcore/softgun/errors"
	"github.com/sgcore/softgun/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {

	e := errors.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := errors.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := errors.Errorf(testError, "foo")
	test.ExpectEquality(t, errors.Is(e, testError), true)

	// Has() should fail because we haven't included testErrorB anywhere in the error
	test.ExpectEquality(t, errors.Has(e, testErrorB), false)

	// wrapping e in an error with a different head keeps both parts: Is()
	// matches only the outer head, Has() finds either
	f := errors.Errorf(testErrorB, e)
	test.ExpectEquality(t, errors.Is(f, testError), false)
	test.ExpectEquality(t, errors.Is(f, testErrorB), true)
	test.ExpectEquality(t, errors.Has(f, testError), true)
	test.ExpectEquality(t, errors.Has(f, testErrorB), true)

	// IsAny should return true for these errors also
	test.ExpectEquality(t, errors.IsAny(e), true)
	test.ExpectEquality(t, errors.IsAny(f), true)
}

func TestPlainErrors(t *testing.T) {
	// test plain errors that haven't been formatted with our errors package

	e := fmt.Errorf("plain test error")
	test.ExpectEquality(t, errors.IsAny(e), false)

	const testError = "test error: %s"

	test.ExpectEquality(t, errors.Has(e, testError), false)
}
