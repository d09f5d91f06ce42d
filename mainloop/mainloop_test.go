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

package mainloop_test

import (
	"testing"

	"github.com/sgcore/softgun/mainloop"
	"github.com/sgcore/softgun/test"
)

func TestTimersFireInCycleOrder(t *testing.T) {
	l := mainloop.New(nil)

	var fired []string
	l.Schedule(10, func() { fired = append(fired, "a") })
	l.Schedule(5, func() { fired = append(fired, "b") })
	l.Schedule(5, func() { fired = append(fired, "c") })

	instructions := 0
	err := l.Run(func() (int, error) {
		instructions++
		if instructions > 2 {
			l.Stop()
		}
		return 5, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(fired), 3)
	test.ExpectEquality(t, fired[0], "b")
	test.ExpectEquality(t, fired[1], "c")
	test.ExpectEquality(t, fired[2], "a")
}

func TestStopEndsRun(t *testing.T) {
	l := mainloop.New(nil)
	count := 0
	err := l.Run(func() (int, error) {
		count++
		l.Stop()
		return 1, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, count, 1)
	test.ExpectEquality(t, l.State(), mainloop.Ending)
}

func TestPostedEventsDrainBetweenInstructions(t *testing.T) {
	events := make(chan func(), 4)
	l := mainloop.New(events)

	seen := false
	events <- func() { seen = true }

	err := l.Run(func() (int, error) {
		l.Stop()
		return 1, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, seen, true)
}
