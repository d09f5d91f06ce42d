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

// Package mainloop is a single-threaded cooperative scheduler: one
// goroutine interleaves CPU instruction dispatch, expired cycle-timer
// events, and posted mainloop events. Signal and clock callbacks run
// synchronously within whichever of those triggered them, so they need
// no scheduling of their own.
package mainloop

import "container/heap"

// State is the mainloop's current run state.
type State int

// The states a Loop can be in.
const (
	Running State = iota
	Paused
	Ending
)

// Step executes one CPU instruction and returns the cycles it took. A
// front-end supplies this; mainloop does not know about opcodes, only
// about cycle counts.
type Step func() (cycles int, err error)

// Timer is a single pending cycle-timer expiration.
type Timer struct {
	At   uint64 // absolute cycle count at which this timer fires
	seq  uint64 // insertion order, breaks At ties
	Fire func()
	index int
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x interface{}) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Loop is the cooperative scheduler. Cycle is the running total of CPU
// cycles elapsed, the clock against which Timers are compared.
type Loop struct {
	state  State
	cycle  uint64
	seq    uint64
	timers timerHeap
	events chan func()
}

// New creates an idle Loop. events is the mainloop event channel posted
// events arrive on (I/O readiness, signal/clock-driven wakeups); a nil or
// zero-capacity channel is fine if the board never posts any.
func New(events chan func()) *Loop {
	return &Loop{events: events}
}

// State returns the loop's current run state.
func (l *Loop) State() State {
	return l.state
}

// Schedule posts a Timer to fire once Cycle reaches at.
func (l *Loop) Schedule(at uint64, fire func()) {
	l.seq++
	heap.Push(&l.timers, &Timer{At: at, seq: l.seq, Fire: fire})
}

// Cycle returns the running cycle count.
func (l *Loop) Cycle() uint64 {
	return l.cycle
}

// Pause makes Run return after the current instruction, like Stop but
// leaving the state Paused. Run does not wait for Resume; the loop runs
// again only when Run is called again.
func (l *Loop) Pause() {
	l.state = Paused
}

// Resume clears a Pause.
func (l *Loop) Resume() {
	if l.state == Paused {
		l.state = Running
	}
}

// Stop ends the loop; Run returns on its next iteration.
func (l *Loop) Stop() {
	l.state = Ending
}

// Run drives the loop until Stop or Pause is called or step returns an error:
// dispatch one instruction, advance the cycle count, fire any timers
// whose deadline has passed (in timestamp order, ties broken by
// insertion order), then drain any posted mainloop events.
func (l *Loop) Run(step Step) error {
	l.state = Running
	for l.state == Running {
		cycles, err := step()
		if err != nil {
			return err
		}
		l.cycle += uint64(cycles)

		for l.timers.Len() > 0 && l.timers[0].At <= l.cycle {
			t := heap.Pop(&l.timers).(*Timer)
			t.Fire()
		}

		l.drainEvents()
	}
	return nil
}

func (l *Loop) drainEvents() {
	if l.events == nil {
		return
	}
	for {
		select {
		case fn := <-l.events:
			fn()
		default:
			return
		}
	}
}
