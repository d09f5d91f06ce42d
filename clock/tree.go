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

package clock

import (
	"fmt"
	"math/big"

	"github.com/sgcore/softgun/errors"
	"github.com/sgcore/softgun/logger"
	"github.com/sgcore/softgun/registry"
)

// ClockTraceProc is called when a clock's accumulated frequency changes.
type ClockTraceProc func(c *Clock, clientData interface{})

// ClockTrace is the handle returned by Clock.Trace.
type ClockTrace struct {
	proc       ClockTraceProc
	clientData interface{}
}

// Clock is one node of a derivation DAG. Root clocks (no parent) have their
// frequency set directly; every other clock derives its frequency from its
// parent by a fixed Fraction.
type Clock struct {
	tree   *Tree
	name   string
	parent *Clock

	derivation Fraction
	acc        *big.Rat // accumulated frequency, as an exact rational number of Hz

	children []*Clock

	ratioVersion uint64
	ratio        Fraction

	traces []*ClockTrace
}

// Name returns the clock's registered name.
func (c *Clock) Name() string {
	return c.name
}

// Parent returns the clock this clock derives from, or nil for a root
// clock.
func (c *Clock) Parent() *Clock {
	return c.parent
}

// Frequency returns the clock's current frequency in Hz, as an exact
// fraction (derivation need not divide evenly).
func (c *Clock) Frequency() Fraction {
	return Fraction{rat: new(big.Rat).Set(c.acc)}
}

// Tree owns a namespace of Clocks and the single system-master version
// counter used to lazily invalidate cached master ratios.
type Tree struct {
	clocks        *registry.Registry[*Clock]
	master        *Clock
	masterVersion uint64
	masterTrace   *ClockTrace
}

// NewTree creates an empty clock tree.
func NewTree() *Tree {
	return &Tree{
		clocks: registry.New[*Clock](registry.DefaultBuckets),
	}
}

// New creates a new, unparented clock at 0Hz.
func (t *Tree) New(name string) (*Clock, error) {
	c := &Clock{
		tree:       t,
		name:       name,
		derivation: NewFraction(1, 1),
		acc:        big.NewRat(0, 1),
	}
	if err := t.clocks.Create(name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Find looks up a clock by name.
func (t *Tree) Find(name string) (*Clock, bool) {
	return t.clocks.Find(name)
}

// MakeSystemMaster designates clock as the reference against which
// MasterRatio reports every other clock's frequency. Only one clock may be
// the master at a time; calling this again replaces the previous master.
func (t *Tree) MakeSystemMaster(c *Clock) {
	if t.masterTrace != nil && t.master != nil {
		t.master.Untrace(t.masterTrace)
	}
	t.master = c
	t.masterTrace = c.Trace(func(*Clock, interface{}) {
		t.masterVersion++
	}, nil)
	t.masterVersion++
}

// MasterRatio returns clock's frequency expressed as a ratio to the system
// master clock's frequency, recomputing it only if the master's version has
// advanced since the last call.
func (t *Tree) MasterRatio(c *Clock) Fraction {
	if t.master == nil {
		panic(errors.ClockMissingMaster)
	}
	if c.ratioVersion != t.masterVersion {
		num := new(big.Rat).Quo(c.acc, t.master.acc)
		c.ratio = Fraction{rat: num}
		c.ratioVersion = t.masterVersion
	}
	return c.ratio
}

// SetFrequency sets a root clock's absolute frequency in Hz and propagates
// the change to every descendant before firing any trace. It is only valid
// to call this on a root clock (one with no parent); calling it on a
// derived clock logs a warning and is refused.
func (t *Tree) SetFrequency(root *Clock, hz uint64) {
	if root.parent != nil {
		logger.Logf("clock", errors.ClockNotRoot, root.name)
		return
	}
	next := new(big.Rat).SetInt(new(big.Int).SetUint64(hz))
	if root.acc.Cmp(next) == 0 {
		return
	}
	root.acc = next
	root.ratioVersion = 0
	t.updateDescendants(root)
	root.invokeTraces()
}

// MakeDerived re-parents child under parent with the given derivation
// fraction (child frequency = parent frequency * nom/denom) and recomputes
// the subtree rooted at child. A zero denominator is a fatal configuration
// error.
func (t *Tree) MakeDerived(child, parent *Clock, nom, denom int64) {
	if denom == 0 {
		panic(fmt.Sprintf(errors.ClockZeroDenominator, child.name))
	}
	if parent != child.parent {
		detachFromParent(child)
		attachToParent(child, parent)
	}
	child.derivation = NewFraction(nom, denom)
	t.recomputeAndNotify(child)
}

// Decouple detaches child from its parent, zeroing its frequency. It is a
// no-op if child has no parent.
func (t *Tree) Decouple(child *Clock) {
	if child.parent == nil {
		return
	}
	detachFromParent(child)
	child.derivation = NewFraction(0, 1)
	child.acc = big.NewRat(0, 1)
	child.ratioVersion = 0
}

// recomputeAndNotify recomputes a single clock's accumulated frequency from
// its (possibly just-changed) parent and derivation, then cascades to
// descendants and fires traces, exactly as updateDescendants does for a
// whole subtree.
func (t *Tree) recomputeAndNotify(c *Clock) {
	if c.parent == nil {
		return
	}
	changed := t.recompute(c)
	if !changed {
		return
	}
	t.updateDescendants(c)
	c.invokeTraces()
}

// recompute applies the derivation fraction and reports whether the
// accumulated frequency actually changed.
func (t *Tree) recompute(c *Clock) bool {
	next := new(big.Rat).Mul(c.parent.acc, c.derivation.rat)
	if c.acc.Cmp(next) == 0 {
		return false
	}
	c.acc = next
	c.ratioVersion = 0
	return true
}

// updateDescendants recomputes every descendant of c (c itself must already
// be up to date) depth-first, and only once the whole subtree is recomputed
// fires the traces of each descendant whose frequency changed, in
// post-order: a child's traces fire before its parent's, so that a trace
// callback always observes a subtree that has already settled. No callback
// runs during the walk, so a callback that re-parents a clock cannot
// disturb it.
func (t *Tree) updateDescendants(c *Clock) {
	var changed []*Clock
	var walk func(p *Clock)
	walk = func(p *Clock) {
		for _, child := range p.children {
			moved := t.recompute(child)
			walk(child)
			if moved {
				changed = append(changed, child)
			}
		}
	}
	walk(c)
	for _, child := range changed {
		child.invokeTraces()
	}
}

func detachFromParent(c *Clock) {
	if c.parent == nil {
		return
	}
	siblings := c.parent.children
	for i, s := range siblings {
		if s == c {
			c.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	c.parent = nil
}

func attachToParent(c, parent *Clock) {
	c.parent = parent
	parent.children = append(parent.children, c)
}

// Trace attaches a callback fired whenever c's accumulated frequency
// changes.
func (c *Clock) Trace(proc ClockTraceProc, clientData interface{}) *ClockTrace {
	t := &ClockTrace{proc: proc, clientData: clientData}
	c.traces = append(c.traces, t)
	return t
}

// Untrace removes a previously attached trace.
func (c *Clock) Untrace(trace *ClockTrace) {
	for i, t := range c.traces {
		if t == trace {
			c.traces = append(c.traces[:i], c.traces[i+1:]...)
			return
		}
	}
}

func (c *Clock) invokeTraces() {
	snapshot := make([]*ClockTrace, len(c.traces))
	copy(snapshot, c.traces)
	for _, t := range snapshot {
		t.proc(c, t.clientData)
	}
}
