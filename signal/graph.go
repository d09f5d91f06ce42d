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

// Package signal models a bidirectional logical-signal network: named
// nodes driving one of nine multi-value-logic levels, linked into nets,
// propagated to a settled value with cycle-safe generation stamps, and
// observed through trace callbacks.
package signal

import (
	"fmt"

	"github.com/sgcore/softgun/errors"
	"github.com/sgcore/softgun/logger"
	"github.com/sgcore/softgun/registry"
)

// ConflictProc is invoked whenever a measure pass finds a short circuit. The
// default behaviour, when none is configured, is to write the message to
// the central logger.
type ConflictProc func(message string)

// Graph owns a namespace of signal nodes and the generation counter used
// to make traversal cycle-safe. GND and VCC are created for every Graph,
// forced low and high respectively, so boards always have both rails to
// link against.
type Graph struct {
	nodes    *registry.Registry[*Node]
	stamp    uint64
	conflict ConflictProc

	GND *Node
	VCC *Node
}

// NewGraph creates an empty signal graph, with GND and VCC pre-created.
func NewGraph() *Graph {
	g := &Graph{
		nodes: registry.New[*Node](registry.DefaultBuckets),
	}
	g.GND, _ = g.Create("GND")
	g.GND.Set(ForceLow)
	g.VCC, _ = g.Create("VCC")
	g.VCC.Set(ForceHigh)
	return g
}

// SetConflictProc installs the callback invoked on every short circuit. A
// nil proc restores the default (logging) behaviour.
func (g *Graph) SetConflictProc(proc ConflictProc) {
	g.conflict = proc
}

func (g *Graph) reportConflict(message string) {
	if g.conflict != nil {
		g.conflict(message)
		return
	}
	logger.Log("signal", message)
}

// Create registers a new node, defaulting to Open. It returns an error if
// name is already registered.
func (g *Graph) Create(name string) (*Node, error) {
	n := &Node{
		graph:   g,
		name:    name,
		selfVal: Open,
		propVal: Open,
	}
	if err := g.nodes.Create(name, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Find looks up a node by name.
func (g *Graph) Find(name string) (*Node, bool) {
	return g.nodes.Find(name)
}

// Delete severs every link a node participates in and removes it from the
// namespace.
func (g *Graph) Delete(n *Node) {
	n.unlinkAll()
	g.nodes.Delete(n.name)
}

func (g *Graph) nextStamp() uint64 {
	g.stamp++
	return g.stamp
}

// LinkNames links two nodes by registered name. An unknown name on either
// side is logged and the graph is left unmodified.
func (g *Graph) LinkNames(a, b string) {
	na, ok := g.nodes.Find(a)
	if !ok {
		logger.Logf("signal", errors.SignalUnknownNode, a)
		return
	}
	nb, ok := g.nodes.Find(b)
	if !ok {
		logger.Logf("signal", errors.SignalUnknownNode, b)
		return
	}
	Link(na, nb)
}

// UnlinkNames unlinks two nodes by registered name, with the same
// unknown-name behaviour as LinkNames.
func (g *Graph) UnlinkNames(a, b string) {
	na, ok := g.nodes.Find(a)
	if !ok {
		logger.Logf("signal", errors.SignalUnknownNode, a)
		return
	}
	nb, ok := g.nodes.Find(b)
	if !ok {
		logger.Logf("signal", errors.SignalUnknownNode, b)
		return
	}
	Unlink(na, nb)
}

// Link connects two nodes bidirectionally. Linking is idempotent: linking
// an already-linked pair again adds no second edge.
func Link(a, b *Node) {
	if a.graph != b.graph {
		panic("signal: cannot link nodes belonging to different graphs")
	}
	if Linked(a, b) {
		return
	}
	a.links = append(a.links, b)
	b.links = append(b.links, a)
	a.update()
}

// Unlink removes the bidirectional edge between a and b, if any.
func Unlink(a, b *Node) {
	if !removeLink(a, b) {
		return
	}
	removeLink(b, a)
	a.update()
	b.update()
}

func removeLink(from, to *Node) bool {
	for i, p := range from.links {
		if p == to {
			from.links = append(from.links[:i], from.links[i+1:]...)
			return true
		}
	}
	return false
}

// Linked reports whether a and b are directly connected.
func Linked(a, b *Node) bool {
	for _, p := range a.links {
		if p == b {
			return true
		}
	}
	return false
}

// conflictMessage formats the short-circuit diagnostic, naming both
// offending nodes.
func conflictMessage(a *Node, aVal Value, b *Node, bVal Value) string {
	return fmt.Sprintf(errors.SignalShortCircuit, a.name, aVal, b.name, bVal)
}
