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

package decoder

import (
	"fmt"

	"github.com/sgcore/softgun/errors"
)

// Config describes how to build a Table for one instruction set. IndexOf
// extracts the first-level dispatch key from an opcode; it must be a pure
// bit-selection (select a fixed subset of opcode bits, optionally
// repacking their order), because Build applies the very same function to
// every descriptor's Mask and ICode to decide which descriptors are
// reachable from a given key. SubIndexBits/SubIndexOf add a second level,
// built only at the keys where more than one descriptor remains
// reachable after the first level.
type Config[H any] struct {
	Descriptors []Descriptor[H]

	// Undefined is the handler installed wherever no descriptor matches.
	Undefined H

	IndexBits uint
	IndexOf   func(opcode uint64) uint64

	SubIndexBits uint
	SubIndexOf   func(opcode uint64) uint64

	// CycleMultiplier scales every descriptor's BaseCycles at Build time.
	// Zero is treated as 1.
	CycleMultiplier int

	// UnitBits, when non-zero, is used to sanity-check that a
	// descriptor's declared Length is consistent with the highest bit
	// set in its mask or icode.
	UnitBits int
}

// Result is what Dispatch returns: the handler to run, plus the
// bookkeeping a CPU core's fetch/execute loop needs to advance.
type Result[H any] struct {
	Handler   H
	Name      string
	Length    int
	Cycles    int
	Undefined bool
}

type entry[H any] struct {
	result Result[H]
	sub    []entry[H]
}

// Table is the compiled, constant-time dispatch structure built by Build.
type Table[H any] struct {
	cfg   Config[H]
	first []entry[H]
}

// Build resolves cfg's descriptor list into a Table. It panics (a
// configuration-time error, not a runtime one) if the descriptor list is
// inconsistent: an icode with bits outside its own mask, two descriptors
// that cross-match with equal specificity, or an ambiguity that survives
// even a configured second level.
func Build[H any](cfg Config[H]) *Table[H] {
	multiplier := cfg.CycleMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	live := make([]Descriptor[H], 0, len(cfg.Descriptors))
	for _, d := range cfg.Descriptors {
		if d.Exists != nil && !d.Exists() {
			continue
		}
		if !d.valid() {
			panic(fmt.Sprintf(errors.DecoderInvalidDescriptor, d))
		}
		if cfg.UnitBits > 0 && !lengthConsistent(d, cfg.UnitBits) {
			panic(fmt.Sprintf(errors.DecoderInconsistentLength, d))
		}
		if d.AccessCycles != nil {
			d.BaseCycles += d.AccessCycles()
		}
		live = append(live, d)
	}
	checkCrossMatches(live)

	t := &Table[H]{cfg: cfg}
	size := uint64(1) << cfg.IndexBits
	t.first = make([]entry[H], size)
	for key := uint64(0); key < size; key++ {
		candidates := filterAtLevel(live, cfg.IndexOf, key)
		t.first[key] = t.resolve(candidates, multiplier)
	}
	return t
}

// filterAtLevel returns the descriptors reachable from key: those whose
// mask and icode, passed through the same bit-selection used to compute
// key from a real opcode, are consistent with key.
func filterAtLevel[H any](descriptors []Descriptor[H], indexOf func(uint64) uint64, key uint64) []Descriptor[H] {
	var out []Descriptor[H]
	for _, d := range descriptors {
		if indexOf(d.Mask)&key == indexOf(d.ICode) {
			out = append(out, d)
		}
	}
	return out
}

// resolve turns the descriptors reachable at one first-level key into a
// single entry: a direct leaf when there is at most one candidate, or when
// the configuration has no second level; otherwise a second-level
// sub-table, built the same way one level down.
func (t *Table[H]) resolve(candidates []Descriptor[H], multiplier int) entry[H] {
	if len(candidates) == 0 {
		return entry[H]{result: Result[H]{Handler: t.cfg.Undefined, Undefined: true}}
	}
	if len(candidates) == 1 || t.cfg.SubIndexBits == 0 {
		winner, tied := mostSpecific(candidates)
		if tied {
			panic(fmt.Sprintf(errors.DecoderCrossMatch, candidates[0], candidates[1]))
		}
		return leafEntry(winner, multiplier)
	}

	subSize := uint64(1) << t.cfg.SubIndexBits
	sub := make([]entry[H], subSize)
	for subKey := uint64(0); subKey < subSize; subKey++ {
		subCandidates := filterAtLevel(candidates, t.cfg.SubIndexOf, subKey)
		if len(subCandidates) == 0 {
			sub[subKey] = entry[H]{result: Result[H]{Handler: t.cfg.Undefined, Undefined: true}}
			continue
		}
		winner, tied := mostSpecific(subCandidates)
		if tied {
			panic(fmt.Sprintf(errors.DecoderCrossMatch, subCandidates[0], subCandidates[1]))
		}
		sub[subKey] = leafEntry(winner, multiplier)
	}
	return entry[H]{sub: sub}
}

func leafEntry[H any](d Descriptor[H], multiplier int) entry[H] {
	return entry[H]{result: Result[H]{
		Handler: d.Handler,
		Name:    d.Name,
		Length:  d.Length,
		Cycles:  d.BaseCycles * multiplier,
	}}
}

// mostSpecific returns the candidate with the single highest mask
// popcount. tied is true if two or more candidates share that popcount,
// in which case winner is meaningless and the caller must disambiguate
// further (or fail).
func mostSpecific[H any](candidates []Descriptor[H]) (winner Descriptor[H], tied bool) {
	best := -1
	bestCount := 0
	for _, d := range candidates {
		pc := popcount(d.Mask)
		if pc > best {
			best = pc
			bestCount = 1
			winner = d
		} else if pc == best {
			bestCount++
		}
	}
	return winner, bestCount > 1
}

// Dispatch resolves opcode to a Result in constant time.
func (t *Table[H]) Dispatch(opcode uint64) Result[H] {
	e := t.first[t.cfg.IndexOf(opcode)]
	if e.sub != nil {
		return e.sub[t.cfg.SubIndexOf(opcode)].result
	}
	return e.result
}

func lengthConsistent[H any](d Descriptor[H], unitBits int) bool {
	highest := d.Mask | d.ICode
	if highest == 0 {
		return true
	}
	maxBit := 0
	for v := highest; v != 0; v >>= 1 {
		maxBit++
	}
	return maxBit <= d.Length*unitBits
}
