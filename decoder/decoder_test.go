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

package decoder_test

import (
	"testing"

	"github.com/sgcore/softgun/decoder"
	"github.com/sgcore/softgun/test"
)

// identity8 is a single-level, full-8-bit index: the whole opcode is the
// dispatch key, so Build must resolve ties purely by mask popcount.
func identity8(opcode uint64) uint64 { return opcode & 0xff }

func TestMostSpecificWinsOverGeneric(t *testing.T) {
	table := decoder.Build(decoder.Config[string]{
		Undefined: "undefined",
		IndexBits: 8,
		IndexOf:   identity8,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xf0, ICode: 0x10, Name: "generic", Handler: "generic"},
			{Mask: 0xff, ICode: 0x15, Name: "specific", Handler: "specific"},
		},
	})

	test.ExpectEquality(t, table.Dispatch(0x15).Handler, "specific")
	test.ExpectEquality(t, table.Dispatch(0x12).Handler, "generic")
}

func TestUndefinedOpcodeFallsThrough(t *testing.T) {
	table := decoder.Build(decoder.Config[string]{
		Undefined: "undefined",
		IndexBits: 8,
		IndexOf:   identity8,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xff, ICode: 0x15, Name: "specific", Handler: "specific"},
		},
	})

	result := table.Dispatch(0x99)
	test.ExpectEquality(t, result.Undefined, true)
	test.ExpectEquality(t, result.Handler, "undefined")
}

func TestExactDuplicateIsFatal(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic for two identical descriptors")
		}
	}()
	decoder.Build(decoder.Config[string]{
		IndexBits: 8,
		IndexOf:   identity8,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xff, ICode: 0x15, Name: "a", Handler: "a"},
			{Mask: 0xff, ICode: 0x15, Name: "b", Handler: "b"},
		},
	})
}

func TestInvalidDescriptorIsFatal(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic for icode bits outside mask")
		}
	}()
	decoder.Build(decoder.Config[string]{
		IndexBits: 8,
		IndexOf:   identity8,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0x0f, ICode: 0x10, Name: "bad", Handler: "bad"},
		},
	})
}

func TestExistencePredicateExcludesDescriptor(t *testing.T) {
	table := decoder.Build(decoder.Config[string]{
		Undefined: "undefined",
		IndexBits: 8,
		IndexOf:   identity8,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xff, ICode: 0x15, Name: "v5-only", Handler: "v5", Exists: func() bool { return false }},
		},
	})

	result := table.Dispatch(0x15)
	test.ExpectEquality(t, result.Undefined, true)
}

// nibbleHigh/nibbleLow split an 8-bit opcode into two 4-bit dispatch
// levels, modelling an ISA whose formats need a second table to
// disambiguate a generic, wide-mask instruction from a narrower one that
// shares the same high nibble.
func nibbleHigh(opcode uint64) uint64 { return (opcode >> 4) & 0xf }
func nibbleLow(opcode uint64) uint64  { return opcode & 0xf }

func TestTwoLevelDispatchDisambiguates(t *testing.T) {
	table := decoder.Build(decoder.Config[string]{
		Undefined:    "undefined",
		IndexBits:    4,
		IndexOf:      nibbleHigh,
		SubIndexBits: 4,
		SubIndexOf:   nibbleLow,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xf0, ICode: 0x30, Name: "generic-3x", Handler: "generic"},
			{Mask: 0xff, ICode: 0x34, Name: "specific-34", Handler: "specific"},
		},
	})

	test.ExpectEquality(t, table.Dispatch(0x34).Handler, "specific")
	test.ExpectEquality(t, table.Dispatch(0x31).Handler, "generic")
	test.ExpectEquality(t, table.Dispatch(0x3f).Handler, "generic")
}

func TestCrossMatchWithoutSecondLevelIsFatal(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic: equal-specificity overlap with no second level")
		}
	}()
	// both masks have the same popcount (4 bits) and overlap at 0x34,
	// but IndexBits=4/IndexOf=nibbleHigh alone cannot disambiguate them
	// and no second level is configured.
	decoder.Build(decoder.Config[string]{
		IndexBits: 4,
		IndexOf:   nibbleHigh,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xf0, ICode: 0x30, Name: "a", Handler: "a"},
			{Mask: 0x0f, ICode: 0x04, Name: "b", Handler: "b"},
		},
	})
}

func TestCyclesScaledByMultiplier(t *testing.T) {
	table := decoder.Build(decoder.Config[string]{
		Undefined:       "undefined",
		IndexBits:       8,
		IndexOf:         identity8,
		CycleMultiplier: 4,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xff, ICode: 0x15, Name: "specific", Handler: "specific", BaseCycles: 2, Length: 1},
		},
	})

	result := table.Dispatch(0x15)
	test.ExpectEquality(t, result.Cycles, 8)
	test.ExpectEquality(t, result.Length, 1)
}

func TestAccessCyclesAdjustBaseCycles(t *testing.T) {
	// the addressing-mode probe reports two memory accesses; the cost is
	// folded into the base cycles before the multiplier applies
	table := decoder.Build(decoder.Config[string]{
		Undefined:       "undefined",
		IndexBits:       8,
		IndexOf:         identity8,
		CycleMultiplier: 3,
		Descriptors: []decoder.Descriptor[string]{
			{Mask: 0xff, ICode: 0x15, Name: "indexed", Handler: "indexed", BaseCycles: 2, Length: 1,
				AccessCycles: func() int { return 2 }},
		},
	})

	result := table.Dispatch(0x15)
	test.ExpectEquality(t, result.Cycles, 12)
}

// linearScan is the reference most-specific-match resolution the compiled
// table must agree with for every opcode in the representable space.
func linearScan(descriptors []decoder.Descriptor[string], opcode uint64) (string, bool) {
	best := ""
	bestCount := -1
	found := false
	for _, d := range descriptors {
		if !d.Matches(opcode) {
			continue
		}
		pc := 0
		for v := d.Mask; v != 0; v >>= 1 {
			pc += int(v & 1)
		}
		if pc > bestCount {
			bestCount = pc
			best = d.Handler
			found = true
		}
	}
	return best, found
}

func TestDispatchAgreesWithLinearScan(t *testing.T) {
	descriptors := []decoder.Descriptor[string]{
		{Mask: 0xf0, ICode: 0x10, Name: "ldi", Handler: "ldi"},
		{Mask: 0xff, ICode: 0x15, Name: "ldi-special", Handler: "ldi-special"},
		{Mask: 0xf0, ICode: 0x20, Name: "add", Handler: "add"},
		{Mask: 0xc0, ICode: 0x40, Name: "wide", Handler: "wide"},
		{Mask: 0xff, ICode: 0x00, Name: "nop", Handler: "nop"},
		{Mask: 0xfe, ICode: 0xfe, Name: "sys", Handler: "sys"},
	}

	table := decoder.Build(decoder.Config[string]{
		Undefined:   "undefined",
		IndexBits:   8,
		IndexOf:     identity8,
		Descriptors: descriptors,
	})

	// the opcode space is small enough to check exhaustively
	for opcode := uint64(0); opcode < 0x100; opcode++ {
		want, found := linearScan(descriptors, opcode)
		got := table.Dispatch(opcode)
		if !found {
			test.ExpectEquality(t, got.Undefined, true)
			continue
		}
		test.ExpectEquality(t, got.Handler, want)
	}
}

func TestDispatchAgreesWithLinearScanTwoLevel(t *testing.T) {
	descriptors := []decoder.Descriptor[string]{
		{Mask: 0xf0, ICode: 0x30, Name: "mov", Handler: "mov"},
		{Mask: 0xff, ICode: 0x34, Name: "mov-pc", Handler: "mov-pc"},
		{Mask: 0xff, ICode: 0x3f, Name: "mov-sp", Handler: "mov-sp"},
		{Mask: 0xf0, ICode: 0x70, Name: "br", Handler: "br"},
	}

	table := decoder.Build(decoder.Config[string]{
		Undefined:    "undefined",
		IndexBits:    4,
		IndexOf:      nibbleHigh,
		SubIndexBits: 4,
		SubIndexOf:   nibbleLow,
		Descriptors:  descriptors,
	})

	for opcode := uint64(0); opcode < 0x100; opcode++ {
		want, found := linearScan(descriptors, opcode)
		got := table.Dispatch(opcode)
		if !found {
			test.ExpectEquality(t, got.Undefined, true)
			continue
		}
		test.ExpectEquality(t, got.Handler, want)
	}
}
