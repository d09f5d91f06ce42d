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

// Package clock models a DAG of derived clocks: exact rational frequency
// derivation from a designated system master, recursive invalidation of
// cached master ratios, and change traces.
package clock

import "math/big"

// Fraction is an exact, always-reduced rational number. math/big.Rat
// guarantees the reduced form on every operation and never overflows on a
// long chain of derivations, so Fraction is a thin, read-only view over
// one rather than a hand-reduced nom/denom pair.
type Fraction struct {
	rat *big.Rat
}

// NewFraction builds a reduced fraction nom/denom. A zero denominator is
// a configuration mistake and panics.
func NewFraction(nom, denom int64) Fraction {
	if denom == 0 {
		panic("clock: zero denominator")
	}
	return Fraction{rat: big.NewRat(nom, denom)}
}

// Num returns the reduced numerator.
func (f Fraction) Num() *big.Int {
	return f.rat.Num()
}

// Denom returns the reduced denominator.
func (f Fraction) Denom() *big.Int {
	return f.rat.Denom()
}

// Float64 returns the fraction as a float64, for display purposes only.
func (f Fraction) Float64() float64 {
	v, _ := f.rat.Float64()
	return v
}

func (f Fraction) String() string {
	return f.rat.RatString()
}

// Equal reports whether two fractions are the same reduced value.
func (f Fraction) Equal(other Fraction) bool {
	return f.rat.Cmp(other.rat) == 0
}
