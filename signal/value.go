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

package signal

// Value is one of the nine drive strengths a node (or the net it belongs
// to) can carry.
type Value int

// The nine signal values.
const (
	Low Value = iota
	High
	ForceLow
	ForceHigh
	Open
	PullUp
	PullDown
	WeakPullUp
	WeakPullDown
)

func (v Value) String() string {
	switch v {
	case Low:
		return "Low"
	case High:
		return "High"
	case ForceLow:
		return "ForceLow"
	case ForceHigh:
		return "ForceHigh"
	case Open:
		return "Open"
	case PullUp:
		return "PullUp"
	case PullDown:
		return "PullDown"
	case WeakPullUp:
		return "WeakPullUp"
	case WeakPullDown:
		return "WeakPullDown"
	default:
		return "Undefined"
	}
}

// combine merges two driven values on the same net: force dominates
// non-force, strong dominates weak, weak dominates open, and open is the
// identity. illegal is true when the
// combination is a short circuit (opposing forces, or a strong level
// against the opposite strong level); the returned value is still the
// dominant one so that propagation can continue.
func combine(a, b Value) (result Value, illegal bool) {
	if b == Open {
		return a, false
	}

	switch a {
	case Open:
		return b, false

	case ForceLow:
		if b == ForceHigh {
			return ForceLow, true
		}
		return ForceLow, false

	case ForceHigh:
		if b == ForceLow {
			return ForceHigh, true
		}
		return ForceHigh, false

	case Low:
		switch b {
		case ForceHigh:
			return ForceHigh, false
		case High:
			return Low, true
		default:
			return Low, false
		}

	case High:
		switch b {
		case ForceLow:
			return ForceLow, false
		case Low:
			return High, true
		default:
			return High, false
		}

	case PullUp:
		switch b {
		case Low, ForceLow, ForceHigh, High, PullDown:
			return b, false
		case PullUp, WeakPullDown, WeakPullUp:
			return PullUp, false
		default:
			return b, false
		}

	case PullDown:
		switch b {
		case Low, ForceLow, ForceHigh, High, PullUp:
			return b, false
		case PullDown, WeakPullDown, WeakPullUp:
			return PullDown, false
		default:
			return b, false
		}

	case WeakPullUp:
		switch b {
		case Low:
			return Low, false
		case ForceLow, ForceHigh, High, PullDown, PullUp:
			return b, false
		case WeakPullDown:
			return WeakPullDown, false
		case WeakPullUp:
			return WeakPullUp, false
		default:
			return b, false
		}

	case WeakPullDown:
		switch b {
		case ForceLow, ForceHigh, High, Low, PullDown, PullUp:
			return b, false
		case WeakPullDown:
			return WeakPullDown, false
		case WeakPullUp:
			return WeakPullUp, false
		default:
			return b, false
		}
	}
	return Open, false
}

// measure reduces any of the nine combined values down to the three a
// caller of Node.Value ever sees: Low, High or Open. A floating net stays
// Open; how to treat it is the caller's decision.
func measure(v Value) Value {
	switch v {
	case Low, ForceLow, PullDown, WeakPullDown:
		return Low
	case High, ForceHigh, PullUp, WeakPullUp:
		return High
	default:
		return Open
	}
}
