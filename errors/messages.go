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

package errors

// error messages used throughout the core subsystems. Configuration errors
// (invalid descriptor, cross-match, zero denominator, missing master clock)
// are fatal and panic with these same strings; runtime errors (including an
// unknown node name at link time) are logged via the logger package and
// execution continues.
const (
	// decoder (configuration time, fatal)
	DecoderDuplicateDescriptor = "decoder error: descriptor %v collides with existing descriptor %v at index %#x"
	DecoderCrossMatch          = "decoder error: descriptor %v and descriptor %v cross-match with equal specificity"
	DecoderInvalidDescriptor   = "decoder error: descriptor %v has icode bits outside of its mask"
	DecoderInconsistentLength  = "decoder error: descriptor %v length is inconsistent with its mask"

	// registry (configuration/runtime)
	RegistryDuplicateName = "registry error: %q already registered"
	RegistryUnknownName   = "registry error: %q is not registered"

	// signal graph (runtime, logged and continued)
	SignalShortCircuit  = "short circuit between %s (%s) and %s (%s)"
	SignalUnknownNode   = "signal error: unknown node %q"
	SignalAlreadyExists = "signal error: node %q already exists"

	// clock tree (zero denominator and missing master are fatal; a refused
	// SetFrequency on a non-root clock is logged and continued)
	ClockZeroDenominator = "clock error: %q has a zero denominator"
	ClockNotRoot         = "clock error: %q is not a root clock, cannot set frequency directly"
	ClockUnknownParent   = "clock error: cannot derive %q from nonexistent clock %q"
	ClockMissingMaster   = "clock error: no system master clock has been designated"

	// CLI (runtime, translated to a response code)
	CLIUnknownCommand = "cli error: unknown command %q"
	CLIBadArguments   = "cli error: bad arguments for command %q"

	// bus / configuration
	BusOverlappingRegion = "bus error: io region %q overlaps existing region %q"
	BusUnmappedAddress   = "bus error: address %#x is not mapped"
	BusImageLoadFailed   = "bus error: cannot load image %q: %s"
	BusImageTooLarge     = "bus error: image %q does not fit at offset %#x"

	// config
	ConfigSyntaxError  = "config error: %s:%d: %s"
	ConfigMissingValue = "config error: missing key %q in section %q"
)
