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

// Package registry implements the string-keyed namespace that backs the
// signal graph, the clock tree, and the debug-variable / CLI-command
// surface. Three independent namespaces exist in a running system; each is
// its own Registry value, never a shared global table.
//
// A Go map already is a hash table, so Registry is a thin, ordered wrapper
// around one; DefaultBuckets is only the capacity hint passed to New.
// Callers that know their namespace size can pass their own.
package registry

import (
	"sort"

	"github.com/sgcore/softgun/errors"
)

// DefaultBuckets is the capacity hint used by New when no explicit size is
// requested.
const DefaultBuckets = 1024

// Registry is a duplicate-rejecting, string-keyed namespace of values of
// type T. The zero value is not usable; construct one with New.
type Registry[T any] struct {
	entries map[string]T
	order   []string
}

// New creates an empty registry. buckets is a capacity hint, not a hard
// limit; pass 0 to use DefaultBuckets.
func New[T any](buckets int) *Registry[T] {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	return &Registry[T]{
		entries: make(map[string]T, buckets),
	}
}

// Create adds a new entry under name. It returns an error if name is already
// registered; duplicate creates are refused rather than silently
// overwriting the existing entry.
func (r *Registry[T]) Create(name string, value T) error {
	if _, ok := r.entries[name]; ok {
		return errors.Errorf(errors.RegistryDuplicateName, name)
	}
	r.entries[name] = value
	r.order = append(r.order, name)
	return nil
}

// Find looks up name, returning ok=false if it is not registered.
func (r *Registry[T]) Find(name string) (T, bool) {
	v, ok := r.entries[name]
	return v, ok
}

// Delete removes name from the registry. It is a no-op if name was never
// registered.
func (r *Registry[T]) Delete(name string) {
	if _, ok := r.entries[name]; !ok {
		return
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// Names returns every registered name, sorted for determinism.
func (r *Registry[T]) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}

// Each calls fn once per registered entry, in insertion order. fn must not
// mutate the registry.
func (r *Registry[T]) Each(fn func(name string, value T)) {
	for _, name := range r.order {
		fn(name, r.entries[name])
	}
}
