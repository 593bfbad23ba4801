// Package selection holds the set of slots selected by the active user.
package selection

import (
	"cmp"
	"maps"
	"slices"
)

// Set is an immutable set of keys. Every operation returns a new Set and
// leaves the receiver untouched.
type Set[K cmp.Ordered] struct {
	items map[K]struct{}
}

// New returns a set containing keys.
func New[K cmp.Ordered](keys ...K) Set[K] {
	items := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		items[k] = struct{}{}
	}
	return Set[K]{items: items}
}

// Add returns the union of s and toAdd.
func (s Set[K]) Add(toAdd []K) Set[K] {
	items := make(map[K]struct{}, len(s.items)+len(toAdd))
	maps.Copy(items, s.items)
	for _, k := range toAdd {
		items[k] = struct{}{}
	}
	return Set[K]{items: items}
}

// Remove returns s without the keys in toRemove.
func (s Set[K]) Remove(toRemove []K) Set[K] {
	items := maps.Clone(s.items)
	if items == nil {
		items = make(map[K]struct{})
	}
	for _, k := range toRemove {
		delete(items, k)
	}
	return Set[K]{items: items}
}

// Replace returns a set holding exactly newSet.
func (s Set[K]) Replace(newSet []K) Set[K] {
	return New(newSet...)
}

// Has reports whether k is in the set.
func (s Set[K]) Has(k K) bool {
	_, ok := s.items[k]
	return ok
}

// Len returns the number of keys.
func (s Set[K]) Len() int {
	return len(s.items)
}

// Items returns the keys in ascending order.
func (s Set[K]) Items() []K {
	return slices.Sorted(maps.Keys(s.items))
}

// Equal reports whether s and other hold the same keys.
func (s Set[K]) Equal(other Set[K]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for k := range s.items {
		if !other.Has(k) {
			return false
		}
	}
	return true
}
