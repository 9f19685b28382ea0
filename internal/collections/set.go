package collections

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Union adds every member of the other sets to s
func (s Set[T]) Union(others ...Set[T]) {
	for _, o := range others {
		for v := range o {
			s[v] = struct{}{}
		}
	}
}

// Clone returns a shallow copy of the set
func (s Set[T]) Clone() Set[T] {
	c := make(Set[T], len(s))
	c.Union(s)
	return c
}

// Members returns all values in the set as a slice
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	return r
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Sorted returns the members of a string set in natural order,
// so "--color-red-50" sorts before "--color-red-500".
func Sorted(s Set[string]) []string {
	r := s.Members()
	sort.Sort(natural.StringSlice(r))
	return r
}
