// Package sets provides the small id-set algebra shared by the faceted
// filtering services. Both the facet counter and the product resolver reason
// in terms of product-id sets, so the OR-within-facet / AND-across-facets
// semantics reduce to unions and intersections over these sets.
package sets

// Set is an unordered collection of comparable values
type Set[T comparable] map[T]struct{}

// New builds a set from the given values
func New[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Contains reports membership
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of elements
func (s Set[T]) Len() int {
	return len(s)
}

// Union returns the union of all given sets
func Union[T comparable](ss ...Set[T]) Set[T] {
	out := Set[T]{}
	for _, s := range ss {
		for v := range s {
			out[v] = struct{}{}
		}
	}
	return out
}

// Intersect returns the intersection of all given sets. An empty argument
// list yields an empty set; iteration starts from the smallest input.
func Intersect[T comparable](ss ...Set[T]) Set[T] {
	if len(ss) == 0 {
		return Set[T]{}
	}

	smallest := ss[0]
	for _, s := range ss[1:] {
		if len(s) < len(smallest) {
			smallest = s
		}
	}

	out := Set[T]{}
outer:
	for v := range smallest {
		for _, s := range ss {
			if !s.Contains(v) {
				continue outer
			}
		}
		out[v] = struct{}{}
	}
	return out
}

// FilterOrdered returns the elements of ordered that are members of s,
// preserving the order of the input slice.
func FilterOrdered[T comparable](ordered []T, s Set[T]) []T {
	out := make([]T, 0, len(s))
	for _, v := range ordered {
		if s.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}
