package peerfunds

import "strings"

// Set is a reference set of company identifiers used for membership tests.
// It remembers insertion order so that derived lists are deterministic.
// Blank identifiers are never members.
type Set struct {
	index map[string]struct{}
	keys  []string
}

// NewSet returns a set holding the non blank keys.
func NewSet(keys ...string) *Set {
	s := &Set{index: make(map[string]struct{})}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Keys returns the set of identifiers found in a column of t.
func Keys(t *Table, column string) (*Set, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	return NewSet(values...), nil
}

// Add inserts k, surrounding spaces are ignored.
func (s *Set) Add(k string) {
	k = trimKey(k)
	if k == "" {
		return
	}
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = struct{}{}
	s.keys = append(s.keys, k)
}

// Has reports whether k is a member.
func (s *Set) Has(k string) bool {
	_, ok := s.index[trimKey(k)]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.keys) }

// Keys returns the members in insertion order.
func (s *Set) Keys() []string { return append([]string(nil), s.keys...) }

// Difference returns the members of s that are not in o.
func (s *Set) Difference(o *Set) *Set {
	d := NewSet()
	for _, k := range s.keys {
		if !o.Has(k) {
			d.Add(k)
		}
	}
	return d
}

// Intersect returns the members of s that are also in o.
func (s *Set) Intersect(o *Set) *Set {
	d := NewSet()
	for _, k := range s.keys {
		if o.Has(k) {
			d.Add(k)
		}
	}
	return d
}

// trimKey normalizes an identifier read from a cell.
func trimKey(s string) string { return strings.TrimSpace(s) }
