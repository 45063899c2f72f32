package domain

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// IntSet is an unordered set of integers.
type IntSet map[int64]struct{}

// NewIntSet returns a set holding the given members.
func NewIntSet(members ...int64) IntSet {
	s := make(IntSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

func (s IntSet) Add(n int64) { s[n] = struct{}{} }

func (s IntSet) Has(n int64) bool {
	_, ok := s[n]
	return ok
}

func (s IntSet) Clone() IntSet {
	out := make(IntSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s IntSet) Union(o IntSet) IntSet {
	out := s.Clone()
	for k := range o {
		out[k] = struct{}{}
	}
	return out
}

func (s IntSet) Intersect(o IntSet) IntSet {
	out := IntSet{}
	for k := range s {
		if o.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Difference returns the members of s that are not in o.
func (s IntSet) Difference(o IntSet) IntSet {
	out := IntSet{}
	for k := range s {
		if !o.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Equal reports set equality. A nil set equals an empty one.
func (s IntSet) Equal(o IntSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s IntSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (s IntSet) String() string {
	members := s.Sorted()
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = strconv.FormatInt(m, 10)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s IntSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IntSet) UnmarshalJSON(b []byte) error {
	var members []int64
	if err := json.Unmarshal(b, &members); err != nil {
		return err
	}
	*s = NewIntSet(members...)
	return nil
}

// MarshalYAML renders the set as a sorted sequence.
func (s IntSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}
